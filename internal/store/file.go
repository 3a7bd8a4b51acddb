package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abhisek/marusora/internal/snapshot"
)

// fileRepo keeps the snapshot as a JSON document on disk.
type fileRepo struct {
	path string
}

// NewFileRepo returns a SnapshotRepo backed by the JSON file at path.
func NewFileRepo(path string) SnapshotRepo {
	return &fileRepo{path: path}
}

func (r *fileRepo) Save(_ context.Context, snap *snapshot.Snapshot) error {
	data, err := snapshot.Marshal(snap)
	if err != nil {
		return err
	}
	if err := EnsureDir(r.path); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	// Write beside the target and rename so a crash never leaves a torn file.
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (r *fileRepo) Load(_ context.Context) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return snapshot.Unmarshal(data)
}

func (r *fileRepo) Clear(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func (r *fileRepo) Location() string { return r.path }

func (r *fileRepo) Close() error { return nil }
