// Package store persists the single session snapshot, either as a JSON file or
// as one row in a SQLite database.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/marusora/internal/snapshot"
)

// SnapshotRepo manages the saved session snapshot. At most one snapshot
// exists; Save replaces it.
type SnapshotRepo interface {
	// Save stores snap, replacing any previous snapshot.
	Save(ctx context.Context, snap *snapshot.Snapshot) error

	// Load returns the saved snapshot, or nil if none exists. A snapshot that
	// fails validation yields an error matching snapshot.ErrCorrupt.
	Load(ctx context.Context) (*snapshot.Snapshot, error)

	// Clear removes the saved snapshot. Clearing an absent snapshot is not an
	// error.
	Clear(ctx context.Context) error

	// Location describes where the snapshot lives, for messages.
	Location() string

	// Close releases any resources held by the repo.
	Close() error
}

// Open returns the repo for path. Paths ending in .db, .sqlite or .sqlite3
// are SQLite databases; anything else is a JSON file.
func Open(path string) (SnapshotRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("open store: empty path")
	}
	if IsSQLitePath(path) {
		if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		return OpenSQLite(path)
	}
	return NewFileRepo(path), nil
}

// IsSQLitePath reports whether path selects the SQLite backend.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
