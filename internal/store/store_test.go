package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/marusora/internal/deck"
	"github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/snapshot"
)

func testSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	store := deck.NewStoreFrom([]deck.Entry{
		{Prompt: "2+2", Response: "4"},
		{Prompt: "3+3", Response: "6"},
	})
	e, err := session.Restore(store, session.State{
		Deck:        deck.Deck{1, 0, 1},
		TargetIndex: 1,
		TargetCount: 3,
		Mode:        session.ModeAnswer,
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	return snapshot.New(e, "session-1", time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
}

func openTestSQLite(t *testing.T) SnapshotRepo {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "nested", "marusora.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func repos(t *testing.T) map[string]SnapshotRepo {
	t.Helper()
	file, err := Open(filepath.Join(t.TempDir(), "dir", "marusora.save"))
	if err != nil {
		t.Fatalf("open file repo: %v", err)
	}
	return map[string]SnapshotRepo{
		"file":   file,
		"sqlite": openTestSQLite(t),
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	tests := []struct {
		path   string
		sqlite bool
	}{
		{"marusora.save", false},
		{"state.json", false},
		{"state.db", true},
		{"state.SQLITE", true},
		{"state.sqlite3", true},
	}
	for _, tt := range tests {
		if got := IsSQLitePath(tt.path); got != tt.sqlite {
			t.Errorf("IsSQLitePath(%q) = %v, want %v", tt.path, got, tt.sqlite)
		}
	}

	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestPragmasApplied(t *testing.T) {
	r := openTestSQLite(t)
	db := r.(*sqliteRepo).DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveLoadClear(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// No snapshot yet.
			snap, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("load (empty): %v", err)
			}
			if snap != nil {
				t.Fatal("expected nil snapshot when none exist")
			}

			want := testSnapshot(t)
			if err := repo.Save(ctx, want); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got == nil {
				t.Fatal("expected snapshot after save")
			}
			if got.SessionID != want.SessionID {
				t.Errorf("SessionID = %q, want %q", got.SessionID, want.SessionID)
			}
			if got.State.TargetIndex != 1 || got.State.TargetCount != 3 || got.State.Mode != session.ModeAnswer {
				t.Errorf("State = %+v", got.State)
			}
			if len(got.State.Deck) != 3 || got.Store.Size() != 2 {
				t.Errorf("deck %v, store size %d", got.State.Deck, got.Store.Size())
			}

			// Save replaces the previous snapshot.
			e, err := got.Engine()
			if err != nil {
				t.Fatalf("engine: %v", err)
			}
			e.Advance()
			if err := repo.Save(ctx, snapshot.New(e, "session-2", time.Now())); err != nil {
				t.Fatalf("save again: %v", err)
			}
			got, err = repo.Load(ctx)
			if err != nil {
				t.Fatalf("load again: %v", err)
			}
			if got.SessionID != "session-2" || got.State.TargetIndex != 2 {
				t.Errorf("second load = %s idx %d", got.SessionID, got.State.TargetIndex)
			}

			if err := repo.Clear(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if err := repo.Clear(ctx); err != nil {
				t.Fatalf("clear twice: %v", err)
			}
			snap, err = repo.Load(ctx)
			if err != nil || snap != nil {
				t.Errorf("after clear: snap=%v err=%v", snap, err)
			}
		})
	}
}

func TestFileRepo_CorruptSnapshot(t *testing.T) {
	p := filepath.Join(t.TempDir(), "marusora.save")
	if err := os.WriteFile(p, []byte(`{"version":"v1.0.0","deck":[`), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := NewFileRepo(p).Load(context.Background())
	if snap != nil {
		t.Error("expected nil snapshot for corrupt file")
	}
	if !errors.Is(err, snapshot.ErrCorrupt) {
		t.Errorf("Load error = %v, want ErrCorrupt", err)
	}
}

func TestSQLiteRepo_CorruptSnapshot(t *testing.T) {
	r := openTestSQLite(t)
	db := r.(*sqliteRepo).DB()
	_, err := db.Exec(`INSERT INTO session_snapshot (id, data) VALUES (1, 'garbage')`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = r.Load(context.Background())
	if !errors.Is(err, snapshot.ErrCorrupt) {
		t.Errorf("Load error = %v, want ErrCorrupt", err)
	}
}

func TestFileRepo_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepo(filepath.Join(dir, "marusora.save"))
	if err := repo.Save(context.Background(), testSnapshot(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "marusora.save" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only marusora.save", names)
	}
}
