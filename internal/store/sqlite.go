package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/marusora/internal/snapshot"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// sqliteRepo keeps the snapshot document in a single-row table.
type sqliteRepo struct {
	db   *sqlx.DB
	path string
}

type snapshotRow struct {
	ID        int    `db:"id"`
	SessionID string `db:"session_id"`
	SavedAt   string `db:"saved_at"`
	Data      string `db:"data"`
}

// OpenSQLite opens (creating if needed) the SQLite database at dsn.
func OpenSQLite(dsn string) (SnapshotRepo, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS session_snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		session_id TEXT NOT NULL DEFAULT '',
		saved_at TEXT NOT NULL DEFAULT '',
		data TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &sqliteRepo{db: db, path: dsn}, nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (r *sqliteRepo) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	data, err := snapshot.Marshal(snap)
	if err != nil {
		return err
	}

	row := snapshotRow{
		ID:        1,
		SessionID: snap.SessionID,
		SavedAt:   snap.SavedAt.Format(time.RFC3339),
		Data:      string(data),
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO session_snapshot (id, session_id, saved_at, data)
		VALUES (:id, :session_id, :saved_at, :data)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			saved_at = excluded.saved_at,
			data = excluded.data`, row)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *sqliteRepo) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, session_id, saved_at, data FROM session_snapshot WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return snapshot.Unmarshal([]byte(row.Data))
}

func (r *sqliteRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_snapshot`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (r *sqliteRepo) Location() string { return r.path }

// DB returns the underlying handle for raw queries.
func (r *sqliteRepo) DB() *sqlx.DB { return r.db }

func (r *sqliteRepo) Close() error {
	return r.db.Close()
}
