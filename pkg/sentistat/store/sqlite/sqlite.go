package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/sentistat/pkg/sentistat/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a run history database.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	input TEXT,
	created_at TEXT NOT NULL,
	result TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_kind ON runs(kind);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save inserts or replaces a run
func (s *sqliteStore) Save(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id")
	}
	const stmt = `
INSERT INTO runs (id, kind, input, created_at, result)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	kind=excluded.kind,
	input=excluded.input,
	created_at=excluded.created_at,
	result=excluded.result;
`
	_, err := s.db.ExecContext(ctx, stmt,
		r.ID,
		string(r.Kind),
		r.Input,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(r.Result),
	)
	return err
}

// Get loads a run by ID
func (s *sqliteStore) Get(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, input, created_at, result FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return r, err
}

// List returns runs newest first (ULIDs sort by time), optionally filtered
// by kind.
func (s *sqliteStore) List(ctx context.Context, kind store.Kind, limit int) ([]store.Run, error) {
	query := `SELECT id, kind, input, created_at, result FROM runs`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r       store.Run
		kind    string
		input   sql.NullString
		created string
		result  string
	)
	if err := sc.Scan(&r.ID, &kind, &input, &created, &result); err != nil {
		return store.Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	r.Kind = store.Kind(kind)
	r.Input = input.String
	r.CreatedAt = t
	r.Result = []byte(result)
	return r, nil
}
