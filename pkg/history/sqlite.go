package history

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/planline/planline/pkg/errors"
)

// SQLiteStore persists runs to a local SQLite database. WAL mode is enabled
// so a serving process and a CLI can share the file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path and
// applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open history db")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping history db")
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "enable WAL mode")
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	// Query columns for listing, the full record as a JSON blob.
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		dict_hash TEXT NOT NULL,
		crossings INTEGER NOT NULL,
		planar BOOLEAN NOT NULL,
		payload JSON NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create runs table")
	}
	return nil
}

// Save persists a run. Saving the same ID twice replaces the record.
func (s *SQLiteStore) Save(ctx context.Context, run *Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal run")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (id, created_at, dict_hash, crossings, planar, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.CreatedAt, run.DictHash, run.Crossings, run.Planar, payload)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "insert run")
	}
	return nil
}

// Get retrieves a run by ID.
func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM runs WHERE id = ?", id.String()).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run not found: %s", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query run")
	}

	var run Run
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "unmarshal run")
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Run, error) {
	query := "SELECT payload FROM runs ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan run")
		}
		var run Run
		if err := json.Unmarshal(payload, &run); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "unmarshal run")
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "iterate runs")
	}
	return runs, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
