package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	list_name   TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	outcome     TEXT    NOT NULL,
	status      INTEGER NOT NULL DEFAULT 0,
	message     TEXT    NOT NULL DEFAULT '',
	created_at  TEXT    NOT NULL
);`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, a *Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (list_name, description, outcome, status, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ListName, a.Description, string(a.Outcome), a.Status, a.Message,
		a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

// Recent returns the newest attempts first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, list_name, description, outcome, status, message, created_at
		 FROM attempts ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []*Attempt{}
	for rows.Next() {
		a := &Attempt{}
		var outcome, createdAt string
		if err := rows.Scan(&a.ID, &a.ListName, &a.Description, &outcome, &a.Status, &a.Message, &createdAt); err != nil {
			return nil, err
		}
		a.Outcome = Outcome(outcome)
		created, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("attempt %d has a bad created_at %q - %w", a.ID, createdAt, err)
		}
		a.CreatedAt = created
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
