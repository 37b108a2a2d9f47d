package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite

	"quiz-widget/internal/domain"
)

// DefaultPath is where scores live when no path is configured.
const DefaultPath = "quiz.db"

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
`

// ScoreStore is a file-backed key/value store that outlives the process.
type ScoreStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the SQLite file at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*ScoreStore, error) {
	if path == "" {
		path = DefaultPath
	}
	dsn := "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open score db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &ScoreStore{db: db, now: time.Now}, nil
}

func (s *ScoreStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, s.now().Unix())
	if err != nil {
		return fmt.Errorf("store score: %w", err)
	}
	return nil
}

func (s *ScoreStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrScoreNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read score: %w", err)
	}
	return value, nil
}

func (s *ScoreStore) Close() error {
	return s.db.Close()
}
