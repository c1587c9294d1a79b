package jokes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore serves jokes from a SQLite database, so a deployment can
// ship or grow its own dataset. It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Source = (*SQLiteStore)(nil)

// ErrStoreClosed indicates the store has been closed.
var ErrStoreClosed = errors.New("joke store closed")

// NewSQLiteStore opens (creating if needed) a joke database.
// The path should be a file path (e.g. "./jokes.db") or ":memory:"
// for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS jokes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			language TEXT NOT NULL,
			text TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_jokes_category_language
		ON jokes(category, language)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Fetch implements Source, returning a random joke for the category
// and language. The "all" category ignores the category filter.
func (s *SQLiteStore) Fetch(ctx context.Context, category, language string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var (
		text string
		err  error
	)
	if category == "all" {
		err = s.db.QueryRowContext(ctx, `
			SELECT text FROM jokes
			WHERE language = ?
			ORDER BY RANDOM() LIMIT 1
		`, language).Scan(&text)
	} else {
		err = s.db.QueryRowContext(ctx, `
			SELECT text FROM jokes
			WHERE category = ? AND language = ?
			ORDER BY RANDOM() LIMIT 1
		`, category, language).Scan(&text)
	}

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: no jokes for category %q language %q", ErrUnavailable, category, language)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

// Add inserts a joke into the dataset.
func (s *SQLiteStore) Add(ctx context.Context, category, language, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO jokes (category, language, text) VALUES (?, ?, ?)
	`, category, language, text); err != nil {
		return fmt.Errorf("add joke: %w", err)
	}
	return nil
}

// Count returns the number of jokes stored for a category and language.
func (s *SQLiteStore) Count(ctx context.Context, category, language string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM jokes WHERE category = ? AND language = ?
	`, category, language).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jokes: %w", err)
	}
	return n, nil
}

// Seed copies the built-in dataset into the store. Convenient for
// bootstrapping a fresh database file.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	for category, byLang := range builtinDataset() {
		for language, texts := range byLang {
			for _, text := range texts {
				if err := s.Add(ctx, category, language, text); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
