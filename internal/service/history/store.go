package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SearchLimit bounds how many entries a search returns.
const SearchLimit = 50

// ErrEmptyTerm reports a search with nothing to look for.
var ErrEmptyTerm = errors.New("search term is empty")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS chat_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_history_created_at ON chat_history(created_at);
`

// Entry is one recorded question/answer exchange.
type Entry struct {
	ID        int64
	Question  string
	Answer    string
	CreatedAt time.Time
}

// Store is the local exchange log: every completed exchange is recorded and
// can be searched later. It is an audit and recall aid for the user, not a
// conversation persistence format.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one exchange to the log.
func (s *Store) Record(ctx context.Context, question, answer string) error {
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_history(question, answer, created_at) VALUES(?, ?, ?)",
		question, answer, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record exchange: %w", err)
	}
	return nil
}

// Search returns entries whose question or answer contains term, newest
// first, capped at SearchLimit.
func (s *Store) Search(ctx context.Context, term string) ([]Entry, error) {
	if term == "" {
		return nil, ErrEmptyTerm
	}

	like := "%" + term + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, answer, created_at
		 FROM chat_history
		 WHERE question LIKE ? OR answer LIKE ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		like, like, SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
