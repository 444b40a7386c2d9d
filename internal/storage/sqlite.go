package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"qtb/internal/domain"
)

// HistoryStore keeps an append-only record of past sessions in a local
// SQLite database so `qtb history` can show trends across runs.
type HistoryStore struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	total_cases INTEGER NOT NULL,
	passed_cases INTEGER NOT NULL,
	failed_cases INTEGER NOT NULL,
	duration_seconds REAL NOT NULL
);
`

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Record appends one completed session.
func (h *HistoryStore) Record(meta domain.SessionMeta) error {
	_, err := h.db.Exec(
		`INSERT INTO sessions (timestamp, total_cases, passed_cases, failed_cases, duration_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		meta.Timestamp, meta.TotalCases, meta.PassedCases, meta.FailedCases, meta.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Sessions returns up to limit sessions, newest first.
func (h *HistoryStore) Sessions(limit int) ([]domain.SessionMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT timestamp, total_cases, passed_cases, failed_cases, duration_seconds
		 FROM sessions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SessionMeta
	for rows.Next() {
		var m domain.SessionMeta
		if err := rows.Scan(&m.Timestamp, &m.TotalCases, &m.PassedCases, &m.FailedCases, &m.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, m)
	}
	return sessions, rows.Err()
}

// Close closes the underlying database.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}
