package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/flemzord/chacha/internal/session"
)

// transcriptStore implements session.Store backed by SQLite. Turn order
// is a per-session sequence number assigned at insert time.
type transcriptStore struct {
	db *sql.DB
}

// Compile-time interface guard.
var _ session.Store = (*transcriptStore)(nil)

// Append implements session.Store. The COALESCE(MAX(seq))+1 subquery and
// the single-connection pool make the sequence assignment atomic.
func (s *transcriptStore) Append(sessionID string, turn session.Turn) error {
	_, err := s.db.Exec(
		`INSERT INTO turns (session_id, seq, role, content)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM turns WHERE session_id = ?), ?, ?)`,
		sessionID, sessionID, string(turn.Role), turn.Content,
	)
	if err != nil {
		return fmt.Errorf("sqlite: append turn: %w", err)
	}
	return nil
}

// Turns implements session.Store.
func (s *transcriptStore) Turns(sessionID string) ([]session.Turn, error) {
	rows, err := s.db.Query(
		`SELECT role, content FROM turns WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load transcript: %w", err)
	}
	defer rows.Close() //nolint:errcheck // best-effort close

	var turns []session.Turn
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("sqlite: scan turn: %w", err)
		}
		turns = append(turns, session.Turn{Role: session.Role(role), Content: content})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate turns: %w", err)
	}
	return turns, nil
}

// Len implements session.Store.
func (s *transcriptStore) Len(sessionID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM turns WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count turns: %w", err)
	}
	return n, nil
}

// Sessions implements session.Store. Errors degrade to zero; the count
// only feeds status endpoints.
func (s *transcriptStore) Sessions() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT session_id) FROM turns`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Purge implements session.Store.
func (s *transcriptStore) Purge(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("sqlite: purge session: %w", err)
	}
	return nil
}
