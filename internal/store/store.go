package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/runvoice/coach-engine/internal/engine"
	"github.com/runvoice/coach-engine/internal/session"
)

// Store is the SQLite-backed session state store. State travels as a JSON
// blob keyed by session id; the engine's struct shape is its own business and
// the schema stays stable across engine changes.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and runs the
// migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return newStore(db), nil
}

func newStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_states (
			session_id TEXT PRIMARY KEY,
			state      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get loads a session's engine state. Returns session.ErrNotFound when the
// session has never been stored.
func (s *Store) Get(sessionID string) (*engine.State, error) {
	var blob string
	err := s.db.QueryRow(
		`SELECT state FROM session_states WHERE session_id = ?`, sessionID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading state for %s: %w", sessionID, err)
	}

	var state engine.State
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("decoding state for %s: %w", sessionID, err)
	}
	return &state, nil
}

// Put stores or replaces a session's engine state.
func (s *Store) Put(state *engine.State) error {
	if state == nil || state.SessionID == "" {
		return errors.New("store: state must carry a session id")
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state for %s: %w", state.SessionID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO session_states (session_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at`,
		state.SessionID, string(blob), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("storing state for %s: %w", state.SessionID, err)
	}
	return nil
}

// Delete removes a session's state. Deleting an absent session is not an
// error.
func (s *Store) Delete(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM session_states WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting state for %s: %w", sessionID, err)
	}
	return nil
}

// Sessions lists the stored session ids, most recently updated first.
func (s *Store) Sessions() ([]string, error) {
	rows, err := s.db.Query(`SELECT session_id FROM session_states ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
