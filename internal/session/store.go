package session

import (
	"errors"
	"sync"

	"github.com/runvoice/coach-engine/internal/engine"
)

// ErrNotFound is returned when no state exists for a session id.
var ErrNotFound = errors.New("session state not found")

// StateStore persists engine state between ticks, keyed by session id. The
// persistence mechanism is the store's concern; the manager only needs
// get/put/delete.
type StateStore interface {
	Get(sessionID string) (*engine.State, error)
	Put(state *engine.State) error
	Delete(sessionID string) error
}

// MemoryStore is an in-process StateStore. States are cloned on the way in
// and out so callers can never alias the stored copy.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*engine.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*engine.State)}
}

func (m *MemoryStore) Get(sessionID string) (*engine.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Put(state *engine.State) error {
	if state == nil || state.SessionID == "" {
		return errors.New("memory store: state must carry a session id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.SessionID] = state.Clone()
	return nil
}

func (m *MemoryStore) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	return nil
}
