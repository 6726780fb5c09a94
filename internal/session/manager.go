package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/runvoice/coach-engine/internal/engine"
	"github.com/runvoice/coach-engine/internal/events"
)

// Outcome pairs a decision with the session that produced it, for fan-out to
// renderers, TTS and the dashboard.
type Outcome struct {
	SessionID string
	Input     engine.TickInput
	Decision  engine.Decision
}

// Manager serializes ticks per session and moves state through the store.
// The engine itself is pure; the manager owns the single-writer discipline:
// two concurrent ticks for the same session queue on that session's lock,
// ticks for different sessions run in parallel.
type Manager struct {
	engine *engine.Engine
	store  StateStore
	logger *log.Logger

	decisions *events.Feed[Outcome]

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager wires a manager. All dependencies are mandatory.
func NewManager(eng *engine.Engine, store StateStore, logger *log.Logger) *Manager {
	if eng == nil {
		panic("Manager: engine must not be nil")
	}
	if store == nil {
		panic("Manager: store must not be nil")
	}
	if logger == nil {
		panic("Manager: logger must not be nil")
	}
	return &Manager{
		engine:    eng,
		store:     store,
		logger:    logger,
		decisions: events.NewFeed[Outcome](true),
	}
}

// Decisions is the feed every evaluated tick is published on.
func (m *Manager) Decisions() *events.Feed[Outcome] {
	return m.decisions
}

func (m *Manager) sessionLock(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[sessionID]
	if !ok {
		if m.locks == nil {
			m.locks = make(map[string]*sync.Mutex)
		}
		l = &sync.Mutex{}
		m.locks[sessionID] = l
	}
	return l
}

// Tick evaluates one tick for the session named in the input. State is
// loaded, evaluated, and committed under the session's lock; the new state is
// stored only after a successful evaluation, and the decision is published
// after the commit.
func (m *Manager) Tick(in engine.TickInput) (engine.Decision, error) {
	if in.SessionID == "" {
		return engine.Decision{}, fmt.Errorf("tick: session id is required")
	}

	l := m.sessionLock(in.SessionID)
	l.Lock()
	defer l.Unlock()

	state, err := m.store.Get(in.SessionID)
	if errors.Is(err, ErrNotFound) {
		state = engine.NewState(in.SessionID)
	} else if err != nil {
		return engine.Decision{}, fmt.Errorf("tick: load state for %s: %w", in.SessionID, err)
	}

	decision, newState := m.engine.Evaluate(state, in)

	if err := m.store.Put(newState); err != nil {
		return engine.Decision{}, fmt.Errorf("tick: commit state for %s: %w", in.SessionID, err)
	}

	if decision.ShouldSpeak {
		m.logger.Printf("Manager: session %s speaks %s (%s) at %.0fs",
			in.SessionID, decision.EventType, decision.Reason, in.ElapsedSeconds)
	}
	m.decisions.Publish(Outcome{SessionID: in.SessionID, Input: in, Decision: decision})
	return decision, nil
}

// End tears a session down, dropping its state and lock.
func (m *Manager) End(sessionID string) error {
	l := m.sessionLock(sessionID)
	l.Lock()
	err := m.store.Delete(sessionID)
	l.Unlock()

	m.mu.Lock()
	delete(m.locks, sessionID)
	m.mu.Unlock()
	return err
}
