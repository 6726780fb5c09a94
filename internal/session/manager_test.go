package session

import (
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runvoice/coach-engine/internal/engine"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	eng, err := engine.NewEngine(engine.DefaultConfig(), logger)
	require.NoError(t, err)
	return NewManager(eng, NewMemoryStore(), logger)
}

func easyTick(session string, elapsed, hr float64) engine.TickInput {
	in := engine.NewTickInput(session, engine.ModeEasyRun, engine.PhaseMain, elapsed)
	in.HeartRate = hr
	in.WatchConnected = true
	in.HRMax = 190
	in.RestingHR = 55
	return in
}

func TestTickCreatesAndPersistsState(t *testing.T) {
	m := newTestManager(t)

	d, err := m.Tick(easyTick("s1", 0, 150))
	require.NoError(t, err)
	assert.True(t, d.ShouldSpeak, "first tick welcomes")

	d, err = m.Tick(easyTick("s1", 5, 150))
	require.NoError(t, err)
	assert.False(t, d.ShouldSpeak, "state carried over, no second welcome")
}

func TestTickRequiresSessionID(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Tick(engine.TickInput{Mode: engine.ModeEasyRun, Phase: engine.PhaseMain})
	assert.Error(t, err)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := newTestManager(t)

	d1, err := m.Tick(easyTick("s1", 0, 150))
	require.NoError(t, err)
	d2, err := m.Tick(easyTick("s2", 0, 150))
	require.NoError(t, err)

	assert.True(t, d1.ShouldSpeak)
	assert.True(t, d2.ShouldSpeak, "each session gets its own welcome")
}

func TestEndResetsSession(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Tick(easyTick("s1", 0, 150))
	require.NoError(t, err)
	require.NoError(t, m.End("s1"))

	d, err := m.Tick(easyTick("s1", 0, 150))
	require.NoError(t, err)
	assert.True(t, d.ShouldSpeak, "ended session restarts from a fresh state")
}

func TestDecisionsArePublished(t *testing.T) {
	m := newTestManager(t)
	ch, cancel := m.Decisions().Subscribe(10)
	defer cancel()

	_, err := m.Tick(easyTick("s1", 0, 150))
	require.NoError(t, err)

	out := <-ch
	assert.Equal(t, "s1", out.SessionID)
	assert.Equal(t, engine.EventWelcome, out.Decision.EventType)
}

func TestConcurrentTicksSerializePerSession(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := m.Tick(easyTick("shared", float64(i), 150))
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	// exactly one welcome across all interleavings
	s, err := m.store.Get("shared")
	require.NoError(t, err)
	assert.True(t, s.WelcomeSpoken)
	assert.Equal(t, 19.0, s.LastElapsed)
}

func TestMemoryStoreClonesOnGetAndPut(t *testing.T) {
	store := NewMemoryStore()
	s := engine.NewState("s1")
	s.SpeechTimes = []float64{1}
	require.NoError(t, store.Put(s))

	s.SpeechTimes[0] = 99
	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.SpeechTimes[0], "put must copy")

	got.SpeechTimes[0] = 42
	again, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.SpeechTimes[0], "get must copy")
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete("missing"))
}
