package sim

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runvoice/coach-engine/internal/engine"
	"github.com/runvoice/coach-engine/internal/session"
)

func TestLibraryLookup(t *testing.T) {
	for _, name := range Names() {
		p, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.Trace)
	}
	_, ok := ByName("nope")
	assert.False(t, ok)
}

func TestPhaseLayout(t *testing.T) {
	p, ok := ByName("easy")
	require.True(t, ok)

	assert.Equal(t, engine.PhaseWarmup, p.PhaseAt(0))
	assert.Equal(t, engine.PhaseMain, p.PhaseAt(p.WarmupSeconds))
	assert.Equal(t, engine.PhaseCooldown, p.PhaseAt(p.WarmupSeconds+p.MainSeconds))
	assert.Equal(t, engine.PhaseFinished, p.PhaseAt(p.TotalSeconds()))
}

func TestTickAtInterpolatesHR(t *testing.T) {
	p := &Profile{
		Name: "t", Mode: engine.ModeEasyRun,
		WarmupSeconds: 100, MainSeconds: 100, CooldownSeconds: 0,
		Trace: []Stretch{{Duration: 100, StartHR: 100, EndHR: 200, Cadence: 160}},
	}

	assert.Equal(t, 100.0, p.TickAt("s", 0).HeartRate)
	assert.Equal(t, 150.0, p.TickAt("s", 50).HeartRate)
	assert.Equal(t, 200.0, p.TickAt("s", 150).HeartRate, "past the trace the last stretch holds")
}

func TestTickAtFaultInjection(t *testing.T) {
	p := &Profile{
		Name: "t", Mode: engine.ModeEasyRun, WarmupSeconds: 0, MainSeconds: 300,
		Trace: []Stretch{
			{Duration: 100, StartHR: 150, EndHR: 150, Cadence: 160, DropHR: true},
			{Duration: 100, StartHR: 150, EndHR: 150, Cadence: 160, PoorHR: true},
			{Duration: 100, StartHR: 150, EndHR: 120, Paused: true},
		},
	}

	drop := p.TickAt("s", 50)
	assert.Zero(t, drop.HeartRate)
	assert.False(t, drop.WatchConnected)

	poor := p.TickAt("s", 150)
	assert.Equal(t, "poor", poor.HRQualityHint)

	paused := p.TickAt("s", 250)
	assert.Equal(t, 0.05, paused.MovementScore)
	assert.Zero(t, paused.CadenceSPM)
}

// The scripted profiles double as end-to-end fixtures: every one of them must
// drive a full session without tripping the engine's invariants.
func TestProfilesDriveFullSessions(t *testing.T) {
	for _, name := range Names() {
		p, ok := ByName(name)
		require.True(t, ok)

		t.Run(name, func(t *testing.T) {
			logger := log.New(io.Discard, "", 0)
			eng, err := engine.NewEngine(engine.DefaultConfig(), logger)
			require.NoError(t, err)
			mgr := session.NewManager(eng, session.NewMemoryStore(), logger)

			spoke := 0
			var lastSpokeAt float64
			maxGap := 0.0
			for elapsed := 0.0; elapsed <= p.TotalSeconds(); elapsed++ {
				d, err := mgr.Tick(p.TickAt("sim", elapsed))
				require.NoError(t, err)
				if d.ShouldSpeak {
					require.NotEmpty(t, d.PrimaryEventType, "t=%v", elapsed)
					if spoke > 0 {
						gap := elapsed - lastSpokeAt
						if gap > maxGap {
							maxGap = gap
						}
					}
					spoke++
					lastSpokeAt = elapsed
				}
			}

			assert.Greater(t, spoke, 3, "a full workout earns more than a handful of cues")
			assert.LessOrEqual(t, maxGap, 200.0, "the safety net bounds silent stretches")
		})
	}
}
