package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilenceBudgets(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30.0, silenceBudget(cfg, ModeInterval, SegmentWork, true, 100))
	assert.Equal(t, 45.0, silenceBudget(cfg, ModeInterval, SegmentRecovery, true, 100))

	// easy run: base 45 floored at 60, ramping +15 per 10 minutes, capped at 120
	assert.Equal(t, 60.0, silenceBudget(cfg, ModeEasyRun, SegmentSteady, true, 100))
	assert.Equal(t, 75.0, silenceBudget(cfg, ModeEasyRun, SegmentSteady, true, 1300))
	assert.Equal(t, 120.0, silenceBudget(cfg, ModeEasyRun, SegmentSteady, true, 7200))

	// no HR multiplies before the floor
	assert.Equal(t, 67.5, silenceBudget(cfg, ModeEasyRun, SegmentSteady, false, 100))
	assert.Equal(t, 45.0, silenceBudget(cfg, ModeInterval, SegmentWork, false, 100))

	assert.Equal(t, 75.0, silenceBudget(cfg, ModeFreeRun, SegmentSteady, true, 100))
}

func TestMaxSilenceRichestSourceSelection(t *testing.T) {
	cfg := DefaultConfig()
	band := TargetBand{Low: 147, High: 163, Enforced: true}

	// full HR and enforced target: zone override
	s := NewState("s1")
	s.LastSpokenAt = 0
	ev := maxSilence(cfg, s, ModeEasyRun, SegmentSteady, band, 100)
	require.NotNil(t, ev)
	assert.Equal(t, EventMaxSilenceOverride, ev.Type)

	// HR lost but breath reliable: breath guide
	s = NewState("s1")
	s.LastSpokenAt = 0
	s.HRSignalOK = false
	s.SensorMode = SensorBreathFallback
	s.BreathReliable = true
	ev = maxSilence(cfg, s, ModeEasyRun, SegmentSteady, band, 100)
	require.NotNil(t, ev)
	assert.Equal(t, EventBreathGuide, ev.Type)

	// nothing available: go by feel
	s = NewState("s1")
	s.LastSpokenAt = 0
	s.HRSignalOK = false
	s.SensorMode = SensorNoSensors
	ev = maxSilence(cfg, s, ModeEasyRun, SegmentSteady, band, 100)
	require.NotNil(t, ev)
	assert.Equal(t, EventGoByFeel, ev.Type)
}

func TestMaxSilenceUnderBudgetStaysQuiet(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.LastSpokenAt = 80

	ev := maxSilence(cfg, s, ModeEasyRun, SegmentSteady, TargetBand{Enforced: true}, 100)
	assert.Nil(t, ev)
}

func TestEasyRunForcedSpacingFallsToMotivation(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.LastSpokenAt = 0
	s.LastForcedAt = 40 // a forced cue 60s ago, inside the 90s spacing window

	ev := maxSilence(cfg, s, ModeEasyRun, SegmentSteady, TargetBand{Enforced: true}, 100)
	require.NotNil(t, ev)
	assert.Equal(t, EventMaxSilenceMotivation, ev.Type)
}

func TestIntervalForcedOncePerPhase(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.LastSpokenAt = 0
	s.PhaseID = 3
	s.SegmentStartAt = 0
	s.SegmentEndsAt = 300

	ev := maxSilence(cfg, s, ModeInterval, SegmentWork, TargetBand{Enforced: true}, 100)
	require.NotNil(t, ev)
	assert.Equal(t, EventMaxSilenceOverride, ev.Type)
	assert.Equal(t, 3, s.LastForcedPhaseID)

	// same phase id: the forced cue is suppressed, motivation takes over
	s.LastSpokenAt = 100
	ev = maxSilence(cfg, s, ModeInterval, SegmentWork, TargetBand{Enforced: true}, 200)
	require.NotNil(t, ev)
	assert.Equal(t, EventMaxSilenceMotivation, ev.Type)
}

func TestIntervalWorkHeadAndRecoveryTailQuiet(t *testing.T) {
	cfg := DefaultConfig()

	s := NewState("s1")
	s.SegmentStartAt = 95 // 5s into the work segment
	assert.True(t, forcedSuppressed(cfg, s, ModeInterval, SegmentWork, 100))

	s = NewState("s1")
	s.SegmentEndsAt = 120 // 20s of recovery remaining
	assert.True(t, forcedSuppressed(cfg, s, ModeInterval, SegmentRecovery, 100))

	s = NewState("s1")
	s.SegmentStartAt = 50
	s.SegmentEndsAt = 200
	assert.False(t, forcedSuppressed(cfg, s, ModeInterval, SegmentWork, 100))
}

func TestMotivationBarrierAndSpacing(t *testing.T) {
	cfg := DefaultConfig()

	// barrier: recent high-tier speech suppresses motivation entirely
	s := NewState("s1")
	s.LastSpokenAt = 90
	s.LastSpokenPriority = priorityCoaching
	assert.Nil(t, motivation(cfg, s, ModeInterval, 100))

	// spacing: one motivation per window
	s = NewState("s1")
	s.LastSpokenAt = 0
	s.LastSpokenPriority = priorityMotivation
	ev := motivation(cfg, s, ModeInterval, 100)
	require.NotNil(t, ev)
	assert.Nil(t, motivation(cfg, s, ModeInterval, 130), "60s spacing for intervals")
}
