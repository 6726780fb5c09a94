package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sustainedTick() TickInput {
	in := NewTickInput("s1", ModeEasyRun, PhaseMain, 30)
	in.HeartRate = 140
	return in
}

func TestSustainedPushRequiresConfirmedMovement(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.ZoneConfirmed = ZoneBelow
	s.BelowStartedAt = 0
	s.Movement = MovementPaused

	// a strong score during a confirmed pause must not push
	events := detectSustained(cfg, s, sustainedTick(), hrVerdict{Good: true}, 0.8, true, 30)
	assert.Empty(t, events)

	s.Movement = MovementMoving
	events = detectSustained(cfg, s, sustainedTick(), hrVerdict{Good: true}, 0.8, true, 30)
	require.Len(t, events, 1)
	assert.Equal(t, EventBelowZonePush, events[0].Type)
}

func TestSustainedPushNeedsMovementScore(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.ZoneConfirmed = ZoneBelow
	s.BelowStartedAt = 0
	s.Movement = MovementMoving

	events := detectSustained(cfg, s, sustainedTick(), hrVerdict{Good: true}, 0.1, true, 30)
	assert.Empty(t, events, "a weak score means the athlete cannot be pushed")

	events = detectSustained(cfg, s, sustainedTick(), hrVerdict{Good: true}, 0.8, false, 30)
	assert.Empty(t, events, "no score, no push")
}

func TestSustainedEaseOnRisingHR(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.ZoneConfirmed = ZoneAbove
	s.AboveStartedAt = 0

	rising := hrVerdict{Good: true, HasDelta: true, DeltaBPM: 2, GapSeconds: 5}
	events := detectSustained(cfg, s, sustainedTick(), rising, 0.8, true, 25)
	require.Len(t, events, 1)
	assert.Equal(t, EventAboveZoneEase, events[0].Type)

	// the repeat guard holds the next cue back
	events = detectSustained(cfg, s, sustainedTick(), rising, 0.8, true, 40)
	assert.Empty(t, events)
}

func TestSustainedEaseOnStressedBreath(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.ZoneConfirmed = ZoneAbove
	s.AboveStartedAt = 0

	in := sustainedTick()
	in.BreathIntensity = BreathCritical
	events := detectSustained(cfg, s, in, hrVerdict{Good: true}, 0.8, true, 25)
	require.Len(t, events, 1)
	assert.Equal(t, EventAboveZoneEase, events[0].Type)
}

func TestSustainedSilentOnPoorHR(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState("s1")
	s.ZoneConfirmed = ZoneBelow
	s.BelowStartedAt = 0
	s.Movement = MovementMoving

	events := detectSustained(cfg, s, sustainedTick(), hrVerdict{Good: false}, 0.8, true, 30)
	assert.Empty(t, events)
}
