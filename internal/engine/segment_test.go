package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntervalTemplate(t *testing.T) {
	plan := parseIntervalTemplate("6x180/60")
	assert.Equal(t, intervalPlan{Repeats: 6, WorkSeconds: 180, RecoverySecs: 60}, plan)

	for _, bad := range []string{"", "x180/60", "6x180", "0x180/60", "6x-10/60", "6x180/0", "banana"} {
		assert.Equal(t, defaultIntervalPlan, parseIntervalTemplate(bad), "template %q", bad)
	}
}

func TestIntervalPlanSegments(t *testing.T) {
	plan := intervalPlan{Repeats: 2, WorkSeconds: 120, RecoverySecs: 60}

	kind, start, end := plan.segmentAt(30)
	assert.Equal(t, SegmentWork, kind)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 120.0, end)

	kind, start, end = plan.segmentAt(150)
	assert.Equal(t, SegmentRecovery, kind)
	assert.Equal(t, 120.0, start)
	assert.Equal(t, 180.0, end)

	kind, _, _ = plan.segmentAt(200)
	assert.Equal(t, SegmentWork, kind, "second repeat")

	kind, _, end = plan.segmentAt(400)
	assert.Equal(t, SegmentRecovery, kind, "past the last repeat stays in recovery")
	assert.Equal(t, farFuture, end)
}

func TestTrackPhaseAnnouncesTransitions(t *testing.T) {
	s := NewState("s1")
	in := NewTickInput("s1", ModeEasyRun, PhaseWarmup, 0)

	events := trackPhase(s, in, 0)
	require.Len(t, events, 1)
	assert.Equal(t, EventPhaseWarmup, events[0].Type)
	firstID := s.PhaseID

	// same phase, no announcement
	events = trackPhase(s, in, 10)
	assert.Empty(t, events)
	assert.Equal(t, firstID, s.PhaseID)

	in.Phase = PhaseMain
	events = trackPhase(s, in, 300)
	require.NotEmpty(t, events)
	assert.Equal(t, EventPhaseMainSet, events[0].Type)
	assert.Greater(t, s.PhaseID, firstID)
}

func TestIntervalCountdownMarks(t *testing.T) {
	s := NewState("s1")
	in := NewTickInput("s1", ModeInterval, PhaseMain, 0)
	in.IntervalTemplate = "2x60/60"

	var fired []EventType
	for elapsed := 0.0; elapsed <= 120; elapsed += 5 {
		in.ElapsedSeconds = elapsed
		for _, ev := range trackPhase(s, in, elapsed) {
			fired = append(fired, ev.Type)
		}
	}

	count := func(t EventType) int {
		n := 0
		for _, f := range fired {
			if f == t {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(EventIntervalCountdownStart), "one countdown open per recovery tail")
	assert.Equal(t, 1, count(EventCountdown15))
	assert.Equal(t, 1, count(EventCountdown5))
}
