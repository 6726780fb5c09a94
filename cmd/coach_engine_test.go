package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runvoice/coach-engine/internal/engine"
	"github.com/runvoice/coach-engine/internal/session"
)

func TestFormatMetrics(t *testing.T) {
	pct := 73.0
	in := engine.NewTickInput("run-1", engine.ModeEasyRun, engine.PhaseMain, 600)
	in.HeartRate = 155

	out := session.Outcome{
		SessionID: "run-1",
		Input:     in,
		Decision: engine.Decision{
			ZoneStatus:      engine.ZoneIn,
			SensorMode:      engine.SensorFullHR,
			MovementState:   engine.MovementMoving,
			TargetEnforced:  true,
			TargetHRLow:     147,
			TargetHRHigh:    163,
			TargetSource:    "hrr",
			Score:           73,
			ScoreConfidence: engine.ConfidenceHigh,
			TimeInTargetPct: &pct,
		},
	}

	text := formatMetrics(out)
	assert.Contains(t, text, "147-163 bpm (hrr)")
	assert.Contains(t, text, "73%", "time in target is already a percentage")
	assert.NotContains(t, text, "7300")
	assert.Contains(t, text, "run-1")
}

func TestFormatMetricsDegraded(t *testing.T) {
	in := engine.NewTickInput("run-2", engine.ModeFreeRun, engine.PhaseMain, 60)

	out := session.Outcome{
		SessionID: "run-2",
		Input:     in,
		Decision: engine.Decision{
			ZoneStatus:      engine.ZoneTimingControl,
			SensorMode:      engine.SensorNoSensors,
			MovementState:   engine.MovementUnknown,
			ScoreConfidence: engine.ConfidenceLow,
		},
	}

	text := formatMetrics(out)
	assert.Contains(t, text, "Target     none")
	assert.Contains(t, text, "In target  n/a", "low confidence hides the percentage")
}
