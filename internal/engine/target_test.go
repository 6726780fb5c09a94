package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfileMethods(t *testing.T) {
	tests := []struct {
		name   string
		in     TickInput
		ok     bool
		method string
		hrMax  float64
	}{
		{"hrr with max and resting", TickInput{HRMax: 190, RestingHR: 55}, true, methodHRR, 190},
		{"pct max with max only", TickInput{HRMax: 185}, true, methodPctMax, 185},
		{"age fallback", TickInput{Age: 40}, true, methodPctMax, 180},
		{"resting without max still uses age", TickInput{RestingHR: 60, Age: 30}, true, methodHRR, 190},
		{"nothing resolvable", TickInput{}, false, "", 0},
		{"resting above max ignored", TickInput{HRMax: 150, RestingHR: 160}, true, methodPctMax, 150},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := resolveProfile(tc.in)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.method, p.Method)
				assert.Equal(t, tc.hrMax, p.HRMax)
			}
		})
	}
}

func TestResolveTargetHRRBand(t *testing.T) {
	cfg := DefaultConfig()
	profile := HRProfile{HRMax: 190, RestingHR: 55, Method: methodHRR}

	band := resolveTarget(cfg, ModeEasyRun, SegmentSteady, StyleStandard, profile, true)
	require.True(t, band.Enforced)
	assert.Equal(t, 147.0, band.Low)
	assert.Equal(t, 163.0, band.High)
	assert.Equal(t, methodHRR, band.Source)
}

func TestResolveTargetWarmupForcesEasy(t *testing.T) {
	cfg := DefaultConfig()
	profile := HRProfile{HRMax: 190, RestingHR: 55, Method: methodHRR}

	aggressive := resolveTarget(cfg, ModeInterval, SegmentWork, StyleAggressive, profile, true)
	warmup := resolveTarget(cfg, ModeInterval, SegmentWarmup, StyleAggressive, profile, true)
	recovery := resolveTarget(cfg, ModeInterval, SegmentRecovery, StyleAggressive, profile, true)

	assert.Greater(t, aggressive.Low, warmup.Low)
	assert.Equal(t, warmup.Low, recovery.Low, "warmup and recovery both coach at easy effort")
}

func TestResolveTargetMinHalfWidth(t *testing.T) {
	cfg := DefaultConfig()
	// low reserve squeezes the raw band under the minimum width
	profile := HRProfile{HRMax: 150, RestingHR: 90, Method: methodHRR}

	band := resolveTarget(cfg, ModeEasyRun, SegmentSteady, StyleStandard, profile, true)
	require.True(t, band.Enforced)
	assert.GreaterOrEqual(t, band.High-band.Low, 2*cfg.MinBandHalfWidthBPM-1,
		"band must keep the minimum half-width (allowing for rounding)")
}

func TestResolveTargetUpperCap(t *testing.T) {
	cfg := DefaultConfig()
	profile := HRProfile{HRMax: 210, Method: methodPctMax}

	band := resolveTarget(cfg, ModeEasyRun, SegmentSteady, StyleAggressive, profile, true)
	require.True(t, band.Enforced)
	assert.LessOrEqual(t, band.High, cfg.AbsoluteHRCapBPM)

	low := HRProfile{HRMax: 160, Method: methodPctMax}
	band = resolveTarget(cfg, ModeEasyRun, SegmentSteady, StyleAggressive, low, true)
	assert.LessOrEqual(t, band.High, low.HRMax-cfg.HRCapMarginBPM)
}

func TestResolveTargetDisabledCases(t *testing.T) {
	cfg := DefaultConfig()
	profile := HRProfile{HRMax: 190, RestingHR: 55, Method: methodHRR}

	assert.False(t, resolveTarget(cfg, ModeEasyRun, SegmentSteady, StyleStandard, HRProfile{}, false).Enforced)
	assert.False(t, resolveTarget(cfg, ModeFreeRun, SegmentSteady, StyleStandard, profile, true).Enforced)
}
