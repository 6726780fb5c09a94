package engine

import "fmt"

// EngineConfig holds every threshold the engine consults. It is built once
// (DefaultConfig plus overrides), validated, and never mutated afterwards;
// the engine has no ambient configuration lookups.
type EngineConfig struct {
	// Target band resolution
	MinBandHalfWidthBPM float64 // enforced half-width around the band midpoint
	AbsoluteHRCapBPM    float64 // hard ceiling for any band upper bound
	HRCapMarginBPM      float64 // upper bound stays this far below hrMax

	// Zone transition state machine
	HysteresisBPM    float64 // margin outside the band before a candidate flips
	ZoneDwellSeconds float64 // candidate persistence before a zone commit
	RecoveryRingCap  int     // recovery-time samples kept

	// Signal quality
	StaleSampleSeconds float64 // HR sample age beyond which it is stale
	SpikeDeltaBPM      float64 // bpm jump treated as a spike
	SpikeWindowSeconds float64 // spike delta must occur within this gap
	MinHRConfidence    float64 // below this, reject the sample

	// HR-signal streaks
	HRLostAfterSeconds     float64 // continuous invalid before ok -> lost
	HRRestoredAfterSeconds float64 // continuous valid before lost -> ok

	// Breath reliability
	BreathBufferCap       int     // rolling quality-sample buffer size
	BreathMinSamples      int     // samples required before reliability is judged
	BreathMedianThreshold float64 // rolling median needed for "reliable"
	BreathFlipSeconds     float64 // symmetric persistence before flipping

	// Sensor mode
	SensorModeDwellSeconds float64 // stable candidate before a mode commit

	// Movement / pause detection
	PauseScoreThreshold      float64 // below: pause candidate (subject to HR check)
	ActiveScoreThreshold     float64 // above: moving candidate
	MovementDwellSeconds     float64 // candidate persistence before commit
	PauseHRDropBPM           float64 // corroborating HR fall when HR is reliable
	PauseHRDropWindowSeconds float64
	RapidHRDropBPM           float64 // independent rapid-fall override
	RapidHRDropWindowSeconds float64
	CadenceFullScoreSPM      float64 // cadence mapped to movement score 1.0

	// Sustained conditions
	PushAfterSeconds        float64 // below-zone persistence before a push cue
	PushMinMovementScore    float64
	EaseAfterSeconds        float64 // above-zone persistence before an ease cue
	EaseHRRiseBPM           float64
	EaseHRRiseWindowSeconds float64
	SustainedRepeatSeconds  float64 // repeat guard per sustained event type

	// Max-silence safety net
	IntervalWorkSilenceSeconds     float64
	IntervalRecoverySilenceSeconds float64
	EasyRunSilenceBaseSeconds      float64
	EasyRunSilenceRampSeconds      float64 // added per 10 elapsed minutes
	EasyRunSilenceCapSeconds       float64
	EasyRunSilenceFloorSeconds     float64
	NoHRSilenceMultiplier          float64
	EasyRunForcedSpacingSeconds    float64 // min gap between forced cues on easy runs
	WorkHeadQuietSeconds           float64 // no forced cues this long into a work segment
	RecoveryTailQuietSeconds       float64 // no forced cues with this little recovery left
	MotivationBarrierIntervalSecs  float64 // quiet after high-tier speech, intervals
	MotivationBarrierEasySecs      float64 // quiet after high-tier speech, easy runs
	MotivationSpacingIntervalSecs  float64
	MotivationSpacingEasySecs      float64
	FreeRunSilenceSeconds          float64 // generic override for non-zone sessions

	// Coach score
	SegmentBlendWorkWeight float64 // work share of the blended compliance
	MinSegmentValidSeconds float64 // per-segment data needed for the blend
	PoorTickRatioLimit     float64 // above: confidence drops to low
	MediumTickRatioLimit   float64 // above: confidence drops to medium

	// Legacy breath heuristic
	BreathGraceWindowSeconds  float64 // early-workout always-speak window
	BreathQuietSeconds        float64 // anti-over-coaching floor
	BreathTempoDeltaBPM       float64 // tempo change that warrants a cue
	WarmupPeriodicSeconds     float64
	IntensePeriodicSeconds    float64
	CooldownPeriodicSeconds   float64

	// UnifiedRouter gives the zone engine sole ownership of zone workouts,
	// bypassing the legacy breath override for easy_run/interval sessions.
	UnifiedRouter bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		MinBandHalfWidthBPM: 8,
		AbsoluteHRCapBPM:    195,
		HRCapMarginBPM:      3,

		HysteresisBPM:    3,
		ZoneDwellSeconds: 8,
		RecoveryRingCap:  16,

		StaleSampleSeconds: 5,
		SpikeDeltaBPM:      25,
		SpikeWindowSeconds: 3,
		MinHRConfidence:    0.5,

		HRLostAfterSeconds:     4,
		HRRestoredAfterSeconds: 5,

		BreathBufferCap:       24,
		BreathMinSamples:      6,
		BreathMedianThreshold: 0.35,
		BreathFlipSeconds:     4,

		SensorModeDwellSeconds: 2,

		PauseScoreThreshold:      0.12,
		ActiveScoreThreshold:     0.25,
		MovementDwellSeconds:     8,
		PauseHRDropBPM:           1,
		PauseHRDropWindowSeconds: 10,
		RapidHRDropBPM:           6,
		RapidHRDropWindowSeconds: 8,
		CadenceFullScoreSPM:      160,

		PushAfterSeconds:        25,
		PushMinMovementScore:    0.30,
		EaseAfterSeconds:        20,
		EaseHRRiseBPM:           1.5,
		EaseHRRiseWindowSeconds: 10,
		SustainedRepeatSeconds:  45,

		IntervalWorkSilenceSeconds:     30,
		IntervalRecoverySilenceSeconds: 45,
		EasyRunSilenceBaseSeconds:      45,
		EasyRunSilenceRampSeconds:      15,
		EasyRunSilenceCapSeconds:       120,
		EasyRunSilenceFloorSeconds:     60,
		NoHRSilenceMultiplier:          1.5,
		EasyRunForcedSpacingSeconds:    90,
		WorkHeadQuietSeconds:           12,
		RecoveryTailQuietSeconds:       35,
		MotivationBarrierIntervalSecs:  25,
		MotivationBarrierEasySecs:      45,
		MotivationSpacingIntervalSecs:  60,
		MotivationSpacingEasySecs:      120,
		FreeRunSilenceSeconds:          75,

		SegmentBlendWorkWeight: 0.7,
		MinSegmentValidSeconds: 30,
		PoorTickRatioLimit:     0.30,
		MediumTickRatioLimit:   0.10,

		BreathGraceWindowSeconds: 30,
		BreathQuietSeconds:       20,
		BreathTempoDeltaBPM:      5,
		WarmupPeriodicSeconds:    30,
		IntensePeriodicSeconds:   90,
		CooldownPeriodicSeconds:  45,

		UnifiedRouter: true,
	}
}

// Validate rejects configurations that would wedge a state machine.
func (c EngineConfig) Validate() error {
	if c.MinBandHalfWidthBPM <= 0 {
		return fmt.Errorf("engine config: MinBandHalfWidthBPM must be > 0, got %v", c.MinBandHalfWidthBPM)
	}
	if c.AbsoluteHRCapBPM <= 100 {
		return fmt.Errorf("engine config: AbsoluteHRCapBPM must be > 100, got %v", c.AbsoluteHRCapBPM)
	}
	if c.HysteresisBPM < 0 {
		return fmt.Errorf("engine config: HysteresisBPM must be >= 0, got %v", c.HysteresisBPM)
	}
	if c.ZoneDwellSeconds <= 0 || c.MovementDwellSeconds <= 0 || c.SensorModeDwellSeconds <= 0 {
		return fmt.Errorf("engine config: dwell durations must be > 0")
	}
	if c.HRLostAfterSeconds <= 0 || c.HRRestoredAfterSeconds <= 0 {
		return fmt.Errorf("engine config: HR streak thresholds must be > 0")
	}
	if c.BreathMinSamples <= 0 || c.BreathBufferCap < c.BreathMinSamples {
		return fmt.Errorf("engine config: breath buffer cap %d must be >= min samples %d",
			c.BreathBufferCap, c.BreathMinSamples)
	}
	if c.BreathMedianThreshold < 0 || c.BreathMedianThreshold > 1 {
		return fmt.Errorf("engine config: BreathMedianThreshold must be in [0,1], got %v", c.BreathMedianThreshold)
	}
	if c.PauseScoreThreshold >= c.ActiveScoreThreshold {
		return fmt.Errorf("engine config: PauseScoreThreshold %v must be < ActiveScoreThreshold %v",
			c.PauseScoreThreshold, c.ActiveScoreThreshold)
	}
	if c.SegmentBlendWorkWeight < 0 || c.SegmentBlendWorkWeight > 1 {
		return fmt.Errorf("engine config: SegmentBlendWorkWeight must be in [0,1], got %v", c.SegmentBlendWorkWeight)
	}
	if c.PoorTickRatioLimit <= 0 || c.PoorTickRatioLimit > 1 {
		return fmt.Errorf("engine config: PoorTickRatioLimit must be in (0,1], got %v", c.PoorTickRatioLimit)
	}
	if c.NoHRSilenceMultiplier < 1 {
		return fmt.Errorf("engine config: NoHRSilenceMultiplier must be >= 1, got %v", c.NoHRSilenceMultiplier)
	}
	return nil
}
