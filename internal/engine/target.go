package engine

import "math"

// TargetBand is the absolute bpm band enforced this tick. Ephemeral;
// recomputed per tick from phase, style and profile.
type TargetBand struct {
	Low      float64
	High     float64
	Source   string // profile method, "" when not enforced
	Enforced bool
}

// hrrFractions and pctMaxFractions map intensity to band fractions for the
// two profile methods.
var hrrFractions = map[Intensity][2]float64{
	IntensityEasy:   {0.55, 0.68},
	IntensityMedium: {0.68, 0.80},
	IntensityHard:   {0.80, 0.90},
}

var pctMaxFractions = map[Intensity][2]float64{
	IntensityEasy:   {0.60, 0.70},
	IntensityMedium: {0.70, 0.80},
	IntensityHard:   {0.80, 0.88},
}

// styleIntensity maps the coaching style to the effort level used for band
// resolution. Unknown styles coach at standard effort.
func styleIntensity(style CoachingStyle) Intensity {
	switch style {
	case StyleCalm:
		return IntensityEasy
	case StyleAggressive:
		return IntensityHard
	default:
		return IntensityMedium
	}
}

// resolveIntensity applies the segment overrides: warmup, cooldown and
// interval recovery always coach at easy effort regardless of style.
func resolveIntensity(style CoachingStyle, segment SegmentKind) Intensity {
	switch segment {
	case SegmentWarmup, SegmentCooldown, SegmentRecovery:
		return IntensityEasy
	}
	return styleIntensity(style)
}

// resolveTarget computes the bpm band for this tick. Returns a zero band with
// Enforced=false when the profile is unresolvable or the mode carries no
// zone semantics. Applies the minimum half-width and the absolute upper cap;
// it never errors.
func resolveTarget(cfg EngineConfig, mode WorkoutMode, segment SegmentKind, style CoachingStyle, profile HRProfile, ok bool) TargetBand {
	if !ok || mode == ModeFreeRun {
		return TargetBand{}
	}

	intensity := resolveIntensity(style, segment)

	var low, high float64
	switch profile.Method {
	case methodHRR:
		f := hrrFractions[intensity]
		reserve := profile.HRMax - profile.RestingHR
		low = profile.RestingHR + f[0]*reserve
		high = profile.RestingHR + f[1]*reserve
	case methodPctMax:
		f := pctMaxFractions[intensity]
		low = f[0] * profile.HRMax
		high = f[1] * profile.HRMax
	default:
		return TargetBand{}
	}

	// Minimum half-width around the midpoint
	mid := (low + high) / 2
	if high-low < 2*cfg.MinBandHalfWidthBPM {
		low = mid - cfg.MinBandHalfWidthBPM
		high = mid + cfg.MinBandHalfWidthBPM
	}

	cap := math.Min(profile.HRMax-cfg.HRCapMarginBPM, cfg.AbsoluteHRCapBPM)
	if high > cap {
		high = cap
	}
	if low >= high {
		low = high - 2*cfg.MinBandHalfWidthBPM
	}

	return TargetBand{
		Low:      math.Round(low),
		High:     math.Round(high),
		Source:   profile.Method,
		Enforced: true,
	}
}
