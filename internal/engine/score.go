package engine

import "math"

// Score confidence labels
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// accumulateMetrics adds this tick's delta into the score accumulator.
// Nothing accumulates while paused; main-set seconds only inside the main
// phase; the in-target split follows the interval segment.
func accumulateMetrics(s *State, in TickInput, v hrVerdict, band TargetBand, zone ZoneStatus, paused bool, dt float64) {
	if paused || dt <= 0 {
		return
	}
	if in.Phase != PhaseMain {
		return
	}

	m := &s.Metrics
	m.MainSetSeconds += dt
	m.TotalTicks++

	if !v.Good {
		m.PoorTicks++
		return
	}
	m.ValidHRSeconds += dt

	if !band.Enforced {
		return
	}
	m.EnforcedSeconds += dt

	zoneValid := zone == ZoneIn || zone == ZoneAbove || zone == ZoneBelow
	if !zoneValid {
		return
	}
	m.ZoneValidSecs += dt

	work := in.Mode == ModeInterval && s.Segment == SegmentWork
	recovery := in.Mode == ModeInterval && s.Segment == SegmentRecovery
	switch {
	case work:
		m.ZoneValidWorkSecs += dt
	case recovery:
		m.ZoneValidRecoverySec += dt
	}

	if zone == ZoneIn {
		m.InTargetSecs += dt
		switch {
		case work:
			m.InTargetWorkSecs += dt
		case recovery:
			m.InTargetRecoverySecs += dt
		}
	}
}

// scoreResult is the derived coach score for the decision.
type scoreResult struct {
	Score           int
	Confidence      string
	TimeInTargetPct *float64
	Compliance      float64
}

// computeScore derives the 0..100 score from the accumulator. Compliance is
// segment-weighted when both interval segments carry enough valid data,
// single-segment when only one qualifies, unweighted otherwise. Confidence
// degrades with the poor-tick ratio; at low confidence the time-in-target
// percentage is withheld.
func computeScore(cfg EngineConfig, s *State, mode WorkoutMode) scoreResult {
	m := &s.Metrics
	r := scoreResult{Confidence: ConfidenceHigh}

	var compliance float64
	workOK := m.ZoneValidWorkSecs >= cfg.MinSegmentValidSeconds
	recOK := m.ZoneValidRecoverySec >= cfg.MinSegmentValidSeconds
	switch {
	case mode == ModeInterval && workOK && recOK:
		workC := m.InTargetWorkSecs / m.ZoneValidWorkSecs
		recC := m.InTargetRecoverySecs / m.ZoneValidRecoverySec
		compliance = cfg.SegmentBlendWorkWeight*workC + (1-cfg.SegmentBlendWorkWeight)*recC
	case mode == ModeInterval && workOK:
		compliance = m.InTargetWorkSecs / m.ZoneValidWorkSecs
	case mode == ModeInterval && recOK:
		compliance = m.InTargetRecoverySecs / m.ZoneValidRecoverySec
	case m.ZoneValidSecs > 0:
		compliance = m.InTargetSecs / m.ZoneValidSecs
	}
	compliance = clamp01(compliance)
	r.Compliance = compliance
	r.Score = int(math.Round(100 * compliance))

	if m.TotalTicks > 0 {
		ratio := float64(m.PoorTicks) / float64(m.TotalTicks)
		switch {
		case ratio > cfg.PoorTickRatioLimit:
			r.Confidence = ConfidenceLow
		case ratio > cfg.MediumTickRatioLimit:
			r.Confidence = ConfidenceMedium
		}
	}

	if r.Confidence != ConfidenceLow && m.ZoneValidSecs > 0 {
		pct := 100 * clamp01(m.InTargetSecs/m.ZoneValidSecs)
		r.TimeInTargetPct = &pct
	}
	return r
}
