package engine

import "math"

// silenceBudget computes the context-aware max-silence budget for this tick.
func silenceBudget(cfg EngineConfig, mode WorkoutMode, segment SegmentKind, hrAvailable bool, now float64) float64 {
	var budget float64
	switch {
	case mode == ModeInterval && segment == SegmentWork:
		budget = cfg.IntervalWorkSilenceSeconds
	case mode == ModeInterval && segment == SegmentRecovery:
		budget = cfg.IntervalRecoverySilenceSeconds
	case mode == ModeEasyRun:
		ramp := math.Floor(now/600) * cfg.EasyRunSilenceRampSeconds
		budget = math.Min(cfg.EasyRunSilenceBaseSeconds+ramp, cfg.EasyRunSilenceCapSeconds)
		if !hrAvailable {
			budget *= cfg.NoHRSilenceMultiplier
		}
		return math.Max(budget, cfg.EasyRunSilenceFloorSeconds)
	default:
		budget = cfg.FreeRunSilenceSeconds
	}
	if !hrAvailable {
		budget *= cfg.NoHRSilenceMultiplier
	}
	return budget
}

// forcedSuppressed applies the workout-type suppression windows that block a
// forced C-tier cue even when the budget is blown.
func forcedSuppressed(cfg EngineConfig, s *State, mode WorkoutMode, segment SegmentKind, now float64) bool {
	switch mode {
	case ModeEasyRun:
		return s.LastForcedAt > never && now-s.LastForcedAt < cfg.EasyRunForcedSpacingSeconds
	case ModeInterval:
		if s.LastForcedPhaseID == s.PhaseID {
			return true
		}
		if segment == SegmentWork && s.SegmentStartAt > never && now-s.SegmentStartAt < cfg.WorkHeadQuietSeconds {
			return true
		}
		if segment == SegmentRecovery && s.SegmentEndsAt > never && s.SegmentEndsAt-now <= cfg.RecoveryTailQuietSeconds {
			return true
		}
	}
	return false
}

// maxSilence is the guaranteed-progress layer. When the silence budget is
// blown and no arbitrated event fired, it forces a cue from the richest
// available signal tier. The C-tier cue falls back to a motivation event when
// suppressed, which carries its own barrier and spacing gates.
func maxSilence(cfg EngineConfig, s *State, mode WorkoutMode, segment SegmentKind, band TargetBand, now float64) *Event {
	hrAvailable := s.HRSignalOK
	budget := silenceBudget(cfg, mode, segment, hrAvailable, now)

	since := now
	if s.LastSpokenAt > never {
		since = now - s.LastSpokenAt
	}
	if since < budget {
		return nil
	}

	if !forcedSuppressed(cfg, s, mode, segment, now) {
		s.LastForcedAt = now
		s.LastForcedPhaseID = s.PhaseID
		switch {
		case s.SensorMode == SensorFullHR && band.Enforced:
			return &Event{Type: EventMaxSilenceOverride, Timestamp: now}
		case s.BreathReliable:
			return &Event{Type: EventBreathGuide, Timestamp: now}
		default:
			return &Event{Type: EventGoByFeel, Timestamp: now}
		}
	}

	return motivation(cfg, s, mode, now)
}

// motivation is the fallback of last resort, suppressed for a barrier window
// after any high-tier speech and rate-limited on its own spacing.
func motivation(cfg EngineConfig, s *State, mode WorkoutMode, now float64) *Event {
	barrier := cfg.MotivationBarrierEasySecs
	spacing := cfg.MotivationSpacingEasySecs
	if mode == ModeInterval {
		barrier = cfg.MotivationBarrierIntervalSecs
		spacing = cfg.MotivationSpacingIntervalSecs
	}

	if s.LastSpokenAt > never && s.LastSpokenPriority >= priorityCoaching && now-s.LastSpokenAt < barrier {
		return nil
	}
	if s.LastMotivationAt > never && now-s.LastMotivationAt < spacing {
		return nil
	}
	s.LastMotivationAt = now
	return &Event{Type: EventMaxSilenceMotivation, Timestamp: now}
}
