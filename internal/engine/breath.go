package engine

import "math"

// phasePeriodic returns the periodic coaching interval for a phase on the
// legacy breath path.
func phasePeriodic(cfg EngineConfig, phase Phase) float64 {
	switch phase {
	case PhaseWarmup:
		return cfg.WarmupPeriodicSeconds
	case PhaseCooldown:
		return cfg.CooldownPeriodicSeconds
	default:
		return cfg.IntensePeriodicSeconds
	}
}

// breathTempo is the tempo proxy for change detection: heart rate when
// present, cadence otherwise.
func breathTempo(in TickInput) float64 {
	if in.HeartRate > 0 {
		return in.HeartRate
	}
	return in.CadenceSPM
}

// breathDecide is the legacy breath-based heuristic that owns non-zone
// sessions. Rules run in order, first match wins. Returns nil when the tick
// stays silent.
func breathDecide(cfg EngineConfig, s *State, in TickInput, now float64) *Event {
	s.BreathTickCount++
	tempo := breathTempo(in)
	defer func() {
		s.PrevBreathIntensity = in.BreathIntensity
		if tempo > 0 {
			s.PrevBreathTempo = tempo
		}
	}()

	intensityChanged := in.BreathIntensity != "" && s.PrevBreathIntensity != "" &&
		in.BreathIntensity != s.PrevBreathIntensity
	tempoChanged := tempo > 0 && s.PrevBreathTempo > 0 &&
		math.Abs(tempo-s.PrevBreathTempo) > cfg.BreathTempoDeltaBPM
	changed := intensityChanged || tempoChanged

	sinceCoach := now - s.LastBreathCoachAt

	// 1: critical breathing always speaks
	if in.BreathIntensity == BreathCritical {
		return &Event{Type: EventBreathCritical, Timestamp: now}
	}
	// 2: first reading of the session
	if s.BreathTickCount == 1 {
		return &Event{Type: EventBreathFirstRead, Timestamp: now}
	}
	// 3: early-workout grace window
	if now < cfg.BreathGraceWindowSeconds {
		return &Event{Type: EventBreathEarlyGuide, Timestamp: now}
	}
	// 4: quiet and stable, phase-periodic interval elapsed
	if !changed && sinceCoach >= phasePeriodic(cfg, in.Phase) {
		return &Event{Type: EventBreathPeriodic, Timestamp: now}
	}
	// 5: too calm for the main set
	if in.Phase == PhaseMain && in.BreathIntensity == BreathCalm {
		return &Event{Type: EventBreathPushHarder, Timestamp: now}
	}
	// 6: too intense for the cooldown
	if in.Phase == PhaseCooldown &&
		(in.BreathIntensity == BreathIntense || in.BreathIntensity == BreathCritical) {
		return &Event{Type: EventBreathSlowDown, Timestamp: now}
	}
	// 7: anti-over-coaching floor
	if s.LastBreathCoachAt > never && sinceCoach < cfg.BreathQuietSeconds {
		return nil
	}
	// 8: any change is worth a cue
	if changed {
		return &Event{Type: EventBreathChange, Timestamp: now}
	}
	return nil
}
