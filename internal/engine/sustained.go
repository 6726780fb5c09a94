package engine

// detectSustained escalates prolonged excursions into push/ease cues. Only
// runs while HR is good this tick. Persistence is measured from the zone
// commit timestamps (AboveStartedAt / BelowStartedAt); each cue carries an
// independent repeat guard.
func detectSustained(cfg EngineConfig, s *State, in TickInput, v hrVerdict, score float64, hasScore bool, now float64) []Event {
	if !v.Good {
		return nil
	}

	var events []Event

	if s.ZoneConfirmed == ZoneBelow && s.BelowStartedAt > never &&
		now-s.BelowStartedAt >= cfg.PushAfterSeconds &&
		s.Movement == MovementMoving &&
		hasScore && score >= cfg.PushMinMovementScore &&
		now-s.LastPushAt >= cfg.SustainedRepeatSeconds {
		s.LastPushAt = now
		events = append(events, Event{Type: EventBelowZonePush, Timestamp: now})
	}

	hrRising := v.HasDelta && v.DeltaBPM >= cfg.EaseHRRiseBPM && v.GapSeconds <= cfg.EaseHRRiseWindowSeconds
	breathStressed := in.BreathIntensity == BreathIntense || in.BreathIntensity == BreathCritical

	if s.ZoneConfirmed == ZoneAbove && s.AboveStartedAt > never &&
		now-s.AboveStartedAt >= cfg.EaseAfterSeconds &&
		(hrRising || breathStressed) &&
		now-s.LastEaseAt >= cfg.SustainedRepeatSeconds {
		s.LastEaseAt = now
		events = append(events, Event{Type: EventAboveZoneEase, Timestamp: now})
	}

	return events
}
