package engine

// classifyZone maps a heart rate onto the band with a hysteresis margin.
// Inside the margin but outside the hard band the previous confirmed status
// is sticky.
func classifyZone(cfg EngineConfig, band TargetBand, hr float64, prev ZoneStatus) ZoneStatus {
	switch {
	case hr < band.Low-cfg.HysteresisBPM:
		return ZoneBelow
	case hr > band.High+cfg.HysteresisBPM:
		return ZoneAbove
	case hr >= band.Low && hr <= band.High:
		return ZoneIn
	default:
		if prev == ZoneIn || prev == ZoneAbove || prev == ZoneBelow {
			return prev
		}
		return ZoneIn
	}
}

// stepZone advances the zone state machine one tick. Only called when HR is
// valid, the target is enforced, and the sensor mode is FULL_HR. Transition
// events are returned in detection order: the entered/exited event first,
// then in_zone_recovered when applicable.
func stepZone(cfg EngineConfig, s *State, hr float64, band TargetBand, now float64) []Event {
	candidate := classifyZone(cfg, band, hr, s.ZoneConfirmed)

	if candidate == s.ZoneConfirmed {
		s.ZoneCandidate = candidate
		s.ZoneCandSince = never
		return nil
	}
	if candidate != s.ZoneCandidate || s.ZoneCandSince <= never {
		s.ZoneCandidate = candidate
		s.ZoneCandSince = now
		return nil
	}
	if now-s.ZoneCandSince < cfg.ZoneDwellSeconds {
		return nil
	}

	prev := s.ZoneConfirmed
	s.ZoneConfirmed = candidate
	s.ZoneCandSince = never

	var events []Event
	switch candidate {
	case ZoneAbove:
		s.AboveStartedAt = now
		s.BelowStartedAt = never
		s.Metrics.Overshoots++
		events = append(events, Event{Type: EventExitedTargetAbove, Timestamp: now,
			Payload: map[string]float64{"heart_rate": hr, "target_high": band.High}})
	case ZoneBelow:
		s.BelowStartedAt = now
		s.AboveStartedAt = never
		events = append(events, Event{Type: EventExitedTargetBelow, Timestamp: now,
			Payload: map[string]float64{"heart_rate": hr, "target_low": band.Low}})
	case ZoneIn:
		events = append(events, Event{Type: EventEnteredTarget, Timestamp: now})
		if prev == ZoneAbove || prev == ZoneBelow {
			events = append(events, Event{Type: EventInZoneRecovered, Timestamp: now})
		}
		if prev == ZoneAbove && s.AboveStartedAt > never {
			recordRecoverySample(cfg, s, now-s.AboveStartedAt)
			s.AboveStartedAt = never
		}
		s.BelowStartedAt = never
	}
	return events
}

func recordRecoverySample(cfg EngineConfig, s *State, seconds float64) {
	if seconds <= 0 {
		return
	}
	s.Metrics.RecoverySamples = append(s.Metrics.RecoverySamples, seconds)
	if len(s.Metrics.RecoverySamples) > cfg.RecoveryRingCap {
		s.Metrics.RecoverySamples = s.Metrics.RecoverySamples[len(s.Metrics.RecoverySamples)-cfg.RecoveryRingCap:]
	}
}

func recoveryAverage(s *State) float64 {
	if len(s.Metrics.RecoverySamples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Metrics.RecoverySamples {
		sum += v
	}
	return sum / float64(len(s.Metrics.RecoverySamples))
}
