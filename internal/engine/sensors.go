package engine

import "sort"

// trackHRSignal folds this tick's validity into the ok/lost streak counters.
// Returns the signal transition event for this tick, if any: ok to lost after
// a continuous invalid streak, lost to ok after a continuous valid streak.
func trackHRSignal(cfg EngineConfig, s *State, good bool, dt, now float64) *Event {
	if good {
		s.HRValidStreak += dt
		s.HRInvalidStrk = 0
	} else {
		s.HRInvalidStrk += dt
		s.HRValidStreak = 0
	}

	if s.HRSignalOK && s.HRInvalidStrk >= cfg.HRLostAfterSeconds {
		s.HRSignalOK = false
		return &Event{Type: EventHRSignalLost, Timestamp: now}
	}
	if !s.HRSignalOK && s.HRValidStreak >= cfg.HRRestoredAfterSeconds {
		s.HRSignalOK = true
		return &Event{Type: EventHRSignalRestored, Timestamp: now}
	}
	return nil
}

// trackBreath maintains the rolling quality buffer and the reliable flag.
// Reliability requires enough samples with a sufficient median, held through
// a symmetric persistence window before flipping either way.
func trackBreath(cfg EngineConfig, s *State, in TickInput, now float64) {
	if in.BreathQuality >= 0 {
		s.BreathSamples = append(s.BreathSamples, in.BreathQuality)
		if len(s.BreathSamples) > cfg.BreathBufferCap {
			s.BreathSamples = s.BreathSamples[len(s.BreathSamples)-cfg.BreathBufferCap:]
		}
	}

	desired := len(s.BreathSamples) >= cfg.BreathMinSamples &&
		medianOf(s.BreathSamples) >= cfg.BreathMedianThreshold

	if desired == s.BreathReliable {
		s.BreathCandidate = desired
		s.BreathCandSince = never
		return
	}
	if desired != s.BreathCandidate || s.BreathCandSince <= never {
		s.BreathCandidate = desired
		s.BreathCandSince = now
		return
	}
	if now-s.BreathCandSince >= cfg.BreathFlipSeconds {
		s.BreathReliable = desired
		s.BreathCandSince = never
	}
}

func medianOf(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// trackSensorMode combines the HR-signal and breath states into the sensor
// mode, with a short dwell before committing. A commit emits at most one
// notice, the most specific for the new mode, latched per episode.
func trackSensorMode(cfg EngineConfig, s *State, now float64) []Event {
	desired := SensorNoSensors
	switch {
	case s.HRSignalOK:
		desired = SensorFullHR
	case s.BreathReliable:
		desired = SensorBreathFallback
	}

	if desired == s.SensorMode {
		s.SensorCandidate = desired
		s.SensorCandSince = never
		return nil
	}
	if desired != s.SensorCandidate || s.SensorCandSince <= never {
		s.SensorCandidate = desired
		s.SensorCandSince = now
		return nil
	}
	if now-s.SensorCandSince < cfg.SensorModeDwellSeconds {
		return nil
	}

	prev := s.SensorMode
	s.SensorMode = desired
	s.SensorCandSince = never

	var events []Event
	switch desired {
	case SensorNoSensors:
		if !s.NoSensorsNoticed {
			events = append(events, Event{Type: EventNoSensors, Timestamp: now})
			s.NoSensorsNoticed = true
		}
		if prev == SensorFullHR {
			s.DisconnectNoticed = true
			s.RestoredNoticed = false
		}
	case SensorBreathFallback:
		if prev == SensorFullHR && !s.DisconnectNoticed {
			events = append(events, Event{Type: EventWatchDisconnected, Timestamp: now})
			s.DisconnectNoticed = true
			s.RestoredNoticed = false
		}
	case SensorFullHR:
		if s.DisconnectNoticed && !s.RestoredNoticed {
			events = append(events, Event{Type: EventWatchRestored, Timestamp: now})
			s.RestoredNoticed = true
		}
		s.DisconnectNoticed = false
		s.NoSensorsNoticed = false
	}
	return events
}
