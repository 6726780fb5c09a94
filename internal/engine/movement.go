package engine

// movementScore returns the 0..1 movement score for the tick, deriving one
// from cadence when the client did not supply a score.
func movementScore(cfg EngineConfig, in TickInput) (float64, bool) {
	if in.MovementScore >= 0 {
		return clamp01(in.MovementScore), true
	}
	if in.CadenceSPM > 0 {
		return clamp01(in.CadenceSPM / cfg.CadenceFullScoreSPM), true
	}
	return 0, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// stepMovement advances the moving/paused state machine. A low score becomes
// a pause candidate outright only when HR is unreliable; with reliable HR a
// corroborating fall is required (a small drop within a short gap, or a rapid
// drop as an independent override). The fall is measured against the last
// good sample, not the raw previous one, so a rejected spike cannot fake a
// stop. Commits require dwell persistence and emit
// pause_detected/pause_resumed once at the transition tick.
func stepMovement(cfg EngineConfig, s *State, v hrVerdict, hr, score float64, hasScore bool, now float64) *Event {
	if !hasScore {
		return nil
	}

	var rapidDrop, hrFalling bool
	if v.Good && hr > 0 && s.LastGoodHRAt > never {
		drop := hr - s.LastGoodHR
		gap := now - s.LastGoodHRAt
		rapidDrop = drop <= -cfg.RapidHRDropBPM && gap <= cfg.RapidHRDropWindowSeconds
		hrFalling = drop <= -cfg.PauseHRDropBPM && gap <= cfg.PauseHRDropWindowSeconds
	}

	candidate := s.MoveCandidate
	switch {
	case score >= cfg.ActiveScoreThreshold:
		candidate = MovementMoving
	case score < cfg.PauseScoreThreshold:
		if !s.HRSignalOK || hrFalling || rapidDrop {
			candidate = MovementPaused
		} else if s.MoveCandidate == MovementPaused {
			// low score without corroboration breaks the pause streak
			candidate = s.Movement
		}
	default:
		// between thresholds the candidate is sticky
	}

	if candidate == s.Movement {
		s.MoveCandidate = candidate
		s.MoveCandSince = never
		return nil
	}
	if candidate != s.MoveCandidate || s.MoveCandSince <= never {
		s.MoveCandidate = candidate
		s.MoveCandSince = now
		return nil
	}
	if now-s.MoveCandSince < cfg.MovementDwellSeconds {
		return nil
	}

	prev := s.Movement
	s.Movement = candidate
	s.MoveCandSince = never

	switch {
	case candidate == MovementPaused:
		return &Event{Type: EventPauseDetected, Timestamp: now}
	case prev == MovementPaused && candidate == MovementMoving:
		return &Event{Type: EventPauseResumed, Timestamp: now}
	}
	return nil
}
