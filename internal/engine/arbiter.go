package engine

// Priority tiers. Candidates are ranked by tier; within a tier, detection
// order breaks ties.
const (
	priorityCountdown  = 90 // tier A: countdowns and signal transitions
	priorityPhase      = 70 // tier B: phase transitions and sensor notices
	priorityCoaching   = 60 // tier C: actionable coaching
	priorityMotivation = 30 // tier D: motivational filler
)

func eventPriority(t EventType) int {
	switch t {
	case EventIntervalCountdownStart, EventCountdown15, EventCountdown5,
		EventHRSignalLost, EventHRSignalRestored:
		return priorityCountdown
	case EventPhaseWarmup, EventPhaseMainSet, EventPhaseCooldown, EventWorkoutFinished,
		EventPauseDetected, EventPauseResumed,
		EventWatchDisconnected, EventNoSensors, EventWatchRestored,
		EventWelcome:
		return priorityPhase
	case EventMaxSilenceMotivation:
		return priorityMotivation
	default:
		return priorityCoaching
	}
}

// eventGroup buckets event types for the same-group spacing check.
func eventGroup(t EventType) string {
	switch t {
	case EventExitedTargetAbove, EventExitedTargetBelow, EventEnteredTarget, EventInZoneRecovered:
		return "zone"
	case EventBelowZonePush, EventAboveZoneEase:
		return "sustained"
	case EventHRSignalLost, EventHRSignalRestored, EventWatchDisconnected, EventNoSensors, EventWatchRestored:
		return "sensor"
	case EventPauseDetected, EventPauseResumed:
		return "pause"
	case EventIntervalCountdownStart, EventCountdown15, EventCountdown5:
		return "countdown"
	case EventPhaseWarmup, EventPhaseMainSet, EventPhaseCooldown, EventWorkoutFinished:
		return "phase"
	default:
		return string(t)
	}
}

// styleGated reports whether an event type is subject to the per-style
// cooldown policy. Only the chatty zone-boundary cues are gated; safety and
// structural events always pass.
func styleGated(t EventType) bool {
	switch t {
	case EventEnteredTarget, EventExitedTargetAbove, EventExitedTargetBelow:
		return true
	}
	return false
}

func praiseEvent(t EventType) bool {
	return t == EventEnteredTarget || t == EventInZoneRecovered
}

// StylePolicy bounds how often style-gated cues may fire for one coaching
// style.
type StylePolicy struct {
	MinSinceAnySpeech  float64
	MinSinceSameGroup  float64
	BudgetPer10Min     int
	PraiseSpacing      float64
}

func policyFor(style CoachingStyle) StylePolicy {
	switch style {
	case StyleCalm:
		return StylePolicy{MinSinceAnySpeech: 15, MinSinceSameGroup: 45, BudgetPer10Min: 8, PraiseSpacing: 90}
	case StyleAggressive:
		return StylePolicy{MinSinceAnySpeech: 5, MinSinceSameGroup: 15, BudgetPer10Min: 20, PraiseSpacing: 30}
	default:
		return StylePolicy{MinSinceAnySpeech: 8, MinSinceSameGroup: 25, BudgetPer10Min: 14, PraiseSpacing: 60}
	}
}

// blockedByStyle checks the candidate against the per-style policy: minimum
// silence since any speech, same-group spacing, the rolling 10-minute cue
// budget, and praise spacing.
func blockedByStyle(s *State, policy StylePolicy, t EventType, now float64) bool {
	if !styleGated(t) {
		return false
	}
	if s.LastSpokenAt > never && now-s.LastSpokenAt < policy.MinSinceAnySpeech {
		return true
	}
	if at, ok := s.LastGroupAt[eventGroup(t)]; ok && now-at < policy.MinSinceSameGroup {
		return true
	}
	if recentSpeechCount(s, now) >= policy.BudgetPer10Min {
		return true
	}
	if praiseEvent(t) && s.LastPraiseAt > never && now-s.LastPraiseAt < policy.PraiseSpacing {
		return true
	}
	return false
}

func recentSpeechCount(s *State, now float64) int {
	n := 0
	for _, at := range s.SpeechTimes {
		if now-at <= 600 {
			n++
		}
	}
	return n
}

// arbitrate picks the tick's single speaker from the detected candidates.
// Candidates arrive in detection order; the sort is stable so priority ties
// keep that order. A style-blocked candidate demotes to the next one instead
// of silencing the tick. The primary is the top-ranked candidate before any
// demotion.
func arbitrate(s *State, style CoachingStyle, candidates []Event, now float64) (chosen *Event, primary EventType) {
	if len(candidates) == 0 {
		return nil, ""
	}

	ranked := make([]Event, len(candidates))
	copy(ranked, candidates)
	// insertion sort keeps detection order within equal priorities
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && eventPriority(ranked[j].Type) > eventPriority(ranked[j-1].Type); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	primary = ranked[0].Type
	policy := policyFor(style)
	for i := range ranked {
		if !blockedByStyle(s, policy, ranked[i].Type, now) {
			return &ranked[i], primary
		}
	}
	return nil, primary
}

// recordSpeech updates the speech history after a spoken decision. The
// rolling window is pruned so SpeechTimes stays bounded.
func recordSpeech(s *State, t EventType, now float64) {
	s.LastSpokenAt = now
	s.LastSpokenPriority = eventPriority(t)
	s.LastSpokenEvent = t
	if s.LastGroupAt == nil {
		s.LastGroupAt = make(map[string]float64)
	}
	s.LastGroupAt[eventGroup(t)] = now
	if praiseEvent(t) {
		s.LastPraiseAt = now
	}

	s.SpeechTimes = append(s.SpeechTimes, now)
	cut := 0
	for cut < len(s.SpeechTimes) && now-s.SpeechTimes[cut] > 600 {
		cut++
	}
	s.SpeechTimes = s.SpeechTimes[cut:]
}
