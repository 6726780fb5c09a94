package engine

// canonicalPhrases is the minimal fallback wording used when no external
// renderer is wired. Renderers may replace the text freely as long as the
// event type and meaning are preserved.
var canonicalPhrases = map[EventType]string{
	EventWelcome: "Let's go. I'm with you for this one.",

	EventIntervalCountdownStart: "Next interval coming up.",
	EventCountdown15:            "Fifteen seconds.",
	EventCountdown5:             "Five seconds. Get ready.",
	EventHRSignalLost:           "Lost your heart rate for a moment. Keep going, I'll watch for it.",
	EventHRSignalRestored:       "Got your heart rate back.",

	EventPhaseWarmup:       "Warmup. Nice and relaxed.",
	EventPhaseMainSet:      "Main set. Time to work.",
	EventPhaseCooldown:     "Cooldown. Let it come down.",
	EventWorkoutFinished:   "That's the workout. Well done.",
	EventPauseDetected:     "Looks like you stopped. Take your time.",
	EventPauseResumed:      "Back at it. Good.",
	EventWatchDisconnected: "Watch signal dropped. Coaching by feel until it's back.",
	EventNoSensors:         "No sensors right now. Go by feel, I'll keep the timing.",
	EventWatchRestored:     "Watch is back. Running on heart rate again.",

	EventExitedTargetAbove:  "Heart rate is above the zone. Ease off a touch.",
	EventExitedTargetBelow:  "You've dropped under the zone. Pick it up a little.",
	EventEnteredTarget:      "Right in the zone. Hold this.",
	EventInZoneRecovered:    "Back in the zone. Nicely done.",
	EventBelowZonePush:      "Still under target. Give me a bit more.",
	EventAboveZoneEase:      "Still running hot. Back it down.",
	EventMaxSilenceOverride: "Quick check-in. Hold your effort steady.",
	EventBreathGuide:        "Settle the breathing. Long exhales.",
	EventGoByFeel:           "Go by feel. Smooth and steady.",

	EventMaxSilenceMotivation: "You're doing fine. Keep moving.",

	EventBreathCritical:   "Breathing sounds ragged. Back off now and recover.",
	EventBreathFirstRead:  "I can hear your breathing. Let's settle into a rhythm.",
	EventBreathEarlyGuide: "Ease into it. Find your breath.",
	EventBreathPeriodic:   "Still with you. Keep the rhythm.",
	EventBreathPushHarder: "Breathing is easy. You've got more in there.",
	EventBreathSlowDown:   "Breathing hard for a cooldown. Slow it down.",
	EventBreathChange:     "Effort is shifting. Stay in control.",

	EventPeriodicCheckin: "Checking in. Looking good, keep it up.",
}

// CanonicalPhrase returns the built-in fallback text for an event type.
func CanonicalPhrase(t EventType) string {
	if p, ok := canonicalPhrases[t]; ok {
		return p
	}
	return ""
}
