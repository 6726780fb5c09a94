package engine

// never marks a timestamp that has not happened yet. Far enough in the past
// that any spacing check passes, and still JSON-encodable (unlike -Inf).
const never = -1e9

// farFuture marks a segment end that is unbounded. Same JSON-encodable idea
// as never, pointing the other way.
const farFuture = 1e9

// sessionMetrics accumulates the raw seconds the coach score is built from.
// All fields are tick-delta sums; nothing here is derived.
type sessionMetrics struct {
	MainSetSeconds  float64 `json:"main_set_seconds"`
	ValidHRSeconds  float64 `json:"valid_hr_seconds"`
	EnforcedSeconds float64 `json:"enforced_seconds"`
	ZoneValidSecs   float64 `json:"zone_valid_seconds"`

	InTargetSecs         float64 `json:"in_target_seconds"`
	InTargetWorkSecs     float64 `json:"in_target_work_seconds"`
	InTargetRecoverySecs float64 `json:"in_target_recovery_seconds"`
	ZoneValidWorkSecs    float64 `json:"zone_valid_work_seconds"`
	ZoneValidRecoverySec float64 `json:"zone_valid_recovery_seconds"`

	PoorTicks  int `json:"poor_ticks"`
	TotalTicks int `json:"total_ticks"`
	Overshoots int `json:"overshoots"`

	RecoverySamples []float64 `json:"recovery_samples,omitempty"`
}

// State is everything a session carries between ticks: hysteresis counters,
// dwell candidates, one-shot latches, speech history, and the metrics
// accumulator. Mutated exactly once per tick via Engine.Evaluate, which works
// on a Clone and hands the replacement back.
type State struct {
	SessionID string `json:"session_id"`

	HasTicked      bool    `json:"has_ticked"`
	LastElapsed    float64 `json:"last_elapsed"`
	WelcomeSpoken  bool    `json:"welcome_spoken"`

	// Signal quality history
	PrevHR         float64 `json:"prev_hr"`
	PrevHRAt       float64 `json:"prev_hr_at"`
	LastGoodHR     float64 `json:"last_good_hr"`
	LastGoodHRAt   float64 `json:"last_good_hr_at"`
	HRValidStreak  float64 `json:"hr_valid_streak"`
	HRInvalidStrk  float64 `json:"hr_invalid_streak"`
	HRSignalOK     bool    `json:"hr_signal_ok"`

	// Breath reliability
	BreathSamples    []float64 `json:"breath_samples,omitempty"`
	BreathReliable   bool      `json:"breath_reliable"`
	BreathCandidate  bool      `json:"breath_candidate"`
	BreathCandSince  float64   `json:"breath_candidate_since"`

	// Sensor mode
	SensorMode      SensorMode `json:"sensor_mode"`
	SensorCandidate SensorMode `json:"sensor_candidate"`
	SensorCandSince float64    `json:"sensor_candidate_since"`

	// One-shot notice latches, reset when the condition clears
	DisconnectNoticed bool `json:"disconnect_noticed"`
	NoSensorsNoticed  bool `json:"no_sensors_noticed"`
	RestoredNoticed   bool `json:"restored_noticed"`

	// Zone FSM
	ZoneConfirmed ZoneStatus `json:"zone_confirmed"`
	ZoneCandidate ZoneStatus `json:"zone_candidate"`
	ZoneCandSince float64    `json:"zone_candidate_since"`
	AboveStartedAt float64   `json:"above_started_at"`
	BelowStartedAt float64   `json:"below_started_at"`

	// Movement FSM
	Movement      MovementState `json:"movement"`
	MoveCandidate MovementState `json:"move_candidate"`
	MoveCandSince float64       `json:"move_candidate_since"`

	// Sustained-condition repeat guards
	LastPushAt float64 `json:"last_push_at"`
	LastEaseAt float64 `json:"last_ease_at"`

	// Phase / segment tracking
	CurrentPhase    Phase       `json:"current_phase"`
	PhaseStartedAt  float64     `json:"phase_started_at"`
	PhaseID         int         `json:"phase_id"`
	Segment         SegmentKind `json:"segment"`
	SegmentStartAt  float64     `json:"segment_started_at"`
	SegmentEndsAt   float64     `json:"segment_ends_at"`
	Countdown15Done bool        `json:"countdown_15_done"`
	Countdown5Done  bool        `json:"countdown_5_done"`
	CountdownOpened bool        `json:"countdown_opened"`

	// Speech history
	LastSpokenAt       float64              `json:"last_spoken_at"`
	LastSpokenPriority int                  `json:"last_spoken_priority"`
	LastSpokenEvent    EventType            `json:"last_spoken_event"`
	LastGroupAt        map[string]float64   `json:"last_group_at,omitempty"`
	SpeechTimes        []float64            `json:"speech_times,omitempty"`
	LastPraiseAt       float64              `json:"last_praise_at"`
	LastForcedAt       float64              `json:"last_forced_at"`
	LastForcedPhaseID  int                  `json:"last_forced_phase_id"`
	LastMotivationAt   float64              `json:"last_motivation_at"`

	// Legacy breath path
	PrevBreathIntensity BreathIntensity `json:"prev_breath_intensity"`
	PrevBreathTempo     float64         `json:"prev_breath_tempo"`
	BreathTickCount     int             `json:"breath_tick_count"`
	LastBreathCoachAt   float64         `json:"last_breath_coach_at"`

	Metrics sessionMetrics `json:"metrics"`
}

// NewState returns the initial state for a session.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,

		PrevHRAt:     never,
		LastGoodHRAt: never,
		HRSignalOK:   true,

		SensorMode:      SensorFullHR,
		SensorCandidate: SensorFullHR,
		SensorCandSince: never,

		ZoneConfirmed:  ZoneIn,
		ZoneCandidate:  ZoneIn,
		ZoneCandSince:  never,
		AboveStartedAt: never,
		BelowStartedAt: never,

		Movement:      MovementUnknown,
		MoveCandidate: MovementUnknown,
		MoveCandSince: never,

		LastPushAt: never,
		LastEaseAt: never,

		PhaseStartedAt: never,
		SegmentStartAt: never,
		SegmentEndsAt:  never,

		LastSpokenAt:      never,
		LastPraiseAt:      never,
		LastForcedAt:      never,
		LastForcedPhaseID: -1,
		LastMotivationAt:  never,

		BreathCandSince:   never,
		LastBreathCoachAt: never,

		LastGroupAt: make(map[string]float64),
	}
}

// Clone returns a deep copy. Evaluate mutates the clone and returns it, so a
// failed tick can never leave the committed state half-updated.
func (s *State) Clone() *State {
	c := *s

	if s.BreathSamples != nil {
		c.BreathSamples = make([]float64, len(s.BreathSamples))
		copy(c.BreathSamples, s.BreathSamples)
	}
	if s.SpeechTimes != nil {
		c.SpeechTimes = make([]float64, len(s.SpeechTimes))
		copy(c.SpeechTimes, s.SpeechTimes)
	}
	if s.LastGroupAt != nil {
		c.LastGroupAt = make(map[string]float64, len(s.LastGroupAt))
		for k, v := range s.LastGroupAt {
			c.LastGroupAt[k] = v
		}
	}
	if s.Metrics.RecoverySamples != nil {
		c.Metrics.RecoverySamples = make([]float64, len(s.Metrics.RecoverySamples))
		copy(c.Metrics.RecoverySamples, s.Metrics.RecoverySamples)
	}
	return &c
}
