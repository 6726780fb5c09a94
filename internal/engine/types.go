package engine

// WorkoutMode identifies the kind of session being coached
type WorkoutMode string

const (
	ModeEasyRun  WorkoutMode = "easy_run"  // steady-state run against a single HR band
	ModeInterval WorkoutMode = "interval"  // structured work/recovery repeats
	ModeFreeRun  WorkoutMode = "free_run"  // unstructured session, breath/periodic coaching only
)

// Phase is the coarse position within a workout, supplied by the caller per tick
type Phase string

const (
	PhaseWarmup   Phase = "warmup"
	PhaseMain     Phase = "main"
	PhaseCooldown Phase = "cooldown"
	PhaseFinished Phase = "finished"
)

// SegmentKind is the fine-grained position: interval work/recovery inside the
// main phase, or the phase itself for everything else
type SegmentKind string

const (
	SegmentWarmup   SegmentKind = "warmup"
	SegmentWork     SegmentKind = "work"
	SegmentRecovery SegmentKind = "recovery"
	SegmentCooldown SegmentKind = "cooldown"
	SegmentSteady   SegmentKind = "steady"
)

// CoachingStyle selects both the target intensity and how chatty the coach is
// allowed to be
type CoachingStyle string

const (
	StyleCalm       CoachingStyle = "calm"
	StyleStandard   CoachingStyle = "standard"
	StyleAggressive CoachingStyle = "aggressive"
)

// Intensity is the style-derived effort level used for band resolution
type Intensity string

const (
	IntensityEasy   Intensity = "easy"
	IntensityMedium Intensity = "medium"
	IntensityHard   Intensity = "hard"
)

// SensorMode is the engine's current best-available signal tier
type SensorMode string

const (
	SensorFullHR         SensorMode = "full_hr"
	SensorBreathFallback SensorMode = "breath_fallback"
	SensorNoSensors      SensorMode = "no_sensors"
)

// ZoneStatus reports where the athlete sits relative to the target band, or
// why zone evaluation is degraded
type ZoneStatus string

const (
	ZoneIn            ZoneStatus = "in_zone"
	ZoneAbove         ZoneStatus = "above_zone"
	ZoneBelow         ZoneStatus = "below_zone"
	ZoneHRUnstable    ZoneStatus = "hr_unstable"    // target enforced but HR not usable this tick
	ZoneTimingControl ZoneStatus = "timing_control" // no enforceable target, timing-only coaching
)

// MovementState is the dwell-confirmed moving/paused verdict
type MovementState string

const (
	MovementUnknown MovementState = "unknown"
	MovementMoving  MovementState = "moving"
	MovementPaused  MovementState = "paused"
)

// BreathIntensity is the client-classified breathing effort
type BreathIntensity string

const (
	BreathCalm     BreathIntensity = "calm"
	BreathSteady   BreathIntensity = "steady"
	BreathIntense  BreathIntensity = "intense"
	BreathCritical BreathIntensity = "critical"
)

// EventType enumerates every coaching event the engine can emit. The engine
// only ever speaks in these enum values; wording is the renderer's problem.
type EventType string

const (
	EventWelcome EventType = "welcome"

	// Tier A: countdowns and signal transitions
	EventIntervalCountdownStart EventType = "interval_countdown_start"
	EventCountdown15            EventType = "countdown_15"
	EventCountdown5             EventType = "countdown_5"
	EventHRSignalLost           EventType = "hr_signal_lost"
	EventHRSignalRestored       EventType = "hr_signal_restored"

	// Tier B: phase/session transitions and sensor notices
	EventPhaseWarmup       EventType = "phase_warmup"
	EventPhaseMainSet      EventType = "phase_main_set"
	EventPhaseCooldown     EventType = "phase_cooldown"
	EventWorkoutFinished   EventType = "workout_finished"
	EventPauseDetected     EventType = "pause_detected"
	EventPauseResumed      EventType = "pause_resumed"
	EventWatchDisconnected EventType = "watch_disconnected_notice"
	EventNoSensors         EventType = "no_sensors_notice"
	EventWatchRestored     EventType = "watch_restored_notice"

	// Tier C: actionable coaching
	EventExitedTargetAbove  EventType = "exited_target_above"
	EventExitedTargetBelow  EventType = "exited_target_below"
	EventEnteredTarget      EventType = "entered_target"
	EventInZoneRecovered    EventType = "in_zone_recovered"
	EventBelowZonePush      EventType = "below_zone_push"
	EventAboveZoneEase      EventType = "above_zone_ease"
	EventMaxSilenceOverride EventType = "max_silence_override"
	EventBreathGuide        EventType = "breath_guide"
	EventGoByFeel           EventType = "go_by_feel"

	// Tier D: motivational filler
	EventMaxSilenceMotivation EventType = "max_silence_motivation"

	// Legacy breath path (free_run sessions)
	EventBreathCritical   EventType = "breath_critical"
	EventBreathFirstRead  EventType = "breath_first_reading"
	EventBreathEarlyGuide EventType = "breath_early_guidance"
	EventBreathPeriodic   EventType = "breath_periodic"
	EventBreathPushHarder EventType = "breath_push_harder"
	EventBreathSlowDown   EventType = "breath_slow_down"
	EventBreathChange     EventType = "breath_change"

	// Phase-periodic fallback (free_run sessions without breath data)
	EventPeriodicCheckin EventType = "periodic_checkin"
)

// Decision reasons
const (
	ReasonWelcome       = "welcome"
	ReasonZoneEvent     = "zone_event"
	ReasonMaxSilence    = "max_silence"
	ReasonBreathLogic   = "breath_logic"
	ReasonPhaseFallback = "phase_fallback"
	ReasonSilent        = "silent"
	ReasonInvalidConfig = "invalid_configuration"
)

// Event is one coaching event detected during a tick. Timestamp is workout
// elapsed seconds, not wall time.
type Event struct {
	Type      EventType          `json:"event_type"`
	Timestamp float64            `json:"timestamp"`
	Payload   map[string]float64 `json:"payload,omitempty"`
}

// TickInput is the immutable per-tick sensor snapshot handed to the engine.
//
// Optional numeric fields use negative values for "not provided" so that the
// zero value stays distinguishable: MovementScore < 0 means no movement score
// (derive from cadence), HRConfidence < 0 means the client did not report
// confidence, BreathQuality < 0 means no breath sample this tick. A
// HeartRate <= 0 means no HR sample.
type TickInput struct {
	SessionID        string
	Mode             WorkoutMode
	Phase            Phase
	ElapsedSeconds   float64
	Style            CoachingStyle
	IntervalTemplate string

	HeartRate          float64
	HRQualityHint      string // "", "good", "poor"
	HRConfidence       float64
	HRSampleAgeSeconds float64
	HRSampleGapSeconds float64

	MovementScore  float64
	CadenceSPM     float64
	MovementSource string

	WatchConnected bool
	WatchStatus    string // "", "worn", "not_worn", "disconnected"

	HRMax     float64
	RestingHR float64
	Age       int

	BreathIntensity BreathIntensity
	BreathQuality   float64

	Paused bool

	// Language and Persona ride along for external renderers only.
	// No decision branch may read them.
	Language string
	Persona  string
}

// NewTickInput returns a TickInput with the optional numeric fields marked
// absent. Callers that build inputs field-by-field should start from this.
func NewTickInput(sessionID string, mode WorkoutMode, phase Phase, elapsed float64) TickInput {
	return TickInput{
		SessionID:      sessionID,
		Mode:           mode,
		Phase:          phase,
		ElapsedSeconds: elapsed,
		MovementScore:  -1,
		HRConfidence:   -1,
		BreathQuality:  -1,
	}
}

// Decision is the engine's complete output for one tick
type Decision struct {
	ShouldSpeak bool      `json:"should_speak"`
	Reason      string    `json:"reason"`
	EventType   EventType `json:"event_type,omitempty"`
	// PrimaryEventType is the top-ranked candidate before cooldown demotion;
	// it equals EventType unless the arbiter demoted a blocked event.
	PrimaryEventType EventType `json:"primary_event_type,omitempty"`
	CoachText        string    `json:"coach_text,omitempty"`
	Events           []Event   `json:"events,omitempty"`

	ZoneStatus     ZoneStatus    `json:"zone_status"`
	SensorMode     SensorMode    `json:"sensor_mode"`
	TargetHRLow    float64       `json:"target_hr_low,omitempty"`
	TargetHRHigh   float64       `json:"target_hr_high,omitempty"`
	TargetSource   string        `json:"target_source,omitempty"`
	TargetEnforced bool          `json:"target_enforced"`
	MovementState  MovementState `json:"movement_state"`

	Score              int      `json:"score"`
	ScoreConfidence    string   `json:"score_confidence"`
	TimeInTargetPct    *float64 `json:"time_in_target_pct,omitempty"`
	Overshoots         int      `json:"overshoots"`
	RecoveryAvgSeconds float64  `json:"recovery_avg_seconds"`
	ZoneCompliance     float64  `json:"zone_compliance"`

	HRQualityReasons []string `json:"hr_quality_reasons,omitempty"`
}

// Renderer turns a decision into spoken text. Implementations live outside
// the core (LLM rephrasers, TTS front-ends); CanonicalPhrase is the built-in
// fallback when no renderer is wired.
type Renderer interface {
	Render(d Decision) (string, error)
}
