package engine

import (
	"log"
)

// Engine evaluates ticks. It is stateless apart from its config; all
// per-session state travels through Evaluate, so one Engine serves any number
// of sessions concurrently as long as each session's ticks are serialized by
// the caller.
type Engine struct {
	cfg      EngineConfig
	logger   *log.Logger
	renderer Renderer
}

// NewEngine validates the config and builds an engine. The logger is
// mandatory; the renderer is optional and defaults to the canonical phrase
// table.
func NewEngine(cfg EngineConfig, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		panic("Engine: logger must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// SetRenderer installs an external renderer. Render failures fall back to
// the canonical phrase, they never fail a tick.
func (e *Engine) SetRenderer(r Renderer) {
	e.renderer = r
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// zoneMode reports whether the workout is owned by the zone engine.
func zoneMode(mode WorkoutMode) bool {
	return mode == ModeEasyRun || mode == ModeInterval
}

// Evaluate runs one tick: (state, input) -> (decision, new state). The input
// state is never mutated; callers commit the returned state only after a
// successful call, so a panicking tick cannot corrupt hysteresis counters.
func (e *Engine) Evaluate(state *State, in TickInput) (Decision, *State) {
	if in.Mode == "" || in.Phase == "" {
		e.logger.Printf("Engine: invalid tick for session %s: mode=%q phase=%q", in.SessionID, in.Mode, in.Phase)
		d := Decision{
			Reason:        ReasonInvalidConfig,
			ZoneStatus:    ZoneTimingControl,
			SensorMode:    state.SensorMode,
			MovementState: state.Movement,
		}
		return d, state
	}

	s := state.Clone()

	now := in.ElapsedSeconds
	if s.HasTicked && now < s.LastElapsed {
		now = s.LastElapsed
	}
	dt := 0.0
	if s.HasTicked {
		dt = now - s.LastElapsed
	}
	s.LastElapsed = now

	// Detection order: phase, signal, sensor notices, movement, zone and
	// countdown, sustained. The arbiter's tie-break depends on this order.
	var candidates []Event

	phaseEvents := trackPhase(s, in, now)

	verdict := classifyHR(e.cfg, s, in, now)
	signalEvent := trackHRSignal(e.cfg, s, verdict.Good, dt, now)
	trackBreath(e.cfg, s, in, now)
	notices := trackSensorMode(e.cfg, s, now)

	profile, profileOK := resolveProfile(in)
	band := resolveTarget(e.cfg, in.Mode, s.Segment, in.Style, profile, profileOK)

	score, hasScore := movementScore(e.cfg, in)
	moveEvent := stepMovement(e.cfg, s, verdict, in.HeartRate, score, hasScore, now)

	var zoneEvents []Event
	zoneStatus := ZoneTimingControl
	zoneActive := zoneMode(in.Mode) && band.Enforced
	if zoneActive {
		if verdict.Good && s.SensorMode == SensorFullHR {
			zoneEvents = stepZone(e.cfg, s, in.HeartRate, band, now)
			zoneStatus = s.ZoneConfirmed
		} else {
			zoneStatus = ZoneHRUnstable
		}
	}

	var sustainedEvents []Event
	if zoneActive && verdict.Good {
		sustainedEvents = detectSustained(e.cfg, s, in, verdict, score, hasScore, now)
	}

	candidates = append(candidates, phaseEvents...)
	if signalEvent != nil {
		candidates = append(candidates, *signalEvent)
	}
	candidates = append(candidates, notices...)
	if moveEvent != nil {
		candidates = append(candidates, *moveEvent)
	}
	candidates = append(candidates, zoneEvents...)
	candidates = append(candidates, sustainedEvents...)

	paused := in.Paused || s.Movement == MovementPaused
	accumulateMetrics(s, in, verdict, band, zoneStatus, paused, dt)
	recordHRSample(s, in, verdict, now)
	s.HasTicked = true

	d := Decision{
		Reason:         ReasonSilent,
		Events:         candidates,
		ZoneStatus:     zoneStatus,
		SensorMode:     s.SensorMode,
		TargetHRLow:    band.Low,
		TargetHRHigh:   band.High,
		TargetSource:   band.Source,
		TargetEnforced: band.Enforced,
		MovementState:  s.Movement,

		HRQualityReasons: verdict.Reasons,
	}
	sc := computeScore(e.cfg, s, in.Mode)
	d.Score = sc.Score
	d.ScoreConfidence = sc.Confidence
	d.TimeInTargetPct = sc.TimeInTargetPct
	d.ZoneCompliance = sc.Compliance
	d.Overshoots = s.Metrics.Overshoots
	d.RecoveryAvgSeconds = recoveryAverage(s)

	if !s.WelcomeSpoken {
		s.WelcomeSpoken = true
		e.speak(&d, s, Event{Type: EventWelcome, Timestamp: now}, ReasonWelcome, now)
		return d, s
	}

	if chosen, primary := arbitrate(s, in.Style, candidates, now); chosen != nil {
		d.PrimaryEventType = primary
		reason := ReasonZoneEvent
		if !zoneMode(in.Mode) {
			reason = ReasonPhaseFallback
		}
		e.speak(&d, s, *chosen, reason, now)
		return d, s
	} else if primary != "" {
		d.PrimaryEventType = primary
	}

	if zoneMode(in.Mode) && e.cfg.UnifiedRouter {
		if forced := maxSilence(e.cfg, s, in.Mode, s.Segment, band, now); forced != nil {
			d.Events = append(d.Events, *forced)
			e.speak(&d, s, *forced, ReasonMaxSilence, now)
		}
		return d, s
	}

	// Legacy path: breath heuristic when breath data exists, plain periodic
	// timer otherwise, then the generic max-silence layer.
	if in.BreathIntensity != "" {
		if ev := breathDecide(e.cfg, s, in, now); ev != nil {
			s.LastBreathCoachAt = now
			d.Events = append(d.Events, *ev)
			e.speak(&d, s, *ev, ReasonBreathLogic, now)
			return d, s
		}
	} else if s.LastSpokenAt > never && now-s.LastSpokenAt >= phasePeriodic(e.cfg, in.Phase) {
		ev := Event{Type: EventPeriodicCheckin, Timestamp: now}
		d.Events = append(d.Events, ev)
		e.speak(&d, s, ev, ReasonPhaseFallback, now)
		return d, s
	}

	if forced := maxSilence(e.cfg, s, in.Mode, s.Segment, band, now); forced != nil {
		d.Events = append(d.Events, *forced)
		e.speak(&d, s, *forced, ReasonMaxSilence, now)
	}
	return d, s
}

// speak finalizes a spoken decision and records the speech history.
func (e *Engine) speak(d *Decision, s *State, ev Event, reason string, now float64) {
	d.ShouldSpeak = true
	d.Reason = reason
	d.EventType = ev.Type
	if d.PrimaryEventType == "" {
		d.PrimaryEventType = ev.Type
	}
	d.CoachText = e.renderText(*d, ev.Type)
	recordSpeech(s, ev.Type, now)
}

func (e *Engine) renderText(d Decision, t EventType) string {
	fallback := CanonicalPhrase(t)
	if e.renderer == nil {
		return fallback
	}
	text, err := e.renderer.Render(d)
	if err != nil || text == "" {
		e.logger.Printf("Engine: renderer failed for %s, using canonical phrase: %v", t, err)
		return fallback
	}
	return text
}
