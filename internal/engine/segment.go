package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// intervalPlan is a parsed interval template: repeats of work/recovery pairs
// inside the main set.
type intervalPlan struct {
	Repeats      int
	WorkSeconds  float64
	RecoverySecs float64
}

var defaultIntervalPlan = intervalPlan{Repeats: 4, WorkSeconds: 240, RecoverySecs: 120}

// parseIntervalTemplate parses a "RxW/S" template, repeats x work-seconds /
// recovery-seconds, e.g. "6x180/60". Anything unparseable falls back to the
// default plan; a bad template degrades coaching structure, it never fails a
// tick.
func parseIntervalTemplate(tpl string) intervalPlan {
	plan, err := tryParseIntervalTemplate(tpl)
	if err != nil {
		return defaultIntervalPlan
	}
	return plan
}

func tryParseIntervalTemplate(tpl string) (intervalPlan, error) {
	parts := strings.SplitN(strings.TrimSpace(tpl), "x", 2)
	if len(parts) != 2 {
		return intervalPlan{}, fmt.Errorf("interval template %q: want RxW/S", tpl)
	}
	repeats, err := strconv.Atoi(parts[0])
	if err != nil || repeats <= 0 {
		return intervalPlan{}, fmt.Errorf("interval template %q: bad repeat count", tpl)
	}
	durs := strings.SplitN(parts[1], "/", 2)
	if len(durs) != 2 {
		return intervalPlan{}, fmt.Errorf("interval template %q: want RxW/S", tpl)
	}
	work, err := strconv.ParseFloat(durs[0], 64)
	if err != nil || work <= 0 {
		return intervalPlan{}, fmt.Errorf("interval template %q: bad work duration", tpl)
	}
	rec, err := strconv.ParseFloat(durs[1], 64)
	if err != nil || rec <= 0 {
		return intervalPlan{}, fmt.Errorf("interval template %q: bad recovery duration", tpl)
	}
	return intervalPlan{Repeats: repeats, WorkSeconds: work, RecoverySecs: rec}, nil
}

// segmentAt places an offset into the main set onto the plan. Past the last
// repeat the athlete stays in recovery until the phase changes.
func (p intervalPlan) segmentAt(offset float64) (kind SegmentKind, start, end float64) {
	cycle := p.WorkSeconds + p.RecoverySecs
	idx := math.Floor(offset / cycle)
	if int(idx) >= p.Repeats {
		start = float64(p.Repeats-1)*cycle + p.WorkSeconds
		return SegmentRecovery, start, farFuture
	}
	within := offset - idx*cycle
	if within < p.WorkSeconds {
		return SegmentWork, idx * cycle, idx*cycle + p.WorkSeconds
	}
	return SegmentRecovery, idx*cycle + p.WorkSeconds, (idx + 1) * cycle
}

// phaseEventFor maps a phase transition to its announcement.
func phaseEventFor(p Phase) (EventType, bool) {
	switch p {
	case PhaseWarmup:
		return EventPhaseWarmup, true
	case PhaseMain:
		return EventPhaseMainSet, true
	case PhaseCooldown:
		return EventPhaseCooldown, true
	case PhaseFinished:
		return EventWorkoutFinished, true
	}
	return "", false
}

// trackPhase folds the caller-supplied phase into state, deriving the active
// segment and emitting phase announcements and interval countdowns. PhaseID
// increments on every phase or segment change, which is what the forced-cue
// once-per-phase suppression keys on.
func trackPhase(s *State, in TickInput, now float64) []Event {
	var events []Event

	if in.Phase != s.CurrentPhase {
		s.CurrentPhase = in.Phase
		s.PhaseStartedAt = now
		s.PhaseID++
		s.CountdownOpened = false
		s.Countdown15Done = false
		s.Countdown5Done = false
		if t, ok := phaseEventFor(in.Phase); ok {
			events = append(events, Event{Type: t, Timestamp: now})
		}
	}

	kind, start, end := currentSegment(s, in, now)
	if kind != s.Segment || start != s.SegmentStartAt {
		s.Segment = kind
		s.SegmentStartAt = start
		s.SegmentEndsAt = end
		s.PhaseID++
		s.CountdownOpened = false
		s.Countdown15Done = false
		s.Countdown5Done = false
	}

	events = append(events, countdowns(s, in, now)...)
	return events
}

func currentSegment(s *State, in TickInput, now float64) (SegmentKind, float64, float64) {
	switch in.Phase {
	case PhaseWarmup:
		return SegmentWarmup, s.PhaseStartedAt, farFuture
	case PhaseCooldown, PhaseFinished:
		return SegmentCooldown, s.PhaseStartedAt, farFuture
	}
	if in.Mode != ModeInterval {
		return SegmentSteady, s.PhaseStartedAt, farFuture
	}
	plan := parseIntervalTemplate(in.IntervalTemplate)
	kind, start, end := plan.segmentAt(now - s.PhaseStartedAt)
	return kind, s.PhaseStartedAt + start, s.PhaseStartedAt + end
}

// countdowns fires the 30/15/5 second marks at the tail of an interval
// recovery, counting down into the next work segment. Each mark latches.
func countdowns(s *State, in TickInput, now float64) []Event {
	if in.Mode != ModeInterval || s.Segment != SegmentRecovery || s.SegmentEndsAt >= farFuture {
		return nil
	}
	remaining := s.SegmentEndsAt - now
	if remaining <= 0 {
		return nil
	}

	var events []Event
	if !s.CountdownOpened && remaining <= 30 {
		s.CountdownOpened = true
		events = append(events, Event{Type: EventIntervalCountdownStart, Timestamp: now,
			Payload: map[string]float64{"seconds_remaining": remaining}})
	}
	if !s.Countdown15Done && remaining <= 15 {
		s.Countdown15Done = true
		events = append(events, Event{Type: EventCountdown15, Timestamp: now})
	}
	if !s.Countdown5Done && remaining <= 5 {
		s.Countdown5Done = true
		events = append(events, Event{Type: EventCountdown5, Timestamp: now})
	}
	return events
}
