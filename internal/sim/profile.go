package sim

import (
	"math"

	"github.com/runvoice/coach-engine/internal/engine"
)

// Stretch is one stretch of a scripted sensor trace: heart rate ramps
// linearly from StartHR to EndHR over Duration seconds. The fault flags
// inject the failure modes the engine has to ride through.
type Stretch struct {
	Duration float64
	StartHR  float64
	EndHR    float64
	Cadence  float64

	DropHR   bool // no HR samples at all
	PoorHR   bool // samples arrive flagged poor
	SpikeHR  bool // occasional large jumps
	Paused   bool // athlete standing still
}

// Profile is a named, fully scripted workout: phase layout plus the sensor
// trace. Deterministic by construction so demo runs and tests replay exactly.
type Profile struct {
	Name             string
	Mode             engine.WorkoutMode
	Style            engine.CoachingStyle
	IntervalTemplate string

	WarmupSeconds   float64
	MainSeconds     float64
	CooldownSeconds float64

	HRMax     float64
	RestingHR float64

	Trace []Stretch
}

// TotalSeconds is the scripted workout length.
func (p *Profile) TotalSeconds() float64 {
	return p.WarmupSeconds + p.MainSeconds + p.CooldownSeconds
}

// PhaseAt maps elapsed seconds onto the workout phase.
func (p *Profile) PhaseAt(elapsed float64) engine.Phase {
	switch {
	case elapsed < p.WarmupSeconds:
		return engine.PhaseWarmup
	case elapsed < p.WarmupSeconds+p.MainSeconds:
		return engine.PhaseMain
	case elapsed < p.TotalSeconds():
		return engine.PhaseCooldown
	default:
		return engine.PhaseFinished
	}
}

// stretchAt locates the trace stretch covering the elapsed time and the
// offset into it. Past the end of the trace the last stretch holds.
func (p *Profile) stretchAt(elapsed float64) (Stretch, float64) {
	t := elapsed
	for _, st := range p.Trace {
		if t < st.Duration {
			return st, t
		}
		t -= st.Duration
	}
	if len(p.Trace) == 0 {
		return Stretch{}, 0
	}
	last := p.Trace[len(p.Trace)-1]
	return last, last.Duration
}

// TickAt produces the sensor snapshot for one elapsed second of the script.
func (p *Profile) TickAt(sessionID string, elapsed float64) engine.TickInput {
	in := engine.NewTickInput(sessionID, p.Mode, p.PhaseAt(elapsed), elapsed)
	in.Style = p.Style
	in.IntervalTemplate = p.IntervalTemplate
	in.HRMax = p.HRMax
	in.RestingHR = p.RestingHR
	in.WatchConnected = true
	in.MovementSource = "simulated"

	st, offset := p.stretchAt(elapsed)

	hr := st.StartHR
	if st.Duration > 0 {
		hr += (st.EndHR - st.StartHR) * (offset / st.Duration)
	}
	if st.SpikeHR && int(elapsed)%17 == 0 {
		hr += 40
	}

	switch {
	case st.DropHR:
		in.HeartRate = 0
		in.WatchConnected = false
	case st.PoorHR:
		in.HeartRate = math.Round(hr)
		in.HRQualityHint = "poor"
	default:
		in.HeartRate = math.Round(hr)
	}

	if st.Paused {
		in.CadenceSPM = 0
		in.MovementScore = 0.05
	} else {
		in.CadenceSPM = st.Cadence
		in.MovementScore = -1 // derive from cadence
	}
	return in
}
