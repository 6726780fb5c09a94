package sim

import "github.com/runvoice/coach-engine/internal/engine"

// profiles is the library of named scripted workouts.
var profiles = []*Profile{
	{
		Name:            "easy",
		Mode:            engine.ModeEasyRun,
		Style:           engine.StyleStandard,
		WarmupSeconds:   120,
		MainSeconds:     900,
		CooldownSeconds: 180,
		HRMax:           190,
		RestingHR:       55,
		Trace: []Stretch{
			{Duration: 120, StartHR: 90, EndHR: 135, Cadence: 150},
			{Duration: 200, StartHR: 135, EndHR: 155, Cadence: 165},
			{Duration: 250, StartHR: 155, EndHR: 172, Cadence: 170}, // drifts over the band
			{Duration: 150, StartHR: 172, EndHR: 150, Cadence: 160},
			{Duration: 300, StartHR: 150, EndHR: 156, Cadence: 165},
			{Duration: 180, StartHR: 156, EndHR: 110, Cadence: 140},
		},
	},
	{
		Name:             "intervals",
		Mode:             engine.ModeInterval,
		Style:            engine.StyleAggressive,
		IntervalTemplate: "4x180/90",
		WarmupSeconds:    180,
		MainSeconds:      1080,
		CooldownSeconds:  180,
		HRMax:            190,
		RestingHR:        55,
		Trace: []Stretch{
			{Duration: 180, StartHR: 95, EndHR: 140, Cadence: 155},
			{Duration: 180, StartHR: 140, EndHR: 178, Cadence: 178},
			{Duration: 90, StartHR: 178, EndHR: 145, Cadence: 150},
			{Duration: 180, StartHR: 145, EndHR: 180, Cadence: 180},
			{Duration: 90, StartHR: 180, EndHR: 148, Cadence: 150},
			{Duration: 180, StartHR: 148, EndHR: 182, Cadence: 180},
			{Duration: 90, StartHR: 182, EndHR: 150, Cadence: 150},
			{Duration: 180, StartHR: 150, EndHR: 184, Cadence: 180},
			{Duration: 90, StartHR: 184, EndHR: 150, Cadence: 150},
			{Duration: 180, StartHR: 150, EndHR: 115, Cadence: 140},
		},
	},
	{
		Name:            "dropout",
		Mode:            engine.ModeEasyRun,
		Style:           engine.StyleCalm,
		WarmupSeconds:   60,
		MainSeconds:     600,
		CooldownSeconds: 120,
		HRMax:           185,
		RestingHR:       60,
		Trace: []Stretch{
			{Duration: 60, StartHR: 95, EndHR: 140, Cadence: 150},
			{Duration: 120, StartHR: 140, EndHR: 150, Cadence: 165},
			{Duration: 90, StartHR: 150, EndHR: 150, Cadence: 165, DropHR: true}, // strap falls off
			{Duration: 60, StartHR: 150, EndHR: 152, Cadence: 165, PoorHR: true},
			{Duration: 120, StartHR: 152, EndHR: 154, Cadence: 165, SpikeHR: true},
			{Duration: 90, StartHR: 154, EndHR: 120, Cadence: 0, Paused: true}, // traffic light
			{Duration: 240, StartHR: 120, EndHR: 150, Cadence: 165},
		},
	},
}

// ByName looks a profile up by name.
func ByName(name string) (*Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Names lists the available profile names in library order.
func Names() []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name
	}
	return out
}
