package engine

// HRProfile is the per-tick heart-rate profile. Recomputed from the tick's
// optional athlete fields every time; never stored in State.
type HRProfile struct {
	HRMax     float64
	RestingHR float64
	Method    string // "hrr", "pct_max", ""
}

const (
	methodHRR    = "hrr"
	methodPctMax = "pct_max"
)

// resolveProfile derives the band-computation method from whatever athlete
// data the tick carries. Max plus resting gives heart-rate reserve, max alone
// gives percent-of-max, age alone gives an estimated max. With none of the
// three, the profile is unresolvable and zone enforcement is off for the tick.
func resolveProfile(in TickInput) (HRProfile, bool) {
	hrMax := in.HRMax
	if hrMax <= 0 && in.Age > 0 {
		hrMax = float64(220 - in.Age)
	}
	if hrMax <= 0 {
		return HRProfile{}, false
	}
	if in.RestingHR > 0 && in.RestingHR < hrMax {
		return HRProfile{HRMax: hrMax, RestingHR: in.RestingHR, Method: methodHRR}, true
	}
	return HRProfile{HRMax: hrMax, Method: methodPctMax}, true
}
