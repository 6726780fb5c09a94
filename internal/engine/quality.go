package engine

import "math"

// Quality reason codes, in evaluation order.
const (
	reasonClientPoor      = "client_reported_poor"
	reasonWatchDisconnect = "watch_disconnected"
	reasonWatchNotWorn    = "watch_not_worn"
	reasonMissingSignal   = "missing_signal"
	reasonStaleSignal     = "stale_signal"
	reasonSpikeRejected   = "spike_rejected"
	reasonLowConfidence   = "low_confidence"
)

// hrVerdict is the per-tick signal-quality result.
type hrVerdict struct {
	Good       bool
	Reasons    []string
	DeltaBPM   float64 // vs previous sample, 0 when no previous exists
	HasDelta   bool
	GapSeconds float64 // seconds since the previous sample
}

// classifyHR evaluates the ordered quality checks against this tick's sample.
// Every check that fires is reported; the verdict is good iff none fire. The
// bpm delta and sample gap are computed against the previous sample whenever
// one exists, regardless of the verdict, since pause and sustained detection
// consume them even on poor ticks.
func classifyHR(cfg EngineConfig, s *State, in TickInput, now float64) hrVerdict {
	v := hrVerdict{}

	if s.PrevHRAt > never && in.HeartRate > 0 {
		v.DeltaBPM = in.HeartRate - s.PrevHR
		v.HasDelta = true
		v.GapSeconds = now - s.PrevHRAt
	} else if in.HRSampleGapSeconds > 0 {
		v.GapSeconds = in.HRSampleGapSeconds
	}

	if in.HRQualityHint == "poor" {
		v.Reasons = append(v.Reasons, reasonClientPoor)
	}
	if !in.WatchConnected || in.WatchStatus == "disconnected" {
		v.Reasons = append(v.Reasons, reasonWatchDisconnect)
	} else if in.WatchStatus == "not_worn" {
		v.Reasons = append(v.Reasons, reasonWatchNotWorn)
	}
	if in.HeartRate <= 0 {
		v.Reasons = append(v.Reasons, reasonMissingSignal)
	} else {
		if in.HRSampleAgeSeconds > cfg.StaleSampleSeconds {
			v.Reasons = append(v.Reasons, reasonStaleSignal)
		}
		if v.HasDelta && math.Abs(v.DeltaBPM) >= cfg.SpikeDeltaBPM && v.GapSeconds <= cfg.SpikeWindowSeconds {
			v.Reasons = append(v.Reasons, reasonSpikeRejected)
		}
		if in.HRConfidence >= 0 && in.HRConfidence < cfg.MinHRConfidence {
			v.Reasons = append(v.Reasons, reasonLowConfidence)
		}
	}

	v.Good = len(v.Reasons) == 0
	return v
}

// recordHRSample updates the sample history after classification so the next
// tick's delta and staleness checks have something to compare against.
func recordHRSample(s *State, in TickInput, v hrVerdict, now float64) {
	if in.HeartRate > 0 {
		s.PrevHR = in.HeartRate
		s.PrevHRAt = now
		if v.Good {
			s.LastGoodHR = in.HeartRate
			s.LastGoodHRAt = now
		}
	}
}
