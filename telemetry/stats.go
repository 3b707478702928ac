package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Bodies at window end
	Bodies   int `csv:"bodies"`
	Airborne int `csv:"airborne"`

	// Action lifecycle during window
	Started    int     `csv:"started"`
	Finished   int     `csv:"finished"`
	Rejected   int     `csv:"rejected"`
	Dropped    int     `csv:"dropped"`
	RejectRate float64 `csv:"reject_rate"`
	Jumps      int     `csv:"jumps"`
	Dashes     int     `csv:"dashes"`
	Attacks    int     `csv:"attacks"`

	// Basis transitions and contacts
	Takeoffs int `csv:"takeoffs"`
	Landings int `csv:"landings"`
	Hits     int `csv:"hits"`
	Respawns int `csv:"respawns"`

	// Planar speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Floating height error of grounded bodies
	RideErrMean float64 `csv:"ride_err_mean"`
	RideErrP90  float64 `csv:"ride_err_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution returns mean, population standard deviation and percentiles of values.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	var d Distribution
	d.Mean = stat.Mean(values, nil)
	d.Std = stat.PopStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("airborne", s.Airborne),
		slog.Int("started", s.Started),
		slog.Int("finished", s.Finished),
		slog.Int("rejected", s.Rejected),
		slog.Int("dropped", s.Dropped),
		slog.Float64("reject_rate", s.RejectRate),
		slog.Int("jumps", s.Jumps),
		slog.Int("dashes", s.Dashes),
		slog.Int("attacks", s.Attacks),
		slog.Int("takeoffs", s.Takeoffs),
		slog.Int("landings", s.Landings),
		slog.Int("hits", s.Hits),
		slog.Int("respawns", s.Respawns),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("ride_err_mean", s.RideErrMean),
		slog.Float64("ride_err_p90", s.RideErrP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
