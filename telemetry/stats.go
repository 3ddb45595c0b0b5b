package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated orb statistics for one window of frames.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Orbs   int     `csv:"orbs"`
	Rising int     `csv:"rising"`
	Radius float64 `csv:"radius"`

	// Events during window
	BouncesDown int `csv:"bounces_down"`
	BouncesUp   int `csv:"bounces_up"`
	Restarts    int `csv:"restarts"`

	// |velocity| distribution sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
}

// SpeedStats summarizes a set of speeds. values is not modified.
func SpeedStats(values []float64) (mean, std, p10, p50, p90, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	mean, std = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	maxV = floats.Max(sorted)

	return mean, std, p10, p50, p90, maxV
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("orbs", s.Orbs),
		slog.Int("rising", s.Rising),
		slog.Float64("radius", s.Radius),
		slog.Int("bounces_down", s.BouncesDown),
		slog.Int("bounces_up", s.BouncesUp),
		slog.Int("restarts", s.Restarts),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_max", s.SpeedMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"orbs", s.Orbs,
		"rising", s.Rising,
		"bounces_down", s.BouncesDown,
		"bounces_up", s.BouncesUp,
		"restarts", s.Restarts,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
	)
}
