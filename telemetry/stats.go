package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds frame pacing statistics for one window of display frames.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"frame_end"`
	Ticks            uint64  `csv:"ticks"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Display frame deltas in milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`
	FPS         float64 `csv:"fps"`

	// Ticks run per display frame
	TicksPerFrame float64 `csv:"ticks_per_frame"`
	TicksMax      int     `csv:"ticks_max"`
	IdleFrames    int     `csv:"idle_frames"` // frames that ran no tick

	AlphaMean float64 `csv:"alpha_mean"`

	// Clock anomalies during the window
	Stalls      uint64 `csv:"stalls"`
	Regressions uint64 `csv:"regressions"`

	// Rendered pose at window end
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Rotation float64 `csv:"rotation"`
}

// Summary holds mean, standard deviation and 95th percentile of a sample.
type Summary struct {
	Mean float64
	Std  float64
	P95  float64
}

// Summarize computes a Summary. The standard deviation of fewer than two
// values is 0.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	var s Summary
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Uint64("ticks", s.Ticks),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_std_ms", s.FrameStdMS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
		slog.Float64("fps", s.FPS),
		slog.Float64("ticks_per_frame", s.TicksPerFrame),
		slog.Int("ticks_max", s.TicksMax),
		slog.Int("idle_frames", s.IdleFrames),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Uint64("stalls", s.Stalls),
		slog.Uint64("regressions", s.Regressions),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"fps", s.FPS,
		"frame_mean_ms", s.FrameMeanMS,
		"frame_p95_ms", s.FrameP95MS,
		"ticks_per_frame", s.TicksPerFrame,
		"alpha_mean", s.AlphaMean,
		"stalls", s.Stalls,
		"regressions", s.Regressions,
		"x", s.X,
		"y", s.Y,
		"rotation", s.Rotation,
	)
}
