package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pixelstep/telemetry"
)

// Recorder routes frame and tick data to telemetry. A nil Recorder is valid
// and records nothing.
type Recorder struct {
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	lastNow time.Duration
	started bool
}

// NewRecorder creates a recorder. Any of the collaborators may be nil.
func NewRecorder(collector *telemetry.Collector, perf *telemetry.PerfCollector, output *telemetry.OutputManager, logStats bool) *Recorder {
	return &Recorder{
		collector: collector,
		perf:      perf,
		output:    output,
		logStats:  logStats,
	}
}

// Attach installs the per-tick trace hook on s when tracing is enabled.
func (r *Recorder) Attach(s *Session) {
	if r == nil || !r.output.Tracing() {
		return
	}
	s.OnTick = func(ev TickEvent) {
		e := ev.Entity
		rec := telemetry.TraceRecord{
			Tick:     ev.Tick,
			SimTime:  (time.Duration(ev.Tick) * ev.Step).Seconds(),
			Input:    ev.Input.String(),
			X:        e.Pos.X,
			Y:        e.Pos.Y,
			Rotation: e.Rotation,
			VelX:     e.Vel.X,
			VelY:     e.Vel.Y,
			DirX:     e.Dir.X,
			DirY:     e.Dir.Y,
		}
		if err := r.output.WriteTrace(rec); err != nil {
			slog.Error("failed to write trace", "error", err)
		}
	}
}

// Perf returns the phase timer; nil-safe.
func (r *Recorder) Perf() *telemetry.PerfCollector {
	if r == nil {
		return nil
	}
	return r.perf
}

// Frame records one display frame at source time now.
func (r *Recorder) Frame(now time.Duration, info FrameInfo, s *Session) {
	if r == nil || r.collector == nil {
		return
	}
	var delta time.Duration
	if r.started {
		delta = now - r.lastNow
	}
	r.lastNow = now
	r.started = true

	stats, ok := r.collector.Record(telemetry.FrameSample{
		Delta: delta,
		Ticks: info.Ticks,
		Alpha: info.Alpha,
		Pose:  info.Pose,
		Clock: s.Clock().Stats(),
	})
	if ok {
		r.flush(stats)
	}
}

// flush reports a closed stats window.
func (r *Recorder) flush(stats telemetry.WindowStats) {
	perfStats := r.perf.Stats()

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if r.output != nil {
		if err := r.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := r.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Close flushes a partial window and closes the output files.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	if r.collector != nil && r.collector.Pending() > 0 {
		r.flush(r.collector.Flush())
	}
	return r.output.Close()
}
