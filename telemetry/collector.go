package telemetry

import (
	"time"

	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
)

// FrameSample is what one display frame reports to the collector.
type FrameSample struct {
	Delta time.Duration // source time since the previous frame
	Ticks int
	Alpha float64
	Pose  components.Pose
	Clock clock.Stats // cumulative clock counters after the frame
}

// Collector accumulates frame samples into fixed-size windows.
type Collector struct {
	windowSize int
	step       time.Duration

	windowStart uint64
	frames      uint64
	deltas      []float64
	ticks       []float64
	alphas      []float64
	ticksMax    int
	idle        int
	last        FrameSample
	base        clock.Stats
}

// NewCollector creates a collector that closes a window every windowSize
// frames. step is the simulation tick length, for tick-to-time conversion.
func NewCollector(windowSize int, step time.Duration) *Collector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &Collector{
		windowSize: windowSize,
		step:       step,
		deltas:     make([]float64, 0, windowSize),
		ticks:      make([]float64, 0, windowSize),
		alphas:     make([]float64, 0, windowSize),
	}
}

// Record adds a frame. When the frame completes a window the window's stats
// are returned with ok set.
func (c *Collector) Record(s FrameSample) (stats WindowStats, ok bool) {
	c.frames++
	// The first frame of a run has no meaningful delta
	if c.frames > 1 {
		c.deltas = append(c.deltas, float64(s.Delta)/float64(time.Millisecond))
	}
	c.ticks = append(c.ticks, float64(s.Ticks))
	c.alphas = append(c.alphas, s.Alpha)
	if s.Ticks > c.ticksMax {
		c.ticksMax = s.Ticks
	}
	if s.Ticks == 0 {
		c.idle++
	}
	c.last = s

	if len(c.ticks) < c.windowSize {
		return WindowStats{}, false
	}
	return c.Flush(), true
}

// Flush closes the current window early, e.g. at shutdown.
func (c *Collector) Flush() WindowStats {
	frame := Summarize(c.deltas)
	ws := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   c.frames,
		Ticks:            c.last.Clock.Ticks,
		SimTimeSec:       (time.Duration(c.last.Clock.Ticks) * c.step).Seconds(),
		FrameMeanMS:      frame.Mean,
		FrameStdMS:       frame.Std,
		FrameP95MS:       frame.P95,
		TicksPerFrame:    Summarize(c.ticks).Mean,
		TicksMax:         c.ticksMax,
		IdleFrames:       c.idle,
		AlphaMean:        Summarize(c.alphas).Mean,
		Stalls:           c.last.Clock.Stalls - c.base.Stalls,
		Regressions:      c.last.Clock.Regressions - c.base.Regressions,
		X:                c.last.Pose.X,
		Y:                c.last.Pose.Y,
		Rotation:         c.last.Pose.Rotation,
	}
	if frame.Mean > 0 {
		ws.FPS = 1000 / frame.Mean
	}

	c.windowStart = c.frames
	c.deltas = c.deltas[:0]
	c.ticks = c.ticks[:0]
	c.alphas = c.alphas[:0]
	c.ticksMax = 0
	c.idle = 0
	c.base = c.last.Clock
	return ws
}

// Pending reports how many frames the open window holds.
func (c *Collector) Pending() int {
	return len(c.ticks)
}
