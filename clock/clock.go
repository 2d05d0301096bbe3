// Package clock turns variable display-frame timestamps into a deterministic
// sequence of fixed simulation ticks.
package clock

import "time"

// Defaults used when the constructor is given non-positive values.
const (
	DefaultTickRate = 60
	DefaultMaxFrame = time.Second
)

// Stats counts what the clock has seen since construction.
type Stats struct {
	Frames      uint64 // Advance calls that measured an elapsed time
	Ticks       uint64 // ticks emitted
	Stalls      uint64 // frames whose elapsed time was clamped to the cap
	Regressions uint64 // frames whose timestamp went backwards
}

// Clock is a fixed-timestep accumulator.
//
// Elapsed frame time is added to a backlog; every whole step in the backlog
// becomes one tick. The remainder stays in the backlog, so after Advance the
// backlog is always in [0, step). Durations are integer nanoseconds, which
// keeps ticks*step + backlog exactly equal to the simulated time fed in.
type Clock struct {
	step     time.Duration
	maxFrame time.Duration

	backlog time.Duration
	last    time.Duration
	started bool

	stats Stats
}

// New creates a clock emitting tickRate ticks per simulated second. A single
// frame contributes at most maxFrame of simulated time.
func New(tickRate int, maxFrame time.Duration) *Clock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &Clock{
		step:     time.Second / time.Duration(tickRate),
		maxFrame: maxFrame,
	}
}

// Reset makes now the reference timestamp and drops any backlog.
func (c *Clock) Reset(now time.Duration) {
	c.last = now
	c.backlog = 0
	c.started = true
}

// Advance feeds the frame timestamp now and returns the number of ticks the
// caller must run, in order, before rendering.
//
// The first call after New only records the timestamp. A timestamp earlier
// than the previous one counts as zero elapsed time; an elapsed time above
// the frame cap is clamped, silently skipping simulated time.
func (c *Clock) Advance(now time.Duration) int {
	if !c.started {
		c.Reset(now)
		return 0
	}

	elapsed := now - c.last
	c.last = now
	c.stats.Frames++

	if elapsed < 0 {
		elapsed = 0
		c.stats.Regressions++
	} else if elapsed > c.maxFrame {
		elapsed = c.maxFrame
		c.stats.Stalls++
	}

	c.backlog += elapsed
	n := c.backlog / c.step
	c.backlog -= n * c.step
	c.stats.Ticks += uint64(n)

	return int(n)
}

// Alpha is the unconsumed fraction of the next tick, in [0, 1).
func (c *Clock) Alpha() float64 {
	return float64(c.backlog) / float64(c.step)
}

// Backlog returns the unconsumed simulated time.
func (c *Clock) Backlog() time.Duration {
	return c.backlog
}

// Step returns the fixed tick duration.
func (c *Clock) Step() time.Duration {
	return c.step
}

// DT returns the fixed tick duration in seconds.
func (c *Clock) DT() float64 {
	return c.step.Seconds()
}

// MaxFrame returns the per-frame elapsed time cap.
func (c *Clock) MaxFrame() time.Duration {
	return c.maxFrame
}

// Stats returns the counters accumulated so far.
func (c *Clock) Stats() Stats {
	return c.stats
}
