package clock

import "time"

// Source supplies monotonically non-decreasing frame timestamps, measured
// from an arbitrary origin.
type Source interface {
	Now() time.Duration
}

// Monotonic reads the process's monotonic wall clock.
type Monotonic struct {
	start time.Time
}

// NewMonotonic creates a source whose origin is the moment of the call.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Now returns the time elapsed since the source was created.
func (m *Monotonic) Now() time.Duration {
	return time.Since(m.start)
}

// Manual is a controllable source for tests and headless runs.
type Manual struct {
	now time.Duration
}

// NewManual creates a manual source starting at start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Set moves the source to t. Moving backwards is allowed so tests can
// exercise regression handling.
func (m *Manual) Set(t time.Duration) {
	m.now = t
}

// Advance moves the source forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
}
