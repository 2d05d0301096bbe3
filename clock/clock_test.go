package clock

import (
	"math/rand"
	"testing"
	"time"
)

func TestFirstAdvanceOnlyRecords(t *testing.T) {
	c := New(60, time.Second)

	if n := c.Advance(5 * time.Second); n != 0 {
		t.Fatalf("first Advance ticks: got %d, want 0", n)
	}
	if c.Backlog() != 0 {
		t.Errorf("backlog after first Advance: got %v, want 0", c.Backlog())
	}

	// One full step later exactly one tick is due
	if n := c.Advance(5*time.Second + c.Step()); n != 1 {
		t.Errorf("ticks after one step: got %d, want 1", n)
	}
}

func TestAdvanceTickCounts(t *testing.T) {
	c := New(60, time.Second)
	step := c.Step()

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"zero", 0, 0},
		{"just under a step", step - 1, 0},
		{"completes the step", 1, 1},
		{"two and a half", step*5/2, 2},
		{"carry completes another", step / 2, 1},
	}

	now := time.Duration(0)
	c.Reset(now)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now += tc.elapsed
			if got := c.Advance(now); got != tc.want {
				t.Errorf("ticks: got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBacklogStaysBelowStep(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := New(60, time.Second)
	now := time.Duration(0)
	c.Reset(now)

	for i := 0; i < 5000; i++ {
		now += time.Duration(rng.Int63n(int64(40 * time.Millisecond)))
		c.Advance(now)

		if c.Backlog() < 0 || c.Backlog() >= c.Step() {
			t.Fatalf("frame %d: backlog %v outside [0, %v)", i, c.Backlog(), c.Step())
		}
		if a := c.Alpha(); a < 0 || a >= 1 {
			t.Fatalf("frame %d: alpha %v outside [0, 1)", i, a)
		}
	}
}

func TestSimulatedTimeIsConserved(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New(60, time.Second)

	now := 10 * time.Second
	c.Reset(now)

	var fed time.Duration
	ticks := 0
	for i := 0; i < 2000; i++ {
		var delta time.Duration
		switch rng.Intn(20) {
		case 0:
			// Backgrounded tab
			delta = time.Duration(1+rng.Intn(30)) * time.Second
		case 1:
			// Timestamp regression
			delta = -time.Duration(rng.Int63n(int64(10 * time.Millisecond)))
		default:
			delta = time.Duration(rng.Int63n(int64(35 * time.Millisecond)))
		}
		now += delta

		clamped := delta
		if clamped < 0 {
			clamped = 0
		}
		if clamped > time.Second {
			clamped = time.Second
		}
		fed += clamped

		ticks += c.Advance(now)
	}

	got := time.Duration(ticks)*c.Step() + c.Backlog()
	if got != fed {
		t.Errorf("simulated time: got %v, want %v", got, fed)
	}
	if uint64(ticks) != c.Stats().Ticks {
		t.Errorf("Stats().Ticks: got %d, want %d", c.Stats().Ticks, ticks)
	}
}

func TestStallIsCapped(t *testing.T) {
	c := New(60, time.Second)
	c.Reset(0)

	n := c.Advance(10 * time.Minute)
	// 1s of 16.666666ms steps: 60 ticks, with 40ns left over
	if n != 60 {
		t.Errorf("ticks after stall: got %d, want 60", n)
	}
	if c.Stats().Stalls != 1 {
		t.Errorf("stalls: got %d, want 1", c.Stats().Stalls)
	}
	if c.Backlog() != time.Second-60*c.Step() {
		t.Errorf("backlog: got %v, want %v", c.Backlog(), time.Second-60*c.Step())
	}
}

func TestRegressionFloorsAtZero(t *testing.T) {
	c := New(60, time.Second)
	c.Reset(time.Second)
	c.Advance(time.Second + c.Step()/2)
	before := c.Backlog()

	if n := c.Advance(500 * time.Millisecond); n != 0 {
		t.Errorf("ticks after regression: got %d, want 0", n)
	}
	if c.Backlog() != before {
		t.Errorf("backlog changed on regression: got %v, want %v", c.Backlog(), before)
	}
	if c.Stats().Regressions != 1 {
		t.Errorf("regressions: got %d, want 1", c.Stats().Regressions)
	}

	// The regressed timestamp becomes the new reference
	if n := c.Advance(500*time.Millisecond + c.Step()); n != 1 {
		t.Errorf("ticks after recovery: got %d, want 1", n)
	}
}

func TestDefaultsForInvalidArguments(t *testing.T) {
	c := New(0, -1)
	if c.Step() != time.Second/DefaultTickRate {
		t.Errorf("step: got %v, want %v", c.Step(), time.Second/DefaultTickRate)
	}
	if c.MaxFrame() != DefaultMaxFrame {
		t.Errorf("max frame: got %v, want %v", c.MaxFrame(), DefaultMaxFrame)
	}
}

func TestAlpha(t *testing.T) {
	c := New(50, time.Second) // 20ms steps
	c.Reset(0)
	c.Advance(25 * time.Millisecond)

	if got, want := c.Alpha(), 0.25; got != want {
		t.Errorf("alpha: got %v, want %v", got, want)
	}
	if got, want := c.DT(), 0.02; got != want {
		t.Errorf("dt: got %v, want %v", got, want)
	}
}

func TestManualSource(t *testing.T) {
	m := NewManual(time.Second)
	m.Advance(250 * time.Millisecond)
	if m.Now() != 1250*time.Millisecond {
		t.Errorf("Now: got %v, want 1.25s", m.Now())
	}
	m.Set(0)
	if m.Now() != 0 {
		t.Errorf("Now after Set: got %v, want 0", m.Now())
	}
}
