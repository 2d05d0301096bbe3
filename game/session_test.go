package game

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/systems"
)

const step = time.Second / 60

var testArea = components.Area{Width: 128, Height: 128}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestSession(t *testing.T, kind systems.Kind, params *components.Params, src input.Source) *Session {
	t.Helper()
	anchor := components.Vec2{X: 0.5, Y: 0.5}
	s, err := NewSession(SessionConfig{
		Kind:     kind,
		TickRate: 60,
		MaxFrame: time.Second,
		Area:     testArea,
		Size:     components.Vec2{X: 16, Y: 16},
		Spawn: systems.SpawnConfig{
			Anchor:    anchor,
			Velocity:  components.Vec2{X: 60, Y: 30},
			Direction: components.Vec2{X: 1, Y: 1},
		},
	}, params, src)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionFirstFrameRunsNoTick(t *testing.T) {
	s := newTestSession(t, systems.KindBounce, &components.Params{Interpolation: true}, nil)
	info := s.Frame(5 * time.Second)
	if info.Ticks != 0 {
		t.Errorf("ticks: got %d, want 0", info.Ticks)
	}
	if info.Pose.X != 56 || info.Pose.Y != 56 {
		t.Errorf("pose: got (%v,%v), want spawn (56,56)", info.Pose.X, info.Pose.Y)
	}
}

func TestSessionShmupMovesPerTick(t *testing.T) {
	params := &components.Params{Speed: 60}
	s := newTestSession(t, systems.KindShmup, params, input.Static(components.Flags(components.ActionRight)))

	s.Frame(0)
	info := s.Frame(3 * step)
	if info.Ticks != 3 {
		t.Fatalf("ticks: got %d, want 3", info.Ticks)
	}
	want := 56 + 3*60*step.Seconds()
	if e := s.Entity(); !approx(e.Pos.X, want) || e.Pos.Y != 56 {
		t.Errorf("pos: got (%v,%v), want (%v,56)", e.Pos.X, e.Pos.Y, want)
	}
	// Interpolation disabled renders the current pose
	if !approx(info.Pose.X, want) {
		t.Errorf("pose x: got %v, want %v", info.Pose.X, want)
	}
}

func TestSessionZeroTickFrameRendersCurrentState(t *testing.T) {
	params := &components.Params{Speed: 60, Interpolation: true}
	s := newTestSession(t, systems.KindShmup, params, input.Static(components.Flags(components.ActionDown)))

	s.Frame(0)
	s.Frame(step)
	info := s.Frame(step + step/2)
	if info.Ticks != 0 {
		t.Fatalf("ticks: got %d, want 0", info.Ticks)
	}
	e := s.Entity()
	if info.Pose != e.Pose() {
		t.Errorf("pose: got %+v, want current %+v", info.Pose, e.Pose())
	}
}

func TestSessionInterpolatesWithAlpha(t *testing.T) {
	params := &components.Params{Interpolation: true}
	s := newTestSession(t, systems.KindBounce, params, nil)

	s.Frame(0)
	info := s.Frame(step + step/2)
	if info.Ticks != 1 {
		t.Fatalf("ticks: got %d, want 1", info.Ticks)
	}
	e := s.Entity()
	want := e.PrevPos.X + (e.Pos.X-e.PrevPos.X)*info.Alpha
	if !approx(info.Pose.X, want) {
		t.Errorf("pose x: got %v, want %v", info.Pose.X, want)
	}
	if info.Alpha < 0.49 || info.Alpha > 0.51 {
		t.Errorf("alpha: got %v, want ~0.5", info.Alpha)
	}
}

func TestSessionPollsInputOncePerTick(t *testing.T) {
	polls := 0
	src := input.Func(func(a components.Action) bool {
		if a == components.ActionUp {
			polls++
		}
		return false
	})
	s := newTestSession(t, systems.KindShmup, &components.Params{}, src)

	s.Frame(0)
	s.Frame(4 * step)
	if polls != 4 {
		t.Errorf("polls: got %d, want 4", polls)
	}
}

func TestSessionReadsParamsEachTick(t *testing.T) {
	params := &components.Params{Speed: 0}
	s := newTestSession(t, systems.KindShmup, params, input.Static(components.Flags(components.ActionRight)))

	s.Frame(0)
	s.Frame(step)
	if x := s.Entity().Pos.X; x != 56 {
		t.Fatalf("moved with zero speed: x = %v", x)
	}

	params.Speed = 60
	s.Frame(2 * step)
	if x := s.Entity().Pos.X; !approx(x, 56+60*step.Seconds()) {
		t.Errorf("speed change not seen by next tick: x = %v", x)
	}
}

func TestSessionPause(t *testing.T) {
	params := &components.Params{Speed: 60}
	s := newTestSession(t, systems.KindShmup, params, input.Static(components.Flags(components.ActionRight)))

	s.Frame(0)
	s.SetPaused(true)
	info := s.Frame(10 * step)
	if info.Ticks != 0 || s.Tick() != 0 {
		t.Fatalf("paused frame ran %d ticks", info.Ticks)
	}

	// Resuming does not replay the paused time
	if s.TogglePause() {
		t.Fatal("TogglePause should resume")
	}
	info = s.Frame(11 * step)
	if info.Ticks != 1 {
		t.Errorf("ticks after resume: got %d, want 1", info.Ticks)
	}
}

func TestSessionOnTick(t *testing.T) {
	s := newTestSession(t, systems.KindBounce, &components.Params{}, nil)
	var got []uint64
	s.OnTick = func(ev TickEvent) {
		got = append(got, ev.Tick)
		if ev.Step != step {
			t.Errorf("step: got %v, want %v", ev.Step, step)
		}
	}

	s.Frame(0)
	s.Frame(3 * step)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("tick events: got %v, want [1 2 3]", got)
	}
}

func TestSessionStallCapped(t *testing.T) {
	s := newTestSession(t, systems.KindBounce, &components.Params{}, nil)
	s.Frame(0)
	info := s.Frame(10 * time.Second)
	if info.Ticks != 60 {
		t.Errorf("ticks: got %d, want 60", info.Ticks)
	}
	if st := s.Clock().Stats(); st.Stalls != 1 {
		t.Errorf("stalls: got %d, want 1", st.Stalls)
	}
}

func TestSessionBounceStaysInArea(t *testing.T) {
	s := newTestSession(t, systems.KindBounce, &components.Params{}, nil)
	for i := 0; i <= 600; i++ {
		s.Frame(time.Duration(i) * step)
		e := s.Entity()
		if e.Pos.X < 0 || e.Pos.Y < 0 || e.Pos.X+e.Size.X > testArea.Width || e.Pos.Y+e.Size.Y > testArea.Height {
			t.Fatalf("frame %d: entity left the area at (%v,%v)", i, e.Pos.X, e.Pos.Y)
		}
	}
}
