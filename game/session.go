package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/systems"
)

// SessionConfig describes one simulated entity and its clock.
type SessionConfig struct {
	Kind     systems.Kind
	TickRate int
	MaxFrame time.Duration
	Area     components.Area
	Size     components.Vec2 // sprite size, used as the bounding box
	Spawn    systems.SpawnConfig
}

// TickEvent describes one completed simulation tick.
type TickEvent struct {
	Tick   uint64
	Step   time.Duration
	Input  components.InputFlags
	Entity components.Entity
}

// FrameInfo is the outcome of one display frame.
type FrameInfo struct {
	Ticks int
	Alpha float64
	Pose  components.Pose
}

// Session owns the simulation: clock, entity, movement model and bounds
// policy. It is driven by Frame once per display frame and is not safe for
// concurrent use.
type Session struct {
	clock  *clock.Clock
	model  systems.Model
	bounds systems.BoundsPolicy
	area   components.Area
	entity components.Entity
	params *components.Params
	input  input.Source

	paused bool
	tick   uint64
	last   FrameInfo

	// OnTick, if set, is called after every tick.
	OnTick func(TickEvent)
}

// NewSession spawns the entity. params is shared with the settings UI and
// read once per tick; src is polled once per tick.
func NewSession(sc SessionConfig, params *components.Params, src input.Source) (*Session, error) {
	model, err := systems.NewModel(sc.Kind)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	if params == nil {
		params = &components.Params{}
	}
	s := &Session{
		clock:  clock.New(sc.TickRate, sc.MaxFrame),
		model:  model,
		bounds: systems.PolicyFor(sc.Kind),
		area:   sc.Area,
		entity: systems.Spawn(sc.Kind, sc.Size, sc.Area, sc.Spawn),
		params: params,
		input:  src,
	}
	s.last = FrameInfo{Pose: s.entity.Pose()}
	return s, nil
}

// Frame advances the simulation to now and returns the pose to render.
// The previous state is captured once, before any tick, so a frame that
// runs no tick renders the current state exactly.
func (s *Session) Frame(now time.Duration) FrameInfo {
	s.entity.Snapshot()

	if s.paused {
		// Keep the clock current so unpausing does not replay the pause
		s.clock.Reset(now)
		s.last = FrameInfo{Pose: s.entity.Pose()}
		return s.last
	}

	n := s.clock.Advance(now)
	dt := s.clock.DT()
	for i := 0; i < n; i++ {
		in := input.Poll(s.input)
		p := *s.params
		systems.Tick(s.model, s.bounds, &s.entity, in, p, s.area, dt)
		s.tick++
		if s.OnTick != nil {
			s.OnTick(TickEvent{Tick: s.tick, Step: s.clock.Step(), Input: in, Entity: s.entity})
		}
	}

	alpha := s.clock.Alpha()
	pose := systems.Interpolate(s.entity.PrevPose(), s.entity.Pose(), alpha, s.params.Interpolation)
	s.last = FrameInfo{Ticks: n, Alpha: alpha, Pose: pose}
	return s.last
}

// SetPaused pauses or resumes the simulation.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
}

// TogglePause flips the pause state and returns the new state.
func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether the simulation is paused.
func (s *Session) Paused() bool { return s.paused }

// Tick returns the number of ticks run so far.
func (s *Session) Tick() uint64 { return s.tick }

// Entity returns a copy of the simulated entity.
func (s *Session) Entity() components.Entity { return s.entity }

// Kind returns the movement model in use.
func (s *Session) Kind() systems.Kind { return s.model.Kind() }

// Clock exposes the session clock for stats.
func (s *Session) Clock() *clock.Clock { return s.clock }

// Last returns the most recent frame result.
func (s *Session) Last() FrameInfo { return s.last }
