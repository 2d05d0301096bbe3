package systems

import "github.com/pthm-cable/pixelstep/components"

// Shmup moves at constant speed in the held direction with no inertia.
// Direction is rebuilt from the flags every tick.
type Shmup struct{}

// Kind implements Model.
func (Shmup) Kind() Kind { return KindShmup }

// Step implements Model.
func (Shmup) Step(e *components.Entity, in components.InputFlags, p components.Params, dt float64) {
	rotate(e, in, p, dt)

	e.Dir.X = axis(in.Held(components.ActionLeft), in.Held(components.ActionRight))
	e.Dir.Y = axis(in.Held(components.ActionUp), in.Held(components.ActionDown))

	e.Pos.X += e.Dir.X * p.Speed * dt
	e.Pos.Y += e.Dir.Y * p.Speed * dt
}

// axis maps a pair of opposing flags to -1, 0 or +1. Holding both cancels.
func axis(negative, positive bool) float64 {
	switch {
	case negative && !positive:
		return -1
	case positive && !negative:
		return 1
	}
	return 0
}
