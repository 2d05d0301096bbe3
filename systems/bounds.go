package systems

import "github.com/pthm-cable/pixelstep/components"

// BoundsPolicy keeps an entity inside the game area after a movement step.
type BoundsPolicy interface {
	Apply(e *components.Entity, area components.Area)
}

// PolicyFor returns the bounds policy that goes with a movement model.
func PolicyFor(kind Kind) BoundsPolicy {
	switch kind {
	case KindShip:
		return Clamp{ZeroVelocity: true}
	case KindBounce:
		return Reflect{}
	}
	return Clamp{}
}

// Clamp stops the entity at the walls. With ZeroVelocity the velocity
// component into the wall is dropped so momentum does not build up against it.
type Clamp struct {
	ZeroVelocity bool
}

// Apply implements BoundsPolicy.
func (c Clamp) Apply(e *components.Entity, area components.Area) {
	if clampAxis(&e.Pos.X, e.Size.X, area.Width) && c.ZeroVelocity {
		e.Vel.X = 0
	}
	if clampAxis(&e.Pos.Y, e.Size.Y, area.Height) && c.ZeroVelocity {
		e.Vel.Y = 0
	}
}

// clampAxis clamps one axis and reports whether a correction happened.
func clampAxis(pos *float64, size, limit float64) bool {
	if *pos < 0 {
		*pos = 0
		return true
	} else if *pos+size > limit {
		*pos = limit - size
		return true
	}
	return false
}

// Reflect bounces the entity off the walls. Touching a wall exactly counts
// as contact, so the flip happens on the tick of contact and not one later.
type Reflect struct{}

// Apply implements BoundsPolicy.
func (Reflect) Apply(e *components.Entity, area components.Area) {
	reflectAxis(&e.Pos.X, &e.Dir.X, e.Size.X, area.Width)
	reflectAxis(&e.Pos.Y, &e.Dir.Y, e.Size.Y, area.Height)
}

func reflectAxis(pos, dir *float64, size, limit float64) {
	if *pos+size >= limit {
		*pos = limit - size
		*dir = -*dir
	} else if *pos <= 0 {
		*pos = 0
		*dir = -*dir
	}
}
