package systems

import (
	"math"

	"github.com/pthm-cable/pixelstep/components"
)

// brakeFactor scales the brake impulse relative to thrust.
const brakeFactor = 0.5

// Ship rotates in place and thrusts along its heading. Velocity persists
// between ticks and decays under friction.
type Ship struct{}

// Kind implements Model.
func (Ship) Kind() Kind { return KindShip }

// Step implements Model.
func (Ship) Step(e *components.Entity, in components.InputFlags, p components.Params, dt float64) {
	rotate(e, in, p, dt)

	hx, hy := Heading(e.Rotation)

	if in.Held(components.ActionThrust) {
		e.Vel.X += hx * p.Speed * dt
		e.Vel.Y += hy * p.Speed * dt
	}
	if in.Held(components.ActionBrake) {
		e.Vel.X -= hx * p.Speed * brakeFactor * dt
		e.Vel.Y -= hy * p.Speed * brakeFactor * dt
	}

	r := Retention(p.Friction, dt)
	e.Vel.X *= r
	e.Vel.Y *= r

	e.Pos.X += e.Vel.X * dt
	e.Pos.Y += e.Vel.Y * dt
}

// Heading returns the unit vector a sprite faces at rotation degrees.
// The sprite points up, so 0 degrees is screen -Y.
func Heading(rotation float64) (x, y float64) {
	rad := (rotation - 90) * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// Retention is the fraction of velocity kept over dt seconds when friction
// is the fraction lost per second. Independent of the tick rate:
// Retention(f, a) * Retention(f, b) == Retention(f, a+b).
func Retention(friction, dt float64) float64 {
	return math.Pow(1-friction, dt)
}
