package systems

import "github.com/pthm-cable/pixelstep/components"

// Bounce moves at constant speed and ignores input; walls flip Dir.
type Bounce struct{}

// Kind implements Model.
func (Bounce) Kind() Kind { return KindBounce }

// Step implements Model.
func (Bounce) Step(e *components.Entity, _ components.InputFlags, _ components.Params, dt float64) {
	e.Pos.X += e.Vel.X * e.Dir.X * dt
	e.Pos.Y += e.Vel.Y * e.Dir.Y * dt
}
