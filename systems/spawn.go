package systems

import "github.com/pthm-cable/pixelstep/components"

// SpawnConfig places the entity when a session starts.
type SpawnConfig struct {
	// Anchor is the sprite centre as a fraction of the game area.
	Anchor components.Vec2
	// Velocity and Direction seed the bounce model.
	Velocity  components.Vec2
	Direction components.Vec2
}

// Spawn creates the entity for a sprite of the given size. Previous state
// equals current state so the first frame renders without a blend.
func Spawn(kind Kind, size components.Vec2, area components.Area, sc SpawnConfig) components.Entity {
	e := components.Entity{
		Pos: components.Vec2{
			X: area.Width*sc.Anchor.X - size.X/2,
			Y: area.Height*sc.Anchor.Y - size.Y/2,
		},
		Size: size,
	}
	if kind == KindBounce {
		e.Vel = sc.Velocity
		e.Dir = sc.Direction
	}
	e.Snapshot()
	return e
}
