// Package components defines the plain data records shared by the simulation,
// the renderers and the settings panel.
package components

// Vec2 is a 2D vector in logical game-area units.
type Vec2 struct {
	X, Y float64
}

// Area is the fixed logical game rectangle. All physics runs in its
// coordinate space, independent of display scaling.
type Area struct {
	Width, Height float64
}

// Pose is a point-in-time render pose: top-left position and rotation.
type Pose struct {
	X, Y     float64
	Rotation float64 // degrees, clockwise on screen
}

// Entity is the kinematic state of the single simulated sprite.
//
// The meaning of Vel and Dir depends on the active movement model:
//   - shmup: Dir is the per-tick direction (each axis -1, 0 or +1), Vel unused
//   - ship: Vel is the velocity vector in units per second, Dir unused
//   - bounce: Vel holds constant speed magnitudes, Dir the per-axis sign
type Entity struct {
	Pos     Vec2
	PrevPos Vec2

	Rotation     float64 // degrees, unbounded
	PrevRotation float64

	Vel Vec2
	Dir Vec2

	// Size is the sprite's pixel size, used as the axis-aligned bounding box.
	Size Vec2
}

// Snapshot copies the current state into the previous-state fields.
// Called once per display frame before any tick runs.
func (e *Entity) Snapshot() {
	e.PrevPos = e.Pos
	e.PrevRotation = e.Rotation
}

// Pose returns the current tick-end pose.
func (e *Entity) Pose() Pose {
	return Pose{X: e.Pos.X, Y: e.Pos.Y, Rotation: e.Rotation}
}

// PrevPose returns the pose captured by the last Snapshot.
func (e *Entity) PrevPose() Pose {
	return Pose{X: e.PrevPos.X, Y: e.PrevPos.Y, Rotation: e.PrevRotation}
}

// Center returns the centre of the sprite for a pose.
func (p Pose) Center(size Vec2) Vec2 {
	return Vec2{X: p.X + size.X/2, Y: p.Y + size.Y/2}
}
