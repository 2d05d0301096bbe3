package systems

import "github.com/pthm-cable/pixelstep/components"

// Interpolate blends the previous and current tick-end poses by alpha.
// With interpolation disabled the current pose is returned unchanged.
// When prev == curr the result is exactly curr for any alpha.
func Interpolate(prev, curr components.Pose, alpha float64, enabled bool) components.Pose {
	if !enabled {
		return curr
	}
	return components.Pose{
		X:        lerp(prev.X, curr.X, alpha),
		Y:        lerp(prev.Y, curr.Y, alpha),
		Rotation: lerp(prev.Rotation, curr.Rotation, alpha),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
