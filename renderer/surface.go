// Package renderer draws the simulated sprite onto a 2D surface. Surfaces
// follow canvas semantics: transforms compose onto the current matrix and
// apply to every subsequent draw until reset.
package renderer

import "math"

// Bitmap is a decoded image with known pixel dimensions.
type Bitmap interface {
	Width() int
	Height() int
}

// Surface accepts the per-frame draw commands.
type Surface interface {
	Size() (w, h int)
	Clear()
	// SetSmoothing selects bilinear (true) or nearest-neighbour (false)
	// sampling for bitmap draws.
	SetSmoothing(on bool)
	Translate(x, y float64)
	Rotate(degrees float64)
	Scale(sx, sy float64)
	DrawBitmap(b Bitmap, x, y float64)
	ResetTransform()
}

// Transform is a 2D affine matrix laid out as
// [a b c; d e f], mapping (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Transform [6]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0}
}

// Translation returns a translation by (x, y).
func Translation(x, y float64) Transform {
	return Transform{1, 0, x, 0, 1, y}
}

// Rotation returns a rotation by degrees, clockwise on a y-down screen.
func Rotation(degrees float64) Transform {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Transform{cos, -sin, 0, sin, cos, 0}
}

// Scaling returns a scale by (sx, sy).
func Scaling(sx, sy float64) Transform {
	return Transform{sx, 0, 0, 0, sy, 0}
}

// Mul returns t*o: o is applied first, then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[1]*o[3],
		t[0]*o[1] + t[1]*o[4],
		t[0]*o[2] + t[1]*o[5] + t[2],
		t[3]*o[0] + t[4]*o[3],
		t[3]*o[1] + t[4]*o[4],
		t[3]*o[2] + t[4]*o[5] + t[5],
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t[0]*x + t[1]*y + t[2], t[3]*x + t[4]*y + t[5]
}

// Decompose splits a translate-rotate-scale transform (no shear) into its
// parts: translation, rotation in degrees and per-axis scale.
func (t Transform) Decompose() (tx, ty, degrees, sx, sy float64) {
	sx = math.Hypot(t[0], t[3])
	if sx == 0 {
		return t[2], t[5], 0, 0, 0
	}
	degrees = math.Atan2(t[3], t[0]) * 180 / math.Pi
	sy = (t[0]*t[4] - t[1]*t[3]) / sx
	return t[2], t[5], degrees, sx, sy
}
