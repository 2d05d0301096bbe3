package renderer

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ImageBitmap is a Bitmap whose pixels are available to software surfaces.
type ImageBitmap interface {
	Bitmap
	Source() image.Image
}

// Canvas is a software Surface backed by an RGBA image. Used by the
// headless and terminal backends, and for screenshots.
type Canvas struct {
	Background color.RGBA

	img       *image.RGBA
	m         Transform
	smoothing bool
}

// NewCanvas creates a canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{m: Identity()}
	c.Resize(w, h)
	return c
}

// Resize reallocates the backing image when the size changes.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c.img != nil && c.img.Bounds().Dx() == w && c.img.Bounds().Dy() == h {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size implements Surface.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (c *Canvas) Clear() {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.Background), image.Point{}, xdraw.Src)
}

// SetSmoothing implements Surface.
func (c *Canvas) SetSmoothing(on bool) {
	c.smoothing = on
}

// Translate implements Surface.
func (c *Canvas) Translate(x, y float64) {
	c.m = c.m.Mul(Translation(x, y))
}

// Rotate implements Surface.
func (c *Canvas) Rotate(degrees float64) {
	c.m = c.m.Mul(Rotation(degrees))
}

// Scale implements Surface.
func (c *Canvas) Scale(sx, sy float64) {
	c.m = c.m.Mul(Scaling(sx, sy))
}

// ResetTransform implements Surface.
func (c *Canvas) ResetTransform() {
	c.m = Identity()
}

// DrawBitmap implements Surface. Bitmaps without pixel access are skipped.
func (c *Canvas) DrawBitmap(b Bitmap, x, y float64) {
	ib, ok := b.(ImageBitmap)
	if !ok {
		return
	}
	src := ib.Source()
	m := c.m.Mul(Translation(x, y))

	var interp xdraw.Interpolator = xdraw.NearestNeighbor
	if c.smoothing {
		interp = xdraw.ApproxBiLinear
	}
	interp.Transform(c.img, f64.Aff3(m), src, src.Bounds(), xdraw.Over, nil)
}
