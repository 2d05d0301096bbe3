package renderer

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/pthm-cable/pixelstep/viewport"
)

// Present composes a finished surface into a window-sized frame: the surface
// is stretched by the result's display scale with nearest-neighbour sampling
// and placed at the centring offset. Areas outside the surface get the
// letterbox colour.
func Present(dst *image.RGBA, src *image.RGBA, r viewport.Result, letterbox color.RGBA) {
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(letterbox), image.Point{}, xdraw.Src)
	if r.Empty() {
		return
	}

	x0 := int(math.Floor(r.OffsetX))
	y0 := int(math.Floor(r.OffsetY))
	rect := image.Rect(x0, y0, x0+int(r.DisplayWidth()), y0+int(r.DisplayHeight()))

	if r.DisplayScale == 1 {
		xdraw.Draw(dst, rect, src, src.Bounds().Min, xdraw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
}
