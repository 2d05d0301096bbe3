package renderer

import (
	"math"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/viewport"
)

// DrawSprite renders one frame: clear, transform for the scaling strategy,
// draw the sprite around its centre, reset. The sprite centre is snapped to
// whole surface pixels.
func DrawSprite(s Surface, sprite Bitmap, pose components.Pose, r viewport.Result) {
	s.Clear()
	if r.Empty() {
		return
	}

	w := float64(sprite.Width())
	h := float64(sprite.Height())
	scale := r.DrawScale

	// Sprite centre in surface pixels
	c := pose.Center(components.Vec2{X: w, Y: h})
	s.Translate(math.Trunc(c.X*scale), math.Trunc(c.Y*scale))
	s.Rotate(pose.Rotation)
	s.Scale(scale, scale)
	s.DrawBitmap(sprite, -w/2, -h/2)
	s.ResetTransform()
}
