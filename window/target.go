// Package window is the raylib backend: the window, keyboard, GPU render
// target and the frame driver tying them to a simulation session.
package window

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelstep/renderer"
	"github.com/pthm-cable/pixelstep/viewport"
)

// Texture is a GPU-resident renderer.Bitmap.
type Texture struct {
	tex rl.Texture2D
}

// NewTexture uploads an RGBA image. Requires an open window.
func NewTexture(img image.Image) *Texture {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterPoint)
	return &Texture{tex: tex}
}

// Width implements renderer.Bitmap.
func (t *Texture) Width() int { return int(t.tex.Width) }

// Height implements renderer.Bitmap.
func (t *Texture) Height() int { return int(t.tex.Height) }

// Unload releases the GPU texture.
func (t *Texture) Unload() {
	rl.UnloadTexture(t.tex)
}

// Target is a renderer.Surface drawing into an off-screen render texture.
// Draw commands must be issued between Begin and End.
type Target struct {
	Background rl.Color

	rt        rl.RenderTexture2D
	w, h      int
	loaded    bool
	m         renderer.Transform
	smoothing bool
}

// NewTarget allocates a render texture of the given size.
func NewTarget(w, h int) *Target {
	t := &Target{m: renderer.Identity(), Background: rl.Black}
	t.Resize(w, h)
	return t
}

// Resize reallocates the render texture when the size changes. A zero size
// releases it.
func (t *Target) Resize(w, h int) {
	if t.loaded && t.w == w && t.h == h {
		return
	}
	t.Unload()
	t.w, t.h = w, h
	if w <= 0 || h <= 0 {
		return
	}
	t.rt = rl.LoadRenderTexture(int32(w), int32(h))
	t.loaded = true
	t.applyFilter(t.rt.Texture)
}

// Unload releases the render texture.
func (t *Target) Unload() {
	if t.loaded {
		rl.UnloadRenderTexture(t.rt)
		t.loaded = false
	}
}

// Begin redirects drawing to the render texture.
func (t *Target) Begin() bool {
	if !t.loaded {
		return false
	}
	rl.BeginTextureMode(t.rt)
	return true
}

// End restores drawing to the window.
func (t *Target) End() {
	rl.EndTextureMode()
}

// Present draws the finished surface into the window at the result's
// offset and display size. Call between BeginDrawing and EndDrawing.
func (t *Target) Present(r viewport.Result) {
	if !t.loaded || r.Empty() {
		return
	}
	// Render textures are stored upside down
	src := rl.Rectangle{
		X:      0,
		Y:      float32(t.h),
		Width:  float32(t.w),
		Height: -float32(t.h),
	}
	dst := rl.Rectangle{
		X:      float32(r.OffsetX),
		Y:      float32(r.OffsetY),
		Width:  float32(r.DisplayWidth()),
		Height: float32(r.DisplayHeight()),
	}
	rl.DrawTexturePro(t.rt.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Size implements renderer.Surface.
func (t *Target) Size() (int, int) {
	return t.w, t.h
}

// Clear implements renderer.Surface.
func (t *Target) Clear() {
	rl.ClearBackground(t.Background)
}

// SetSmoothing implements renderer.Surface.
func (t *Target) SetSmoothing(on bool) {
	t.smoothing = on
	if t.loaded {
		t.applyFilter(t.rt.Texture)
	}
}

// Translate implements renderer.Surface.
func (t *Target) Translate(x, y float64) {
	t.m = t.m.Mul(renderer.Translation(x, y))
}

// Rotate implements renderer.Surface.
func (t *Target) Rotate(degrees float64) {
	t.m = t.m.Mul(renderer.Rotation(degrees))
}

// Scale implements renderer.Surface.
func (t *Target) Scale(sx, sy float64) {
	t.m = t.m.Mul(renderer.Scaling(sx, sy))
}

// ResetTransform implements renderer.Surface.
func (t *Target) ResetTransform() {
	t.m = renderer.Identity()
}

// DrawBitmap implements renderer.Surface. The accumulated matrix is decomposed into
// DrawTexturePro's destination rectangle and rotation about its top-left.
func (t *Target) DrawBitmap(b renderer.Bitmap, x, y float64) {
	tex, ok := b.(*Texture)
	if !ok {
		return
	}
	t.applyFilter(tex.tex)

	tx, ty, deg, sx, sy := t.m.Mul(renderer.Translation(x, y)).Decompose()
	w, h := float32(tex.tex.Width), float32(tex.tex.Height)
	src := rl.Rectangle{Width: w, Height: h}
	dst := rl.Rectangle{
		X:      float32(tx),
		Y:      float32(ty),
		Width:  w * float32(sx),
		Height: h * float32(sy),
	}
	rl.DrawTexturePro(tex.tex, src, dst, rl.Vector2{}, float32(deg), rl.White)
}

func (t *Target) applyFilter(tex rl.Texture2D) {
	if t.smoothing {
		rl.SetTextureFilter(tex, rl.FilterBilinear)
	} else {
		rl.SetTextureFilter(tex, rl.FilterPoint)
	}
}
