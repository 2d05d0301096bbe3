package window

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelstep/viewport"
)

// modeKeys selects a scaling mode with the number row.
var modeKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}

// handleInput processes window-level keys. Movement keys are polled by the
// session once per tick, not here.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		paused := g.session.TogglePause()
		slog.Info("pause", "paused", paused, "tick", g.session.Tick())
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.settings.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.hud.Toggle()
	}

	modes := viewport.Modes()
	for i, key := range modeKeys {
		if i < len(modes) && rl.IsKeyPressed(key) {
			g.scaler.SetMode(modes[i])
			g.applyScaling("hotkey")
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() && !rl.IsWindowFullscreen() {
		return
	}
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	if !g.scaler.Resize(w, h) {
		return
	}
	g.settings.SetPosition(int32(w)-settingsWidth-10, 10)
	g.applyScaling("resize")
}

// applyScaling resizes the render target to the scaler's current result.
func (g *Game) applyScaling(reason string) {
	r := g.scaler.Result()
	g.target.Resize(r.Width, r.Height)
	slog.Info("scaling changed",
		"reason", reason,
		"window", []int{g.scaler.WindowW, g.scaler.WindowH},
		"mode", r.Strategy.Mode.String(),
		"integer", r.Strategy.Integer,
		"factor", r.Factor,
		"surface", []int{r.Width, r.Height},
		"offset", []float64{r.OffsetX, r.OffsetY},
	)
	if r.Empty() {
		slog.Warn("window too small to show the game area")
	}
}
