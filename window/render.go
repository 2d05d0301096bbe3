package window

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelstep/renderer"
	"github.com/pthm-cable/pixelstep/telemetry"
	"github.com/pthm-cable/pixelstep/ui"
)

// Draw renders the frame into the render target, then presents it and the
// overlays to the window.
func (g *Game) Draw(perf *telemetry.PerfCollector) {
	r := g.scaler.Result()

	perf.StartPhase(telemetry.PhaseDraw)
	if g.target.Begin() {
		renderer.DrawSprite(g.target, g.texture, g.info.Pose, r)
		g.target.End()
	}

	perf.StartPhase(telemetry.PhasePresent)
	rl.BeginDrawing()
	rl.ClearBackground(toColor(g.cfg.Derived.Letterbox))
	g.target.Present(r)

	g.hud.Draw(ui.HUDData{
		Title:   g.cfg.Window.Title,
		Model:   g.session.Kind().String(),
		Mode:    r.Strategy.Mode.String(),
		Factor:  r.Factor,
		Surface: [2]int{r.Width, r.Height},
		Tick:    g.session.Tick(),
		FPS:     rl.GetFPS(),
		Ticks:   g.info.Ticks,
		Alpha:   g.info.Alpha,
		Input:   g.in.String(),
		Cursor:  g.cursorLabel(),
		Paused:  g.session.Paused(),
	})

	if change := g.settings.Draw(g.scaler); change.Strategy {
		g.applyScaling("settings")
	}

	rl.EndDrawing()
}

// cursorLabel reports the mouse position in game units, or "-" when it is
// outside the game area.
func (g *Game) cursorLabel() string {
	mp := rl.GetMousePosition()
	gx, gy, ok := g.scaler.WindowToGame(float64(mp.X), float64(mp.Y))
	if !ok || gx < 0 || gy < 0 || gx >= float64(g.scaler.GameW) || gy >= float64(g.scaler.GameH) {
		return "-"
	}
	return fmt.Sprintf("(%.1f, %.1f)", gx, gy)
}

func toColor(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
