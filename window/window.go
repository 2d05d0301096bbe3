package window

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/config"
	"github.com/pthm-cable/pixelstep/game"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/telemetry"
	"github.com/pthm-cable/pixelstep/ui"
	"github.com/pthm-cable/pixelstep/viewport"
)

// Panel width in window pixels
const settingsWidth = 260

// Game is the windowed frontend: raylib input, an off-screen render target
// sized by the scaling strategy, and the UI overlays.
type Game struct {
	cfg  *config.Config
	opts game.Options

	params   components.Params
	keyboard *Keyboard
	session  *game.Session
	scaler   *viewport.Scaler
	target   *Target
	texture  *Texture
	rec      *game.Recorder

	hud      *ui.HUD
	settings *ui.SettingsPanel

	frames int
	info   game.FrameInfo
	in     components.InputFlags
}

// NewGame creates the windowed game. The raylib window must already be open.
func NewGame(cfg *config.Config, opts game.Options) (*Game, error) {
	sprite, err := game.LoadSprite(cfg.Game.Sprite)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		opts:     opts,
		params:   cfg.Params,
		keyboard: NewKeyboard(cfg.Derived.Keymap),
		hud:      ui.NewHUD(),
	}

	g.session, err = game.NewSessionFromConfig(cfg, sprite, &g.params, g.keyboard)
	if err != nil {
		return nil, err
	}

	g.scaler = game.NewScalerFromConfig(cfg, rl.GetScreenWidth(), rl.GetScreenHeight())
	r := g.scaler.Result()
	g.target = NewTarget(r.Width, r.Height)
	g.target.Background = toColor(cfg.Derived.Background)
	g.target.SetSmoothing(false)
	g.texture = NewTexture(sprite.Image)

	g.settings = ui.NewSettingsPanel(&g.params, int32(rl.GetScreenWidth())-settingsWidth-10, 10, settingsWidth)

	g.rec, err = game.NewRecorderFromConfig(cfg, opts, g.session)
	if err != nil {
		g.Unload()
		return nil, err
	}

	slog.Info("window started",
		"model", g.session.Kind().String(),
		"window", []int{g.scaler.WindowW, g.scaler.WindowH},
		"game", []int{cfg.Game.Width, cfg.Game.Height},
		"scaling", r.Strategy.Mode.String(),
		"factor", r.Factor,
	)
	return g, nil
}

// Frame runs one display frame: input, simulation, drawing. Returns false
// when the window should close or the frame limit is reached.
func (g *Game) Frame(now time.Duration) bool {
	if rl.WindowShouldClose() {
		return false
	}

	perf := g.rec.Perf()
	perf.StartFrame()

	perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	perf.StartPhase(telemetry.PhaseSimulate)
	g.info = g.session.Frame(now)
	g.in = input.Poll(g.keyboard)

	g.Draw(perf)
	perf.EndFrame()

	g.rec.Frame(now, g.info, g.session)

	g.frames++
	return g.opts.MaxFrames <= 0 || g.frames < g.opts.MaxFrames
}

// Tick returns the number of simulation ticks run.
func (g *Game) Tick() uint64 {
	return g.session.Tick()
}

// Unload releases GPU resources and flushes telemetry.
func (g *Game) Unload() {
	if g.texture != nil {
		g.texture.Unload()
	}
	if g.target != nil {
		g.target.Unload()
	}
	if err := g.rec.Close(); err != nil {
		slog.Error("failed to close telemetry", "error", err)
	}
}

// Run opens the window, drives frames until it closes or ctx is cancelled,
// then tears everything down.
func Run(ctx context.Context, cfg *config.Config, opts game.Options) error {
	flags := uint32(rl.FlagVsyncHint)
	if cfg.Window.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()

	if cfg.Window.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	}

	g, err := NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	loop := game.Loop{Pacer: game.VSync{}, Source: clock.NewMonotonic()}
	err = loop.Run(ctx, g.Frame)
	slog.Info("window closed", "frames", g.frames, "ticks", g.Tick())
	return err
}
