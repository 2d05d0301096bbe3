package game

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/pixelstep/asset"
	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/config"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/renderer"
	"github.com/pthm-cable/pixelstep/telemetry"
	"github.com/pthm-cable/pixelstep/viewport"
)

// HeadlessOptions configures a run without a window.
type HeadlessOptions struct {
	Frames     int
	Refresh    float64 // simulated display rate in Hz
	Hold       components.InputFlags
	Screenshot string // PNG path for the final frame, empty = none
}

// Summary describes a finished headless run.
type Summary struct {
	Frames  int
	Ticks   uint64
	SimTime time.Duration
	Pose    components.Pose
	Entity  components.Entity
	Clock   clock.Stats
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Uint64("ticks", s.Ticks),
		slog.Duration("sim_time", s.SimTime),
		slog.Float64("x", s.Pose.X),
		slog.Float64("y", s.Pose.Y),
		slog.Float64("rotation", s.Pose.Rotation),
		slog.Uint64("stalls", s.Clock.Stalls),
		slog.Uint64("regressions", s.Clock.Regressions),
	)
}

// Headless runs the simulation against a simulated display and a software
// canvas.
type Headless struct {
	cfg     *config.Config
	opts    HeadlessOptions
	params  components.Params
	sprite  *asset.Sprite
	session *Session
	scaler  *viewport.Scaler
	canvas  *renderer.Canvas
	display *Simulated
	rec     *Recorder
}

// NewHeadless prepares a headless run.
func NewHeadless(cfg *config.Config, opts Options, hopts HeadlessOptions) (*Headless, error) {
	sprite, err := LoadSprite(cfg.Game.Sprite)
	if err != nil {
		return nil, err
	}

	h := &Headless{
		cfg:     cfg,
		opts:    hopts,
		params:  cfg.Params,
		sprite:  sprite,
		display: NewSimulated(hopts.Refresh, hopts.Frames),
	}
	h.session, err = NewSessionFromConfig(cfg, sprite, &h.params, input.Static(hopts.Hold))
	if err != nil {
		return nil, err
	}
	h.scaler = NewScalerFromConfig(cfg, cfg.Window.Width, cfg.Window.Height)
	r := h.scaler.Result()
	h.canvas = renderer.NewCanvas(r.Width, r.Height)
	h.canvas.Background = cfg.Derived.Background

	h.rec, err = NewRecorderFromConfig(cfg, opts, h.session)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Session returns the simulated session.
func (h *Headless) Session() *Session { return h.session }

// Canvas returns the software surface.
func (h *Headless) Canvas() *renderer.Canvas { return h.canvas }

// Scaler returns the window scaler.
func (h *Headless) Scaler() *viewport.Scaler { return h.scaler }

// Run drives every frame, then writes the screenshot if one was requested.
func (h *Headless) Run(ctx context.Context) (Summary, error) {
	slog.Info("starting headless simulation",
		"model", h.session.Kind().String(),
		"scaling", h.scaler.Strategy().Mode.String(),
		"frames", h.opts.Frames,
		"refresh", h.opts.Refresh,
		"hold", h.opts.Hold.String(),
	)

	loop := Loop{Pacer: h.display, Source: h.display}
	if err := loop.Run(ctx, h.Frame); err != nil {
		return Summary{}, err
	}

	if h.opts.Screenshot != "" {
		if err := h.Screenshot(h.opts.Screenshot); err != nil {
			return Summary{}, err
		}
	}

	e := h.session.Entity()
	cs := h.session.Clock().Stats()
	return Summary{
		Frames:  h.display.Frames(),
		Ticks:   h.session.Tick(),
		SimTime: time.Duration(h.session.Tick()) * h.session.Clock().Step(),
		Pose:    h.session.Last().Pose,
		Entity:  e,
		Clock:   cs,
	}, nil
}

// Frame runs one display frame.
func (h *Headless) Frame(now time.Duration) bool {
	perf := h.rec.Perf()
	perf.StartFrame()

	perf.StartPhase(telemetry.PhaseSimulate)
	info := h.session.Frame(now)

	perf.StartPhase(telemetry.PhaseDraw)
	RenderSoftware(h.canvas, h.sprite, h.scaler.Result(), info.Pose)

	perf.EndFrame()
	h.rec.Frame(now, info, h.session)
	return true
}

// Compose returns the full window image: the canvas presented at the
// scaler's offset and display size.
func (h *Headless) Compose() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, h.scaler.WindowW, h.scaler.WindowH))
	renderer.Present(dst, h.canvas.Image(), h.scaler.Result(), h.cfg.Derived.Letterbox)
	return dst
}

// Screenshot writes the composed window as a PNG.
func (h *Headless) Screenshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	if err := writePNG(f, h.Compose()); err != nil {
		return err
	}
	slog.Info("screenshot written", "path", path)
	return nil
}

// writePNG encodes img to w and closes it. A failed close is reported
// since it can mean the file was not fully written.
func writePNG(w io.WriteCloser, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing screenshot: %w", err)
	}
	return nil
}

// Close flushes telemetry.
func (h *Headless) Close() error {
	return h.rec.Close()
}

// RenderSoftware sizes the canvas for r and draws the frame onto it.
func RenderSoftware(c *renderer.Canvas, sprite renderer.Bitmap, r viewport.Result, pose components.Pose) {
	c.Resize(r.Width, r.Height)
	c.SetSmoothing(false)
	renderer.DrawSprite(c, sprite, pose, r)
}
