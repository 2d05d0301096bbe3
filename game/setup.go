package game

import (
	"fmt"

	"github.com/pthm-cable/pixelstep/asset"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/config"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/telemetry"
	"github.com/pthm-cable/pixelstep/viewport"
)

// Options holds runtime options set from the command line.
type Options struct {
	LogStats  bool
	OutputDir string
	Trace     bool
	MaxFrames int // stop after N frames (0 = unlimited)
}

// LoadSprite loads the configured sprite, or the built-in ship when path
// is empty.
func LoadSprite(path string) (*asset.Sprite, error) {
	if path == "" {
		return asset.Ship(), nil
	}
	return asset.Load(path)
}

// NewSessionFromConfig builds a session for a sprite from the loaded config.
func NewSessionFromConfig(cfg *config.Config, sprite *asset.Sprite, params *components.Params, src input.Source) (*Session, error) {
	return NewSession(SessionConfig{
		Kind:     cfg.Derived.Kind,
		TickRate: cfg.Clock.TickRate,
		MaxFrame: cfg.Clock.MaxFrame,
		Area:     cfg.Derived.Area,
		Size:     components.Vec2{X: float64(sprite.Width()), Y: float64(sprite.Height())},
		Spawn:    cfg.Derived.Spawn,
	}, params, src)
}

// NewScalerFromConfig builds a scaler for a window of the given size.
func NewScalerFromConfig(cfg *config.Config, windowW, windowH int) *viewport.Scaler {
	return viewport.New(windowW, windowH, cfg.Game.Width, cfg.Game.Height, cfg.Derived.Strategy)
}

// NewRecorderFromConfig opens telemetry output per config and options.
// OutputDir and Trace in opts override the config when set.
func NewRecorderFromConfig(cfg *config.Config, opts Options, s *Session) (*Recorder, error) {
	dir := cfg.Telemetry.OutputDir
	if opts.OutputDir != "" {
		dir = opts.OutputDir
	}
	trace := cfg.Telemetry.Trace || opts.Trace

	output, err := telemetry.NewOutputManager(dir, trace)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	var collector *telemetry.Collector
	var perf *telemetry.PerfCollector
	if opts.LogStats || output != nil {
		collector = telemetry.NewCollector(cfg.Telemetry.Window, s.Clock().Step())
		perf = telemetry.NewPerfCollector(cfg.Telemetry.Window)
	}

	rec := NewRecorder(collector, perf, output, opts.LogStats)
	rec.Attach(s)
	return rec, nil
}
