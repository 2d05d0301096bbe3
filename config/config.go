// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/systems"
	"github.com/pthm-cable/pixelstep/viewport"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Window    WindowConfig                   `yaml:"window"`
	Game      GameConfig                     `yaml:"game"`
	Clock     ClockConfig                    `yaml:"clock"`
	Movement  MovementConfig                 `yaml:"movement"`
	Bounce    BounceConfig                   `yaml:"bounce"`
	Params    components.Params              `yaml:"params"`
	Scaling   ScalingConfig                  `yaml:"scaling"`
	Keys      map[string]map[string][]string `yaml:"keys"`      // model -> action -> keys
	Terminal  TerminalConfig                 `yaml:"terminal"`
	Headless  HeadlessConfig                 `yaml:"headless"`
	Telemetry TelemetryConfig                `yaml:"telemetry"`
	Log       LogConfig                      `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"`
	Letterbox  string `yaml:"letterbox"`
}

// GameConfig holds the logical game area and sprite source.
type GameConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Sprite string `yaml:"sprite"`
}

// ClockConfig holds fixed-timestep parameters.
type ClockConfig struct {
	TickRate int           `yaml:"tick_rate"`
	MaxFrame time.Duration `yaml:"max_frame"`
}

// MovementConfig selects the movement model.
type MovementConfig struct {
	Model string `yaml:"model"`
}

// BounceConfig holds the bounce model's spawn state.
type BounceConfig struct {
	Anchor    [2]float64 `yaml:"anchor"`
	Velocity  [2]float64 `yaml:"velocity"`
	Direction [2]float64 `yaml:"direction"`
}

// ScalingConfig holds the resolution scaling strategy.
type ScalingConfig struct {
	Mode        string  `yaml:"mode"`
	Integer     bool    `yaml:"integer"`
	FixedFactor float64 `yaml:"fixed_factor"`
}

// TerminalConfig holds terminal backend settings.
type TerminalConfig struct {
	Hold time.Duration `yaml:"hold"`
	FPS  int           `yaml:"fps"`
}

// HeadlessConfig holds headless run settings.
type HeadlessConfig struct {
	Frames  int     `yaml:"frames"`
	Refresh float64 `yaml:"refresh"`
	Hold    string  `yaml:"hold"`
}

// TelemetryConfig holds telemetry output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"`
	Window    int    `yaml:"window"`
	Trace     bool   `yaml:"trace"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DerivedConfig holds values parsed and validated from the loaded config.
type DerivedConfig struct {
	Kind       systems.Kind
	Strategy   viewport.Strategy
	Area       components.Area
	Keymap     input.Keymap
	Hold       components.InputFlags
	Spawn      systems.SpawnConfig
	Background color.RGBA
	Letterbox  color.RGBA
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve validates names and recomputes derived values. Call it again after
// changing fields by hand.
func (c *Config) Resolve() error {
	kind, err := systems.ParseKind(c.Movement.Model)
	if err != nil {
		return fmt.Errorf("movement.model: %w", err)
	}
	mode, err := viewport.ParseMode(c.Scaling.Mode)
	if err != nil {
		return fmt.Errorf("scaling.mode: %w", err)
	}
	km, err := c.keymap(kind)
	if err != nil {
		return err
	}
	hold, err := input.ParseActions(c.Headless.Hold)
	if err != nil {
		return fmt.Errorf("headless.hold: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	bg, err := ParseColor(c.Window.Background)
	if err != nil {
		return fmt.Errorf("window.background: %w", err)
	}
	lb, err := ParseColor(c.Window.Letterbox)
	if err != nil {
		return fmt.Errorf("window.letterbox: %w", err)
	}

	// Only the bounce model uses the configured anchor; the others start centred
	anchor := components.Vec2{X: 0.5, Y: 0.5}
	if kind == systems.KindBounce {
		anchor = components.Vec2{X: c.Bounce.Anchor[0], Y: c.Bounce.Anchor[1]}
	}

	c.Derived = DerivedConfig{
		Kind: kind,
		Strategy: viewport.Strategy{
			Mode:        mode,
			Integer:     c.Scaling.Integer,
			FixedFactor: c.Scaling.FixedFactor,
		},
		Area:   components.Area{Width: float64(c.Game.Width), Height: float64(c.Game.Height)},
		Keymap: km,
		Hold:   hold,
		Spawn: systems.SpawnConfig{
			Anchor:    anchor,
			Velocity:  components.Vec2{X: c.Bounce.Velocity[0], Y: c.Bounce.Velocity[1]},
			Direction: components.Vec2{X: c.Bounce.Direction[0], Y: c.Bounce.Direction[1]},
		},
		Background: bg,
		Letterbox:  lb,
	}
	return nil
}

// keymap validates every model's key section and returns the bindings for
// kind, falling back to the built-in bindings when the model has none.
func (c *Config) keymap(kind systems.Kind) (input.Keymap, error) {
	var active input.Keymap
	for model, raw := range c.Keys {
		k, err := systems.ParseKind(model)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		km, err := input.ParseKeymap(raw)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", model, err)
		}
		if k == kind {
			active = km
		}
	}
	if active == nil {
		active = input.DefaultKeymap(kind)
	}
	return active, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
