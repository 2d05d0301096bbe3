package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/viewport"
)

// slider describes one tunable on the settings panel.
type slider struct {
	label    string
	min, max float32
	value    func(p *components.Params) *float64
}

var sliders = []slider{
	{"Speed", components.SpeedMin, components.SpeedMax, func(p *components.Params) *float64 { return &p.Speed }},
	{"Rot speed", components.RotationSpeedMin, components.RotationSpeedMax, func(p *components.Params) *float64 { return &p.RotationSpeed }},
	{"Friction", components.FrictionMin, components.FrictionMax, func(p *components.Params) *float64 { return &p.Friction }},
}

// SettingsChange reports what the user changed on the panel this frame.
type SettingsChange struct {
	Params   bool
	Strategy bool
}

// SettingsPanel edits the shared parameter record and the scaling strategy.
// Parameter writes land between frames, so the simulation sees each change
// at the next tick.
type SettingsPanel struct {
	renderer *Renderer
	params   *components.Params
	x, y     int32
	width    int32
	visible  bool
}

// NewSettingsPanel creates a panel editing params.
func NewSettingsPanel(params *components.Params, x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		params:   params,
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (s *SettingsPanel) Toggle() bool {
	s.visible = !s.visible
	return s.visible
}

// SetPosition moves the panel, e.g. to keep it docked after a resize.
func (s *SettingsPanel) SetPosition(x, y int32) {
	s.x, s.y = x, y
}

// Height is the panel's pixel height.
func (s *SettingsPanel) Height() int32 {
	t := s.renderer.Theme
	rows := int32(len(sliders))*2 + 4 // slider rows, toggle, strategy header and buttons
	return rows*(t.LineHeight+8) + t.Padding*2
}

// Draw renders the panel and applies edits. scaler may be nil to hide the
// strategy controls.
func (s *SettingsPanel) Draw(scaler *viewport.Scaler) SettingsChange {
	var change SettingsChange
	if !s.visible {
		return change
	}

	t := s.renderer.Theme
	s.renderer.DrawPanel(s.x, s.y, s.width, s.Height())

	x := float32(s.x + t.Padding)
	y := s.y + t.Padding
	inner := float32(s.width - t.Padding*2)

	y = s.renderer.DrawSectionHeader(int32(x), y, "Settings")

	for _, sl := range sliders {
		v := sl.value(s.params)
		rl.DrawText(fmt.Sprintf("%s: %.2f", sl.label, *v), int32(x), y, t.FontSize, t.LabelColor)
		y += t.LineHeight
		got := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 16},
			"", "",
			float32(*v), sl.min, sl.max,
		)
		if got != float32(*v) {
			*v = float64(got)
			change.Params = true
		}
		y += t.LineHeight + 8
	}

	label := "Interpolation: off"
	if s.params.Interpolation {
		label = "Interpolation: on"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 20}, label) {
		s.params.Interpolation = !s.params.Interpolation
		change.Params = true
	}
	y += 28

	if scaler == nil {
		return change
	}

	y = s.renderer.DrawSectionHeader(int32(x), y, "Scaling")
	modes := viewport.Modes()
	bw := (inner - float32(len(modes)-1)*4) / float32(len(modes))
	current := scaler.Strategy()
	for i, m := range modes {
		text := m.String()
		if m == current.Mode {
			text = "[" + text + "]"
		}
		r := rl.Rectangle{X: x + float32(i)*(bw+4), Y: float32(y), Width: bw, Height: 20}
		if gui.Button(r, text) && m != current.Mode {
			scaler.SetMode(m)
			change.Strategy = true
		}
	}
	y += 28

	intLabel := "Integer scaling: off"
	if current.Integer {
		intLabel = "Integer scaling: on"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 20}, intLabel) {
		st := scaler.Strategy()
		st.Integer = !st.Integer
		scaler.SetStrategy(st)
		change.Strategy = true
	}

	return change
}
