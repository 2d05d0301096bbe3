package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title   string
	Model   string
	Mode    string
	Factor  float64
	Surface [2]int
	Tick    uint64
	FPS     int32
	Ticks   int     // ticks run this frame
	Alpha   float64 // interpolation weight this frame
	Input   string
	Cursor  string  // mouse position in game units
	Paused  bool
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), visible: true}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Lines formats the HUD text, one entry per line.
func (h *HUD) Lines(data HUDData) []string {
	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	return []string{
		data.Title,
		fmt.Sprintf("Model: %s | Scaling: %s x%.2f | Surface: %dx%d",
			data.Model, data.Mode, data.Factor, data.Surface[0], data.Surface[1]),
		fmt.Sprintf("Tick: %d | FPS: %d | Ticks/frame: %d | Alpha: %.2f",
			data.Tick, data.FPS, data.Ticks, data.Alpha),
		fmt.Sprintf("Input: %s | Cursor: %s", data.Input, data.Cursor),
		status,
		"[Space] pause  [Tab] settings  [1-4] scaling  [H] hud  [F11] fullscreen",
	}
}

// Draw renders the HUD in the window's top-left corner.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}
	lines := h.Lines(data)
	y := int32(10)
	for i, line := range lines {
		size := int32(16)
		color := rl.LightGray
		switch {
		case i == 0:
			size, color = 20, rl.White
		case i == len(lines)-2:
			color = rl.Yellow
		case i == len(lines)-1:
			size, color = 12, rl.Gray
		}
		rl.DrawText(line, 10, y, size, color)
		y += size + 4
	}
}
