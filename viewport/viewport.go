// Package viewport maps the fixed logical game area onto an arbitrary window
// size without blurring pixel art.
package viewport

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects where scaling is applied and how the factor is chosen.
type Mode uint8

const (
	// ModeNative keeps the surface at the game's logical resolution and
	// stretches the finished raster to fit the window.
	ModeNative Mode = iota
	// ModeBuffer resizes the surface to game*factor; draw calls run in
	// scaled pixel coordinates.
	ModeBuffer
	// ModeFixed is ModeBuffer with a constant factor, ignoring the window.
	ModeFixed
	// ModeNativeFixed is ModeNative with a constant factor.
	ModeNativeFixed
)

var modeNames = [...]string{
	ModeNative:      "native",
	ModeBuffer:      "buffer",
	ModeFixed:       "fixed",
	ModeNativeFixed: "native-fixed",
}

// String returns the config name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode parses a scaling mode name from config.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(name, s) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scaling mode %q (want %s)", s, strings.Join(modeNames[:], ", "))
}

// Modes returns every scaling mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeNative, ModeBuffer, ModeFixed, ModeNativeFixed}
}

// Fixed reports whether the mode ignores the window size.
func (m Mode) Fixed() bool {
	return m == ModeFixed || m == ModeNativeFixed
}

// ScalesBuffer reports whether the mode scales the backing surface rather
// than the finished raster.
func (m Mode) ScalesBuffer() bool {
	return m == ModeBuffer || m == ModeFixed
}

// DefaultFixedFactor is the constant factor of the fixed modes.
const DefaultFixedFactor = 4

// Strategy is the complete scaling configuration.
type Strategy struct {
	Mode Mode
	// Integer floors the fit factor to a whole number for pixel-perfect
	// output. Ignored by the fixed modes.
	Integer bool
	// FixedFactor is the factor used by the fixed modes.
	FixedFactor float64
}

// Result describes the rendering surface and its placement in the window.
type Result struct {
	Strategy Strategy

	// Factor is display pixels per logical unit.
	Factor float64

	// Width and Height are the rendering surface's true pixel dimensions.
	Width, Height int

	// DrawScale is applied to draw calls on the surface; DisplayScale
	// stretches the finished surface on presentation. Their product is Factor.
	DrawScale    float64
	DisplayScale float64

	// OffsetX and OffsetY centre the displayed surface in the window.
	OffsetX, OffsetY float64
}

// Empty reports a degenerate result: nothing can be drawn or shown.
func (r Result) Empty() bool {
	return r.Width <= 0 || r.Height <= 0 || r.Factor <= 0
}

// DisplayWidth is the on-screen width of the surface in window pixels.
func (r Result) DisplayWidth() float64 {
	return float64(r.Width) * r.DisplayScale
}

// DisplayHeight is the on-screen height of the surface in window pixels.
func (r Result) DisplayHeight() float64 {
	return float64(r.Height) * r.DisplayScale
}

// FitFactor is the largest factor at which the game area fits the window
// with its aspect ratio preserved. With integer set the factor is floored,
// unless that would hide the game entirely, in which case the exact
// fractional factor is kept. Non-positive sizes give 0.
func FitFactor(windowW, windowH, gameW, gameH int, integer bool) float64 {
	if windowW <= 0 || windowH <= 0 || gameW <= 0 || gameH <= 0 {
		return 0
	}
	f := math.Min(float64(windowW)/float64(gameW), float64(windowH)/float64(gameH))
	if integer && f >= 1 {
		f = math.Floor(f)
	}
	return f
}

// Compute derives the scaling result for a window size. Invalid geometry
// yields a zero-size, zero-factor result rather than an error.
func Compute(windowW, windowH, gameW, gameH int, s Strategy) Result {
	if gameW <= 0 || gameH <= 0 {
		return Result{Strategy: s}
	}

	var factor float64
	if s.Mode.Fixed() {
		factor = s.FixedFactor
		if factor <= 0 {
			factor = DefaultFixedFactor
		}
	} else {
		factor = FitFactor(windowW, windowH, gameW, gameH, s.Integer)
		if factor == 0 {
			return Result{Strategy: s}
		}
	}

	r := Result{Strategy: s, Factor: factor}
	if s.Mode.ScalesBuffer() {
		r.Width = int(float64(gameW) * factor)
		r.Height = int(float64(gameH) * factor)
		r.DrawScale = factor
		r.DisplayScale = 1
	} else {
		r.Width = gameW
		r.Height = gameH
		r.DrawScale = 1
		r.DisplayScale = factor
	}

	// Centre the displayed area
	r.OffsetX = (float64(windowW) - float64(gameW)*factor) / 2
	r.OffsetY = (float64(windowH) - float64(gameH)*factor) / 2

	return r
}
