package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/input"
)

// Keyboard reads held keys from the raylib window.
type Keyboard struct {
	codes map[components.Action][]int32
}

// NewKeyboard resolves a keymap to raylib key codes.
func NewKeyboard(km input.Keymap) *Keyboard {
	k := &Keyboard{codes: make(map[components.Action][]int32, len(km))}
	for a, keys := range km {
		for _, name := range keys {
			if code, ok := raylibKey(name); ok {
				k.codes[a] = append(k.codes[a], code)
			}
		}
	}
	return k
}

// Pressed implements input.Source.
func (k *Keyboard) Pressed(a components.Action) bool {
	for _, code := range k.codes[a] {
		if rl.IsKeyDown(code) {
			return true
		}
	}
	return false
}

func raylibKey(name string) (int32, bool) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return rl.KeyA + int32(c-'A'), true
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), true
		}
		return 0, false
	}
	switch name {
	case "UP":
		return rl.KeyUp, true
	case "DOWN":
		return rl.KeyDown, true
	case "LEFT":
		return rl.KeyLeft, true
	case "RIGHT":
		return rl.KeyRight, true
	case "SPACE":
		return rl.KeySpace, true
	case "ENTER":
		return rl.KeyEnter, true
	case "SHIFT":
		return rl.KeyLeftShift, true
	case "CTRL":
		return rl.KeyLeftControl, true
	}
	return 0, false
}
