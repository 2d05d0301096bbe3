package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// keyName maps a tcell key event to the keymap's key names.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "UP", true
	case tcell.KeyDown:
		return "DOWN", true
	case tcell.KeyLeft:
		return "LEFT", true
	case tcell.KeyRight:
		return "RIGHT", true
	case tcell.KeyEnter:
		return "ENTER", true
	case tcell.KeyRune:
		r := unicode.ToUpper(ev.Rune())
		switch {
		case r == ' ':
			return "SPACE", true
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			return string(r), true
		}
	}
	return "", false
}

// isQuit reports the keys that end the session.
func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'q'
}
