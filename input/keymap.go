package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/systems"
)

// Keymap binds each action to one or more key names.
type Keymap map[components.Action][]string

var namedKeys = []string{"UP", "DOWN", "LEFT", "RIGHT", "SPACE", "ENTER", "SHIFT", "CTRL"}

// KnownKey reports whether name is a key the backends can resolve:
// a letter, a digit, or one of the named keys.
func KnownKey(name string) bool {
	if len(name) == 1 {
		c := name[0]
		return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}
	for _, k := range namedKeys {
		if k == name {
			return true
		}
	}
	return false
}

// ParseKeymap validates a raw action -> keys table as read from config.
// Key names are case-insensitive.
func ParseKeymap(raw map[string][]string) (Keymap, error) {
	km := make(Keymap, len(raw))
	for name, keys := range raw {
		a, err := components.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
		for _, k := range keys {
			k = strings.ToUpper(strings.TrimSpace(k))
			if !KnownKey(k) {
				return nil, fmt.Errorf("keymap: unknown key %q for action %s", k, name)
			}
			km[a] = append(km[a], k)
		}
	}
	return km, nil
}

// Actions returns the actions bound to key, in action order.
func (km Keymap) Actions(key string) []components.Action {
	var out []components.Action
	for a, keys := range km {
		for _, k := range keys {
			if k == key {
				out = append(out, a)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultKeymap returns the bindings for a movement model. Shmup moves on
// WASD, ship thrusts on W and brakes on S, and both rotate on the arrow
// keys so rotation never rides along with movement. Bounce takes no input.
func DefaultKeymap(kind systems.Kind) Keymap {
	switch kind {
	case systems.KindShmup:
		return Keymap{
			components.ActionUp:          {"W"},
			components.ActionDown:        {"S"},
			components.ActionLeft:        {"A"},
			components.ActionRight:       {"D"},
			components.ActionRotateLeft:  {"LEFT"},
			components.ActionRotateRight: {"RIGHT"},
		}
	case systems.KindShip:
		return Keymap{
			components.ActionThrust:      {"W"},
			components.ActionBrake:       {"S"},
			components.ActionRotateLeft:  {"LEFT"},
			components.ActionRotateRight: {"RIGHT"},
		}
	}
	return Keymap{}
}
