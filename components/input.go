package components

import (
	"fmt"
	"strings"
)

// Action is a logical input action.
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionRotateLeft
	ActionRotateRight
	ActionThrust
	ActionBrake

	NumActions
)

var actionNames = [NumActions]string{
	ActionUp:          "up",
	ActionDown:        "down",
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionRotateLeft:  "rotateLeft",
	ActionRotateRight: "rotateRight",
	ActionThrust:      "thrust",
	ActionBrake:       "brake",
}

// String returns the action's config name.
func (a Action) String() string {
	if a < NumActions {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction looks up an action by its config name (case-insensitive).
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, NumActions)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// InputFlags is the held/not-held state of every action for one tick.
type InputFlags uint16

// Held reports whether the action is held.
func (f InputFlags) Held(a Action) bool {
	return f&(1<<a) != 0
}

// With returns a copy with the action set to held.
func (f InputFlags) With(a Action) InputFlags {
	return f | 1<<a
}

// Set sets or clears an action in place.
func (f *InputFlags) Set(a Action, held bool) {
	if held {
		*f |= 1 << a
	} else {
		*f &^= 1 << a
	}
}

// String lists held actions separated by '+', or "-" when none are held.
func (f InputFlags) String() string {
	var held []string
	for _, a := range Actions() {
		if f.Held(a) {
			held = append(held, a.String())
		}
	}
	if len(held) == 0 {
		return "-"
	}
	return strings.Join(held, "+")
}

// Flags builds InputFlags from a list of held actions.
func Flags(actions ...Action) InputFlags {
	var f InputFlags
	for _, a := range actions {
		f = f.With(a)
	}
	return f
}
