// Package input samples held actions from a keyboard-like source and packs
// them into the flag set consumed by the movement models.
package input

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/pixelstep/components"
)

// Source answers whether an action is held right now.
type Source interface {
	Pressed(a components.Action) bool
}

// Poll samples every action once.
func Poll(s Source) components.InputFlags {
	var f components.InputFlags
	if s == nil {
		return f
	}
	for _, a := range components.Actions() {
		f.Set(a, s.Pressed(a))
	}
	return f
}

// Static is a fixed set of held actions.
type Static components.InputFlags

// Pressed implements Source.
func (s Static) Pressed(a components.Action) bool {
	return components.InputFlags(s).Held(a)
}

// Func adapts a function to Source.
type Func func(a components.Action) bool

// Pressed implements Source.
func (f Func) Pressed(a components.Action) bool {
	return f(a)
}

// ParseActions parses a comma-separated list of action names, e.g.
// "thrust,rotateRight". An empty string holds nothing.
func ParseActions(s string) (components.InputFlags, error) {
	var f components.InputFlags
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		a, err := components.ParseAction(name)
		if err != nil {
			return 0, fmt.Errorf("parsing held actions: %w", err)
		}
		f = f.With(a)
	}
	return f, nil
}
