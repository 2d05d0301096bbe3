package systems

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/pixelstep/components"
)

// Kind selects a movement model.
type Kind uint8

const (
	KindShmup  Kind = iota // instant eight-way direction
	KindShip               // rotate and thrust with friction
	KindBounce             // constant velocity, reflects off walls
)

var kindNames = map[Kind]string{
	KindShmup:  "shmup",
	KindShip:   "ship",
	KindBounce: "bounce",
}

// String returns the config name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind parses a movement model name from config.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown movement model %q (want shmup, ship or bounce)", s)
}

// Model advances an entity's kinematic state by exactly one fixed tick.
// Step reads nothing but its arguments and mutates only e's kinematic
// fields; boundary handling is left to a BoundsPolicy run right after it.
type Model interface {
	Kind() Kind
	Step(e *components.Entity, in components.InputFlags, p components.Params, dt float64)
}

// NewModel returns the model for kind.
func NewModel(kind Kind) (Model, error) {
	switch kind {
	case KindShmup:
		return Shmup{}, nil
	case KindShip:
		return Ship{}, nil
	case KindBounce:
		return Bounce{}, nil
	}
	return nil, fmt.Errorf("no movement model for %v", kind)
}

// Tick runs one full simulation tick: the movement step followed by the
// bounds correction, in that order.
func Tick(m Model, b BoundsPolicy, e *components.Entity, in components.InputFlags, p components.Params, area components.Area, dt float64) {
	m.Step(e, in, p, dt)
	b.Apply(e, area)
}

// rotate applies the rotate-left/right flags. Heading is left unbounded.
func rotate(e *components.Entity, in components.InputFlags, p components.Params, dt float64) {
	if in.Held(components.ActionRotateLeft) {
		e.Rotation -= p.RotationSpeed * dt
	}
	if in.Held(components.ActionRotateRight) {
		e.Rotation += p.RotationSpeed * dt
	}
}
