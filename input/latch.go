package input

import (
	"time"

	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
)

// DefaultHold is how long a terminal key press counts as held.
const DefaultHold = 400 * time.Millisecond

// Latch turns discrete key presses into held state. Terminals report key
// presses and auto-repeats but never releases, so an action stays held for
// the hold window after its most recent press.
//
// Latch is not safe for concurrent use; feed it from the loop goroutine.
type Latch struct {
	keys  Keymap
	hold  time.Duration
	src   clock.Source
	until map[components.Action]time.Duration
}

// NewLatch creates a latch timed by src.
func NewLatch(km Keymap, hold time.Duration, src clock.Source) *Latch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Latch{
		keys:  km,
		hold:  hold,
		src:   src,
		until: make(map[components.Action]time.Duration),
	}
}

// Press records a press of the named key.
func (l *Latch) Press(key string) {
	deadline := l.src.Now() + l.hold
	for _, a := range l.keys.Actions(key) {
		l.until[a] = deadline
	}
}

// Release drops every latched action.
func (l *Latch) Release() {
	clear(l.until)
}

// Pressed implements Source.
func (l *Latch) Pressed(a components.Action) bool {
	deadline, ok := l.until[a]
	return ok && l.src.Now() < deadline
}
