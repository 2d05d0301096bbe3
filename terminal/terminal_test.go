package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/config"
	"github.com/pthm-cable/pixelstep/game"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/viewport"
)

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen, *clock.Manual) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	screen.SetSize(cols, rows)

	src := clock.NewManual(0)
	term, err := NewWithScreen(cfg, game.Options{}, screen, src)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	t.Cleanup(func() { term.Close() })
	return term, screen, src
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
		ok   bool
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "UP", true},
		{"lower rune", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "W", true},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "7", true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "SPACE", true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "ENTER", true},
		{"punctuation", tcell.NewEventKey(tcell.KeyRune, '!', tcell.ModNone), "", false},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyName(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsQuit(t *testing.T) {
	if !isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
	if !isQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("ctrl-c should quit")
	}
	if !isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if isQuit(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)) {
		t.Error("w should not quit")
	}
}

func TestPixelSize(t *testing.T) {
	w, h := pixelSize(80, 25)
	if w != 80 || h != 48 {
		t.Errorf("got %dx%d, want 80x48", w, h)
	}
	if _, h := pixelSize(10, 0); h != 0 {
		t.Errorf("height: got %d, want 0", h)
	}
}

func TestHandleEventPauseAndMode(t *testing.T) {
	term, _, _ := newTestTerminal(t, 80, 25)

	if !term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space should not quit")
	}
	if !term.Session().Paused() {
		t.Error("space should pause")
	}

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone))
	if got := term.scaler.Strategy().Mode; got != viewport.ModeFixed {
		t.Errorf("mode: got %v, want %v", got, viewport.ModeFixed)
	}

	if term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestHandleEventLatchesKeys(t *testing.T) {
	term, _, src := newTestTerminal(t, 80, 25)

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if got := input.Poll(term.latch); !got.Held(components.ActionThrust) {
		t.Errorf("input: got %v, want thrust held", got)
	}

	src.Advance(time.Second)
	if got := input.Poll(term.latch); got != 0 {
		t.Errorf("input after hold: got %v, want none", got)
	}
}

func TestHandleEventResize(t *testing.T) {
	term, screen, _ := newTestTerminal(t, 80, 25)

	screen.SetSize(100, 41)
	term.HandleEvent(tcell.NewEventResize(100, 41))
	if term.scaler.WindowW != 100 || term.scaler.WindowH != 80 {
		t.Errorf("window: got %dx%d, want 100x80", term.scaler.WindowW, term.scaler.WindowH)
	}
	if b := term.frame.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("frame: got %v, want 100x80", b)
	}
}

func TestFrameDrawsHalfBlocks(t *testing.T) {
	// 140x136 pixels fits the 128x128 game at factor 1, offset (6, 4)
	term, screen, _ := newTestTerminal(t, 140, 69)

	if !term.Frame(0) {
		t.Fatal("Frame returned false")
	}

	cells, w, h := screen.GetContents()
	if w != 140 || h != 69 {
		t.Fatalf("screen: got %dx%d, want 140x69", w, h)
	}
	cell := func(x, y int) tcell.SimCell { return cells[y*w+x] }

	rgb := func(c tcell.Color) [3]int32 {
		r, g, b := c.RGB()
		return [3]int32{r, g, b}
	}

	// Letterbox column
	fg, bg, _ := cell(0, 0).Style.Decompose()
	if rgb(fg) != [3]int32{0, 0, 0} || rgb(bg) != [3]int32{0, 0, 0} {
		t.Errorf("letterbox cell: got fg %v bg %v, want black", rgb(fg), rgb(bg))
	}

	// Inside the game area, away from the sprite
	c := cell(10, 10)
	if len(c.Runes) == 0 || c.Runes[0] != upperHalf {
		t.Errorf("cell rune: got %q, want %q", c.Runes, upperHalf)
	}
	fg, bg, _ = c.Style.Decompose()
	want := [3]int32{0x10, 0x10, 0x18}
	if rgb(fg) != want || rgb(bg) != want {
		t.Errorf("background cell: got fg %v bg %v, want %v", rgb(fg), rgb(bg), want)
	}

	// Status line
	status := cell(1, h-1)
	if len(status.Runes) == 0 || status.Runes[0] != 's' {
		t.Errorf("status line: got %q, want model name", status.Runes)
	}
}

func TestFrameAdvancesSession(t *testing.T) {
	term, _, src := newTestTerminal(t, 80, 25)

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	start := term.Session().Entity().Pos.Y

	for i := 0; i < 10; i++ {
		term.Frame(src.Now())
		src.Advance(time.Second / 60)
	}
	if got := term.Session().Tick(); got < 8 || got > 9 {
		t.Errorf("ticks: got %d, want 8 or 9", got)
	}
	if y := term.Session().Entity().Pos.Y; y >= start {
		t.Errorf("ship did not move up: y = %v, start %v", y, start)
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	term, screen, _ := newTestTerminal(t, 80, 25)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := term.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Run only returned after the timeout")
	}
}

func TestEventGoroutineExitsAfterRun(t *testing.T) {
	term, screen, _ := newTestTerminal(t, 80, 25)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Nobody drains the channel any more; the next event must not block
	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	select {
	case <-term.polling:
	case <-time.After(2 * time.Second):
		t.Fatal("event goroutine still running after Run returned")
	}
}
