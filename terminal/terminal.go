// Package terminal presents the simulation in a terminal. Each character
// cell shows two vertically stacked pixels with an upper half block, so a
// cols x rows terminal acts as a cols x 2*(rows-1) pixel window with a
// status line underneath.
package terminal

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pixelstep/asset"
	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/config"
	"github.com/pthm-cable/pixelstep/game"
	"github.com/pthm-cable/pixelstep/input"
	"github.com/pthm-cable/pixelstep/renderer"
	"github.com/pthm-cable/pixelstep/telemetry"
	"github.com/pthm-cable/pixelstep/viewport"
)

const upperHalf = '▀'

// Terminal is the tcell frontend.
type Terminal struct {
	cfg    *config.Config
	screen tcell.Screen
	source clock.Source
	latch  *input.Latch
	params components.Params

	sprite  *asset.Sprite
	session *game.Session
	scaler  *viewport.Scaler
	canvas  *renderer.Canvas
	frame   *image.RGBA
	rec     *game.Recorder

	info    game.FrameInfo
	events  chan tcell.Event
	polling chan struct{} // closed when the event goroutine exits
	frames  int
	max     int
}

// New opens the terminal screen and builds the session.
func New(cfg *config.Config, opts game.Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	t, err := NewWithScreen(cfg, opts, screen, clock.NewMonotonic())
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

// NewWithScreen builds a terminal frontend over an initialized screen,
// timed by src.
func NewWithScreen(cfg *config.Config, opts game.Options, screen tcell.Screen, src clock.Source) (*Terminal, error) {
	sprite, err := game.LoadSprite(cfg.Game.Sprite)
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		cfg:    cfg,
		screen: screen,
		source: src,
		latch:  input.NewLatch(cfg.Derived.Keymap, cfg.Terminal.Hold, src),
		params: cfg.Params,
		sprite: sprite,
		events: make(chan tcell.Event, 100),
		max:    opts.MaxFrames,
	}

	t.session, err = game.NewSessionFromConfig(cfg, sprite, &t.params, t.latch)
	if err != nil {
		return nil, err
	}

	cols, rows := screen.Size()
	w, h := pixelSize(cols, rows)
	t.scaler = game.NewScalerFromConfig(cfg, w, h)
	r := t.scaler.Result()
	t.canvas = renderer.NewCanvas(r.Width, r.Height)
	t.canvas.Background = cfg.Derived.Background
	t.frame = image.NewRGBA(image.Rect(0, 0, w, h))

	t.rec, err = game.NewRecorderFromConfig(cfg, opts, t.session)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// pixelSize converts a terminal size in cells to window pixels.
func pixelSize(cols, rows int) (int, int) {
	h := (rows - 1) * 2
	if h < 0 {
		h = 0
	}
	return cols, h
}

// Run polls terminal events on a helper goroutine and drives frames on the
// calling goroutine until quit or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	t.polling = make(chan struct{})
	go t.poll(done, t.polling)

	pacer := game.NewTicker(t.cfg.Terminal.FPS)
	defer pacer.Stop()

	slog.Info("terminal started",
		"model", t.session.Kind().String(),
		"window", []int{t.scaler.WindowW, t.scaler.WindowH},
		"scaling", t.scaler.Strategy().Mode.String(),
	)

	loop := game.Loop{Pacer: pacer, Source: t.source}
	return loop.Run(ctx, t.Frame)
}

// poll forwards screen events until the screen is finalized or done is
// closed, then closes exited.
func (t *Terminal) poll(done <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case <-done:
			return
		default:
		}
		select {
		case t.events <- ev:
		case <-done:
			return
		}
	}
}

// Frame applies pending events, then simulates and draws one frame.
// Returns false on quit.
func (t *Terminal) Frame(now time.Duration) bool {
	perf := t.rec.Perf()
	perf.StartFrame()

	perf.StartPhase(telemetry.PhaseInput)
drain:
	for {
		select {
		case ev := <-t.events:
			if !t.HandleEvent(ev) {
				perf.EndFrame()
				return false
			}
		default:
			break drain
		}
	}

	perf.StartPhase(telemetry.PhaseSimulate)
	t.info = t.session.Frame(now)

	perf.StartPhase(telemetry.PhaseDraw)
	game.RenderSoftware(t.canvas, t.sprite, t.scaler.Result(), t.info.Pose)

	perf.StartPhase(telemetry.PhasePresent)
	t.Draw()
	perf.EndFrame()

	t.rec.Frame(now, t.info, t.session)

	t.frames++
	return t.max <= 0 || t.frames < t.max
}

// HandleEvent applies one terminal event. Returns false on quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case ' ':
				paused := t.session.TogglePause()
				slog.Debug("pause", "paused", paused)
				return true
			case '1', '2', '3', '4':
				t.scaler.SetMode(viewport.Modes()[ev.Rune()-'1'])
				t.logScaling("hotkey")
				return true
			}
		}
		if name, ok := keyName(ev); ok {
			t.latch.Press(name)
		}

	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		w, h := pixelSize(cols, rows)
		if t.scaler.Resize(w, h) {
			t.frame = image.NewRGBA(image.Rect(0, 0, w, h))
			t.logScaling("resize")
		}
	}
	return true
}

func (t *Terminal) logScaling(reason string) {
	r := t.scaler.Result()
	slog.Debug("scaling changed",
		"reason", reason,
		"window", []int{t.scaler.WindowW, t.scaler.WindowH},
		"mode", r.Strategy.Mode.String(),
		"factor", r.Factor,
	)
}

// Draw composes the canvas into the window image and writes it to the
// screen as half-block cells, followed by the status line.
func (t *Terminal) Draw() {
	renderer.Present(t.frame, t.canvas.Image(), t.scaler.Result(), t.cfg.Derived.Letterbox)

	b := t.frame.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			top := t.frame.RGBAAt(x, y)
			bottom := t.frame.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y/2, upperHalf, nil, style)
		}
	}

	_, rows := t.screen.Size()
	t.drawStatus(rows - 1)
	t.screen.Show()
}

func (t *Terminal) drawStatus(row int) {
	if row < 0 {
		return
	}
	r := t.scaler.Result()
	status := fmt.Sprintf(" %s | %s x%.2f | tick %d | %s",
		t.session.Kind(), r.Strategy.Mode, r.Factor, t.session.Tick(), input.Poll(t.latch))
	if t.session.Paused() {
		status += " | PAUSED"
	}
	status += " | space pause, 1-4 scaling, esc quit"

	cols, _ := t.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	i := 0
	for _, ch := range status {
		if i >= cols {
			break
		}
		t.screen.SetContent(i, row, ch, nil, style)
		i++
	}
	for ; i < cols; i++ {
		t.screen.SetContent(i, row, ' ', nil, style)
	}
}

// Session returns the simulated session.
func (t *Terminal) Session() *game.Session { return t.session }

// Close restores the terminal and flushes telemetry.
func (t *Terminal) Close() error {
	t.screen.Fini()
	return t.rec.Close()
}
