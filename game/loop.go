package game

import (
	"context"
	"errors"
	"time"

	"github.com/pthm-cable/pixelstep/clock"
)

// ErrFramesDone is returned by a pacer that has produced all its frames.
var ErrFramesDone = errors.New("frame budget exhausted")

// Pacer blocks until the next display frame is due.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Loop drives a frame function once per display frame.
type Loop struct {
	Pacer  Pacer
	Source clock.Source
}

// Run calls frame with the source time of every frame until the context is
// cancelled, the pacer runs out of frames, or frame returns false. Those
// are all normal stops and return nil.
func (l *Loop) Run(ctx context.Context, frame func(now time.Duration) bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := l.Pacer.Wait(ctx); err != nil {
			if errors.Is(err, ErrFramesDone) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if !frame(l.Source.Now()) {
			return nil
		}
	}
}

// VSync paces nothing itself: the raylib backend blocks in EndDrawing
// until the display's vertical blank.
type VSync struct{}

// Wait implements Pacer.
func (VSync) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Ticker paces frames with a wall clock ticker.
type Ticker struct {
	t *time.Ticker
}

// NewTicker creates a pacer firing fps times per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

// Wait implements Pacer.
func (t *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

// Stop releases the ticker.
func (t *Ticker) Stop() {
	t.t.Stop()
}

// Simulated is a display that refreshes at a fixed rate without waiting.
// It is both the pacer and the clock source of a headless run: each Wait
// moves its time forward by one refresh period. The first frame is at 0.
type Simulated struct {
	period time.Duration
	frames int
	n      int
	now    time.Duration
}

// NewSimulated creates a display refreshing at hz for frames frames.
// frames <= 0 means unlimited.
func NewSimulated(hz float64, frames int) *Simulated {
	if hz <= 0 {
		hz = 60
	}
	return &Simulated{
		period: time.Duration(float64(time.Second) / hz),
		frames: frames,
	}
}

// Wait implements Pacer.
func (s *Simulated) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.frames > 0 && s.n >= s.frames {
		return ErrFramesDone
	}
	if s.n > 0 {
		s.now += s.period
	}
	s.n++
	return nil
}

// Now implements clock.Source.
func (s *Simulated) Now() time.Duration {
	return s.now
}

// Period returns the refresh period.
func (s *Simulated) Period() time.Duration {
	return s.period
}

// Frames returns the number of frames produced so far.
func (s *Simulated) Frames() int {
	return s.n
}
