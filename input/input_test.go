package input

import (
	"testing"
	"time"

	"github.com/pthm-cable/pixelstep/clock"
	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/systems"
)

func TestPollStatic(t *testing.T) {
	want := components.Flags(components.ActionThrust, components.ActionRotateLeft)
	if got := Poll(Static(want)); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPollNil(t *testing.T) {
	if got := Poll(nil); got != 0 {
		t.Errorf("got %v, want no actions", got)
	}
}

func TestPollFunc(t *testing.T) {
	src := Func(func(a components.Action) bool { return a == components.ActionBrake })
	got := Poll(src)
	if got != components.Flags(components.ActionBrake) {
		t.Errorf("got %v, want brake", got)
	}
}

func TestParseActions(t *testing.T) {
	tests := []struct {
		in      string
		want    components.InputFlags
		wantErr bool
	}{
		{"", 0, false},
		{"thrust", components.Flags(components.ActionThrust), false},
		{"up, left", components.Flags(components.ActionUp, components.ActionLeft), false},
		{"thrust,,rotateRight", components.Flags(components.ActionThrust, components.ActionRotateRight), false},
		{"jump", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseActions(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKeymap(t *testing.T) {
	km, err := ParseKeymap(map[string][]string{
		"thrust": {"w", "Up"},
		"brake":  {"S"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := km[components.ActionThrust]; len(got) != 2 || got[0] != "W" || got[1] != "UP" {
		t.Errorf("thrust keys: got %v, want [W UP]", got)
	}

	if _, err := ParseKeymap(map[string][]string{"fly": {"W"}}); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := ParseKeymap(map[string][]string{"up": {"F13"}}); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestKeymapActions(t *testing.T) {
	km := Keymap{
		components.ActionRotateLeft: {"A"},
		components.ActionLeft:       {"A", "LEFT"},
	}
	got := km.Actions("A")
	want := []components.Action{components.ActionLeft, components.ActionRotateLeft}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLatchHoldWindow(t *testing.T) {
	src := clock.NewManual(0)
	l := NewLatch(DefaultKeymap(systems.KindShip), 100*time.Millisecond, src)

	l.Press("W")
	if !l.Pressed(components.ActionThrust) {
		t.Fatal("W should hold thrust")
	}
	if l.Pressed(components.ActionBrake) {
		t.Error("brake should not be held")
	}

	src.Advance(99 * time.Millisecond)
	if !l.Pressed(components.ActionThrust) {
		t.Error("thrust released before the hold window elapsed")
	}

	// A repeat extends the window
	l.Press("W")
	src.Advance(50 * time.Millisecond)
	if !l.Pressed(components.ActionThrust) {
		t.Error("repeat did not extend the hold")
	}

	src.Advance(50 * time.Millisecond)
	if l.Pressed(components.ActionThrust) {
		t.Error("thrust still held after the hold window")
	}
}

func TestLatchRelease(t *testing.T) {
	src := clock.NewManual(0)
	l := NewLatch(DefaultKeymap(systems.KindShmup), 0, src)
	l.Press("D")
	l.Release()
	if l.Pressed(components.ActionRight) {
		t.Error("release did not clear held actions")
	}
}

func TestDefaultKeymapKeepsRotationOffMovementKeys(t *testing.T) {
	rotate := components.Flags(components.ActionRotateLeft, components.ActionRotateRight)
	for _, kind := range []systems.Kind{systems.KindShmup, systems.KindShip, systems.KindBounce} {
		km := DefaultKeymap(kind)
		for _, key := range []string{"W", "A", "S", "D"} {
			if f := components.Flags(km.Actions(key)...); f&rotate != 0 {
				t.Errorf("%v: key %s gives %v, want no rotation", kind, key, f)
			}
		}
	}
	shmup := DefaultKeymap(systems.KindShmup)
	if got := components.Flags(shmup.Actions("LEFT")...); got != components.Flags(components.ActionRotateLeft) {
		t.Errorf("shmup LEFT: got %v, want rotateLeft", got)
	}
	if len(DefaultKeymap(systems.KindBounce)) != 0 {
		t.Error("bounce should have no bindings")
	}
}

func TestKnownKey(t *testing.T) {
	for _, k := range []string{"A", "Z", "0", "9", "UP", "SPACE", "CTRL"} {
		if !KnownKey(k) {
			t.Errorf("KnownKey(%q) = false, want true", k)
		}
	}
	for _, k := range []string{"", "a", "F1", "ESC", "AB"} {
		if KnownKey(k) {
			t.Errorf("KnownKey(%q) = true, want false", k)
		}
	}
}
