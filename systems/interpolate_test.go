package systems

import (
	"testing"

	"github.com/pthm-cable/pixelstep/components"
)

func TestInterpolate(t *testing.T) {
	prev := components.Pose{X: 10, Y: 20, Rotation: 0}
	curr := components.Pose{X: 20, Y: 10, Rotation: 90}

	tests := []struct {
		name    string
		alpha   float64
		enabled bool
		want    components.Pose
	}{
		{"alpha zero", 0, true, prev},
		{"halfway", 0.5, true, components.Pose{X: 15, Y: 15, Rotation: 45}},
		{"quarter", 0.25, true, components.Pose{X: 12.5, Y: 17.5, Rotation: 22.5}},
		{"disabled", 0.5, false, curr},
		{"disabled alpha zero", 0, false, curr},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Interpolate(prev, curr, tc.alpha, tc.enabled); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestInterpolateIdenticalPosesIsExact(t *testing.T) {
	p := components.Pose{X: 0.1 + 0.2, Y: 1.0 / 3.0, Rotation: -1234.5678}
	for _, alpha := range []float64{0, 1e-9, 0.3, 0.5, 0.999999} {
		if got := Interpolate(p, p, alpha, true); got != p {
			t.Errorf("alpha %v: got %+v, want %+v", alpha, got, p)
		}
	}
}
