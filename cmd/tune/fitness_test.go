package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/pixelstep/components"
)

func TestMeasureSteadyState(t *testing.T) {
	p := components.Params{Speed: 120, Friction: 0.9}
	m := Measure(p, 60, 0.05)

	// Thrust adds s*dt then friction keeps r: v* = s*dt*r/(1-r)
	dt := (time.Second / 60).Seconds()
	r := math.Pow(1-p.Friction, dt)
	want := p.Speed * dt * r / (1 - r)
	if math.Abs(m.TopSpeed-want) > 1e-6*want {
		t.Errorf("top speed: got %v, want %v", m.TopSpeed, want)
	}

	// Speed decays by (1-f) per second, independent of the tick rate
	glide := math.Log(0.05) / math.Log(1-p.Friction)
	if math.Abs(m.Glide.Seconds()-glide) > 0.02 {
		t.Errorf("glide: got %v, want ~%.3fs", m.Glide, glide)
	}
}

func TestMeasureFrictionless(t *testing.T) {
	m := Measure(components.Params{Speed: 10}, 60, 0.05)
	if math.Abs(m.TopSpeed-100) > 1e-3 {
		t.Errorf("top speed: got %v, want 100", m.TopSpeed)
	}
	if m.Glide != glideCap {
		t.Errorf("glide: got %v, want cap %v", m.Glide, glideCap)
	}
}

func TestMeasureNoThrust(t *testing.T) {
	m := Measure(components.Params{Friction: 0.5}, 60, 0.05)
	if m.TopSpeed != 0 || m.Glide != 0 {
		t.Errorf("got %+v, want zero measurement", m)
	}
}

func TestFitness(t *testing.T) {
	targets := Targets{TopSpeed: 50, Glide: 2 * time.Second, Stop: 0.05}
	if got := Fitness(Measurement{TopSpeed: 50, Glide: 2 * time.Second}, targets); got != 0 {
		t.Errorf("exact match: got %v, want 0", got)
	}
	got := Fitness(Measurement{TopSpeed: 55, Glide: 2 * time.Second}, targets)
	if math.Abs(got-0.01) > 1e-12 {
		t.Errorf("10%% speed error: got %v, want 0.01", got)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	base := components.Params{Speed: 120, Friction: 0.9, RotationSpeed: 90}
	raw := pv.Denormalize(pv.Normalize(pv.Vector(base)))
	p := pv.Apply(base, raw)
	if math.Abs(p.Speed-120) > 1e-9 || math.Abs(p.Friction-0.9) > 1e-9 {
		t.Errorf("got %+v, want speed 120 friction 0.9", p)
	}
	if p.RotationSpeed != 90 {
		t.Errorf("untuned field changed: got %v, want 90", p.RotationSpeed)
	}

	clamped := pv.Clamp([]float64{-5, 2})
	if clamped[0] != components.SpeedMin || clamped[1] != components.FrictionMax {
		t.Errorf("clamp: got %v", clamped)
	}
}

func TestTunerRecoversKnownParams(t *testing.T) {
	want := components.Params{Speed: 100, Friction: 0.8}
	m := Measure(want, 60, 0.05)

	var evals int
	tuner := &Tuner{
		Params:   NewParamVector(),
		Base:     components.Params{Speed: 120, Friction: 0.9},
		TickRate: 60,
		Targets:  Targets{TopSpeed: m.TopSpeed, Glide: m.Glide, Stop: 0.05},
		MaxEvals: 1000,
		OnEval:   func(EvalRecord) { evals++ },
	}
	best, _ := tuner.Run()

	if evals != best.Evals {
		t.Errorf("OnEval calls: got %d, want %d", evals, best.Evals)
	}
	if best.Fitness > 1e-4 {
		t.Errorf("fitness: got %v, want ~0", best.Fitness)
	}
	if math.Abs(best.Params.Speed-want.Speed) > 0.05*want.Speed {
		t.Errorf("speed: got %v, want ~%v", best.Params.Speed, want.Speed)
	}
	if math.Abs(best.Params.Friction-want.Friction) > 0.02 {
		t.Errorf("friction: got %v, want ~%v", best.Params.Friction, want.Friction)
	}
}
