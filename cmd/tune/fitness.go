package main

import (
	"math"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/pixelstep/components"
	"github.com/pthm-cable/pixelstep/systems"
)

const (
	// thrustTime is how long the ship thrusts before top speed is read.
	thrustTime = 10 * time.Second
	// glideCap bounds the glide measurement for near frictionless ships.
	glideCap = 60 * time.Second
)

// Targets describes the desired ship handling.
type Targets struct {
	TopSpeed float64       // speed after thrusting for thrustTime, units/s
	Glide    time.Duration // time from releasing thrust until speed falls below Stop*TopSpeed
	Stop     float64       // fraction of top speed that counts as stopped
}

// Measurement is the handling a parameter set produces.
type Measurement struct {
	TopSpeed float64
	Glide    time.Duration
}

// Measure runs the ship model at tickRate: full thrust for thrustTime, then
// coasting until the speed drops below stop times the top speed. The glide
// crossing is interpolated within the final tick so the result varies
// smoothly with friction.
func Measure(p components.Params, tickRate int, stop float64) Measurement {
	step := time.Second / time.Duration(tickRate)
	dt := step.Seconds()
	ship := systems.Ship{}
	var e components.Entity

	thrust := components.Flags(components.ActionThrust)
	for n := int(thrustTime / step); n > 0; n-- {
		ship.Step(&e, thrust, p, dt)
	}
	top := math.Hypot(e.Vel.X, e.Vel.Y)
	m := Measurement{TopSpeed: top}
	if top == 0 {
		return m
	}

	threshold := stop * top
	prev := top
	for elapsed := time.Duration(0); elapsed < glideCap; elapsed += step {
		ship.Step(&e, 0, p, dt)
		cur := math.Hypot(e.Vel.X, e.Vel.Y)
		if cur <= threshold {
			frac := 1.0
			if cur > 0 && prev > cur {
				frac = math.Log(prev/threshold) / math.Log(prev/cur)
			}
			m.Glide = elapsed + time.Duration(frac*float64(step))
			return m
		}
		prev = cur
	}
	m.Glide = glideCap
	return m
}

// Fitness is the summed squared relative error between m and t. Lower is
// better; zero is an exact match.
func Fitness(m Measurement, t Targets) float64 {
	speedErr := (m.TopSpeed - t.TopSpeed) / t.TopSpeed
	glideErr := (m.Glide.Seconds() - t.Glide.Seconds()) / t.Glide.Seconds()
	return speedErr*speedErr + glideErr*glideErr
}

// EvalRecord is one logged fitness evaluation.
type EvalRecord struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Speed    float64 `csv:"speed"`
	Friction float64 `csv:"friction"`
	TopSpeed float64 `csv:"top_speed"`
	GlideSec float64 `csv:"glide_s"`
}

// Tuner searches the speed and friction that best match the targets.
type Tuner struct {
	Params   *ParamVector
	Base     components.Params
	TickRate int
	Targets  Targets
	MaxEvals int

	// OnEval, if set, is called after every evaluation.
	OnEval func(EvalRecord)
}

// Result is the best parameter set found.
type Result struct {
	Params      components.Params
	Measurement Measurement
	Fitness     float64
	Evals       int
}

// Run minimizes the fitness with Nelder-Mead over normalized parameters,
// starting from the base values. The best evaluation seen is returned even
// when the optimizer stops with an error.
func (tu *Tuner) Run() (Result, error) {
	pv := tu.Params
	best := Result{Fitness: math.Inf(1)}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := pv.Clamp(pv.Denormalize(x))
			p := pv.Apply(tu.Base, raw)
			m := Measure(p, tu.TickRate, tu.Targets.Stop)
			f := Fitness(m, tu.Targets)

			best.Evals++
			if f < best.Fitness {
				best.Fitness = f
				best.Params = p
				best.Measurement = m
			}
			if tu.OnEval != nil {
				tu.OnEval(EvalRecord{
					Eval:     best.Evals,
					Fitness:  f,
					Speed:    p.Speed,
					Friction: p.Friction,
					TopSpeed: m.TopSpeed,
					GlideSec: m.Glide.Seconds(),
				})
			}
			return f
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: tu.MaxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Iterations: 100,
		},
	}
	method := &optimize.NelderMead{}

	initX := pv.Normalize(pv.Vector(tu.Base))
	_, err := optimize.Minimize(problem, initX, settings, method)
	return best, err
}
