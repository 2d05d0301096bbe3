package main

import (
	"math"

	"github.com/pthm-cable/pixelstep/components"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string
	Min  float64
	Max  float64
	get  func(p components.Params) float64
	set  func(p *components.Params, v float64)
}

// ParamVector holds the set of tuned ship parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the ship handling parameters, bounded by the
// settings panel ranges.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "speed", Min: components.SpeedMin, Max: components.SpeedMax,
				get: func(p components.Params) float64 { return p.Speed },
				set: func(p *components.Params, v float64) { p.Speed = v },
			},
			{
				Name: "friction", Min: components.FrictionMin, Max: components.FrictionMax,
				get: func(p components.Params) float64 { return p.Friction },
				set: func(p *components.Params, v float64) { p.Friction = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Vector reads the tuned parameters out of p.
func (pv *ParamVector) Vector(p components.Params) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(p)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds raw values to their parameter ranges.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, raw[i]))
	}
	return clamped
}

// Apply writes raw values into a copy of base.
func (pv *ParamVector) Apply(base components.Params, raw []float64) components.Params {
	p := base
	for i, spec := range pv.Specs {
		spec.set(&p, raw[i])
	}
	return p
}
