// Package main provides CMA-ES tuning of the light and ornament spirals.
package main

import (
	"math"

	"github.com/pthm-cable/garland/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // rounded before use
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Light spiral
			{Name: "light_spirals", Path: "lights.spiral.spirals", Min: 3, Max: 10, Integer: true},
			{Name: "light_per_spiral", Path: "lights.spiral.per_spiral", Min: 4, Max: 16, Integer: true},
			{Name: "light_turns", Path: "lights.spiral.turns", Min: 0.5, Max: 4.0},
			{Name: "light_surface_factor", Path: "lights.spiral.surface_factor", Min: 1.0, Max: 1.2},
			// Scatter
			{Name: "scatter_count", Path: "lights.scatter.count", Min: 0, Max: 60, Integer: true},
			// Ornament spiral
			{Name: "ornament_turns", Path: "ornaments.spiral.turns", Min: 0.5, Max: 3.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
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

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Lights.Spiral.Spirals = int(clamped[0])
	cfg.Lights.Spiral.PerSpiral = int(clamped[1])
	cfg.Lights.Spiral.Turns = clamped[2]
	cfg.Lights.Spiral.SurfaceFactor = clamped[3]
	cfg.Lights.Scatter.Count = int(clamped[4])
	cfg.Ornaments.Spiral.Turns = clamped[5]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Lights.Spiral.Spirals),
		float64(cfg.Lights.Spiral.PerSpiral),
		cfg.Lights.Spiral.Turns,
		cfg.Lights.Spiral.SurfaceFactor,
		float64(cfg.Lights.Scatter.Count),
		cfg.Ornaments.Spiral.Turns,
	}
}
