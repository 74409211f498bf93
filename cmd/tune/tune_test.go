package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/garland/config"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.ExtractFromConfig(loadDefaults(t))

	norm := pv.Normalize(raw)
	for i, v := range norm {
		assert.GreaterOrEqual(t, v, 0.0, pv.Specs[i].Name)
		assert.LessOrEqual(t, v, 1.0, pv.Specs[i].Name)
	}

	back := pv.Denormalize(norm)
	assert.InDeltaSlice(t, raw, back, 1e-9)
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	in := make([]float64, pv.Dim())
	want := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		if i%2 == 0 {
			in[i], want[i] = spec.Min-10, spec.Min
		} else {
			in[i], want[i] = spec.Max+10, spec.Max
		}
	}

	assert.Equal(t, want, pv.Clamp(in))
}

func TestClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	for i, spec := range pv.Specs {
		v := pv.Denormalize(make([]float64, pv.Dim()))
		v[i] = spec.Min + 0.63*(spec.Max-spec.Min)

		want := v[i]
		if spec.Integer {
			want = math.Round(v[i])
		}
		assert.Equal(t, want, pv.Clamp(v)[i], spec.Name)
	}
}

func TestApplyExtract(t *testing.T) {
	pv := NewParamVector()
	cfg := loadDefaults(t)

	pv.ApplyToConfig(cfg, []float64{5, 10.4, 2.5, 1.1, 12, 2})

	assert.Equal(t, 5, cfg.Lights.Spiral.Spirals)
	assert.Equal(t, 10, cfg.Lights.Spiral.PerSpiral)
	assert.Equal(t, 12, cfg.Lights.Scatter.Count)
	assert.Equal(t, []float64{5, 10, 2.5, 1.1, 12, 2}, pv.ExtractFromConfig(cfg))
}

func TestEvaluateDefaults(t *testing.T) {
	pv := NewParamVector()
	cfg := loadDefaults(t)
	fe, err := NewFitnessEvaluator(pv, []int64{42, 1042}, cfg)
	require.NoError(t, err)

	x := pv.ExtractFromConfig(cfg)
	fitness := fe.Evaluate(x)
	require.False(t, math.IsNaN(fitness) || math.IsInf(fitness, 0))
	require.Less(t, fitness, failedFitness)

	b := fe.LastBreakdown()
	assert.Equal(t, fe.TargetCount(), b.Lights)
	assert.Equal(t, 0.0, b.CountError)
	assert.InDelta(t, fitness, b.Fitness(), 1e-12)

	assert.Equal(t, x, pv.ExtractFromConfig(cfg), "evaluation must not leak into the base config")
}

func TestEvaluateDeterministic(t *testing.T) {
	pv := NewParamVector()
	fe, err := NewFitnessEvaluator(pv, []int64{7, 8, 9}, loadDefaults(t))
	require.NoError(t, err)

	x := []float64{4, 9, 1.2, 1.08, 20, 1.5}
	assert.Equal(t, fe.Evaluate(x), fe.Evaluate(x))
}

func TestEvaluateSparseLayoutScoresWorse(t *testing.T) {
	pv := NewParamVector()
	cfg := loadDefaults(t)
	fe, err := NewFitnessEvaluator(pv, []int64{42}, cfg)
	require.NoError(t, err)

	defaults := fe.Evaluate(pv.ExtractFromConfig(cfg))

	// Fewest lights the bounds allow.
	sparse := fe.Evaluate([]float64{3, 4, 0.5, 1.0, 0, 0.5})
	assert.Greater(t, sparse, defaults)
	assert.Equal(t, 12, fe.LastBreakdown().Lights)
}

func TestFailedBreakdown(t *testing.T) {
	b := Breakdown{SectorCV: 0.1, Failed: true}
	assert.Equal(t, failedFitness, b.Fitness())
}

func TestNewFitnessEvaluatorNeedsSeeds(t *testing.T) {
	_, err := NewFitnessEvaluator(NewParamVector(), nil, loadDefaults(t))
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{59 * time.Second, "0m59s"},
		{90 * time.Second, "1m30s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}
