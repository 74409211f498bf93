package main

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/geom"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/placement"
	"github.com/pthm-cable/garland/telemetry"
)

// Fitness component weights and bins.
const (
	weightSector   = 1.0
	weightHeight   = 1.0
	weightOrnament = 0.5
	weightCount    = 2.0

	heightBins = 8

	// failedFitness is returned when a parameter vector cannot build a layout.
	failedFitness = 1e6
)

// Breakdown holds the parts of one fitness evaluation, averaged over seeds.
type Breakdown struct {
	SectorCV   float64 // all lights, by polar sector
	HeightCV   float64 // all lights, by height bin
	OrnamentCV float64 // ornaments, by polar sector
	CountError float64 // relative distance from the target light count
	Lights     int
	Failed     bool
}

// Fitness combines the parts into the scalar that is minimized.
func (b Breakdown) Fitness() float64 {
	if b.Failed {
		return failedFitness
	}
	return weightSector*b.SectorCV +
		weightHeight*b.HeightCV +
		weightOrnament*b.OrnamentCV +
		weightCount*b.CountError
}

// FitnessEvaluator builds layouts for a parameter vector and scores how
// evenly they cover the canopy.
type FitnessEvaluator struct {
	params      *ParamVector
	seeds       []int64
	baseConfig  *config.Config
	inputs      *layout.Inputs
	sectors     int
	targetCount int

	mu   sync.Mutex
	last Breakdown // from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. The profile and gift manifest
// do not depend on the tuned parameters, so they are prepared once here.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) (*FitnessEvaluator, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one seed is required")
	}
	in, err := layout.Prepare(baseCfg)
	if err != nil {
		return nil, err
	}
	spiral := baseCfg.Lights.Spiral
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		inputs:      in,
		sectors:     baseCfg.Telemetry.CoverageSectors,
		targetCount: spiral.Spirals*spiral.PerSpiral + baseCfg.Lights.Scatter.Count,
	}, nil
}

// TargetCount is the light count the evaluator steers towards.
func (fe *FitnessEvaluator) TargetCount() int {
	return fe.targetCount
}

// LastBreakdown returns the parts of the most recent evaluation.
func (fe *FitnessEvaluator) LastBreakdown() Breakdown {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	if err := cfg.Validate(); err != nil {
		fe.record(Breakdown{Failed: true})
		return failedFitness
	}

	// Run all seeds in parallel
	results := make([]Breakdown, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			l := layout.Solve(cfg, fe.inputs, rand.New(rand.NewSource(s)))
			results[idx] = fe.score(cfg, l)
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var avg Breakdown
	for _, r := range results {
		avg.SectorCV += r.SectorCV
		avg.HeightCV += r.HeightCV
		avg.OrnamentCV += r.OrnamentCV
		avg.CountError += r.CountError
		avg.Lights += r.Lights
	}
	n := float64(len(results))
	avg.SectorCV /= n
	avg.HeightCV /= n
	avg.OrnamentCV /= n
	avg.CountError /= n
	avg.Lights /= len(results)

	fe.record(avg)
	return avg.Fitness()
}

func (fe *FitnessEvaluator) record(b Breakdown) {
	fe.mu.Lock()
	fe.last = b
	fe.mu.Unlock()
}

// score measures one layout.
func (fe *FitnessEvaluator) score(cfg *config.Config, l *layout.Layout) Breakdown {
	lights := positions(l.AllLights())
	ornaments := positions(l.Ornaments)
	spiral := cfg.Lights.Spiral

	b := Breakdown{
		SectorCV:   telemetry.Describe(telemetry.SectorCounts(lights, fe.sectors)).CV(),
		HeightCV:   telemetry.Describe(telemetry.HeightCounts(lights, spiral.MinHeight, spiral.MaxHeight, heightBins)).CV(),
		OrnamentCV: telemetry.Describe(telemetry.SectorCounts(ornaments, fe.sectors)).CV(),
		Lights:     len(lights),
	}
	if len(lights) == 0 {
		// Nothing to light: as bad as every sector being empty.
		b.SectorCV = math.Sqrt(float64(fe.sectors))
		b.HeightCV = math.Sqrt(float64(heightBins))
	}
	if fe.targetCount > 0 {
		b.CountError = math.Abs(float64(len(lights)-fe.targetCount)) / float64(fe.targetCount)
	}
	return b
}

// copyConfig makes a shallow copy of the base config. The tuned fields are
// all values, so writes to the copy never reach the base.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

func positions(points []placement.SurfacePoint) []geom.Vec3 {
	out := make([]geom.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Position
	}
	return out
}
