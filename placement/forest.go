package placement

import (
	"fmt"
	"math"

	"github.com/pthm-cable/garland/geom"
)

// ForestOptions describes the ring of background trees.
type ForestOptions struct {
	Count       int     `yaml:"count"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	MinScale    float64 `yaml:"min_scale"`
	MaxScale    float64 `yaml:"max_scale"`
	GroundLevel float64 `yaml:"ground_level"`
}

// DefaultForest returns the background ring of the reference scene.
func DefaultForest() ForestOptions {
	return ForestOptions{
		Count:       30,
		MinRadius:   15,
		MaxRadius:   35,
		MinScale:    0.8,
		MaxScale:    1.6,
		GroundLevel: -2,
	}
}

// Validate checks the forest settings.
func (o ForestOptions) Validate() error {
	switch {
	case o.Count < 0:
		return fmt.Errorf("count must be non-negative, got %d", o.Count)
	case o.MinRadius < 0 || o.MinRadius > o.MaxRadius:
		return fmt.Errorf("radius range [%v, %v] is invalid", o.MinRadius, o.MaxRadius)
	case o.MinScale <= 0 || o.MinScale > o.MaxScale:
		return fmt.Errorf("scale range [%v, %v] is invalid", o.MinScale, o.MaxScale)
	}
	return nil
}

// ForestTree is one background tree.
type ForestTree struct {
	Index    int
	Position geom.Vec3
	Scale    float64
}

// pseudo is a cheap deterministic hash of n into [0, 1).
func pseudo(n float64) float64 {
	return math.Mod(math.Abs(math.Sin(n)*10000), 1)
}

// Forest places background trees in an annulus around the origin. Layout
// depends only on opts, so every session sees the same backdrop.
func Forest(opts ForestOptions) []ForestTree {
	trees := make([]ForestTree, opts.Count)
	for i := range trees {
		n := float64(i)
		angle := pseudo(n+1) * geom.TwoPi
		r := geom.Lerp(opts.MinRadius, opts.MaxRadius, pseudo(n+11))
		trees[i] = ForestTree{
			Index:    i,
			Position: geom.PolarAt(angle, r, opts.GroundLevel),
			Scale:    geom.Lerp(opts.MinScale, opts.MaxScale, pseudo(n+31)),
		}
	}
	return trees
}
