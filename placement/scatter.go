package placement

import (
	"fmt"

	"github.com/pthm-cable/garland/geom"
)

// ScatterOptions describes uniformly scattered supplementary items.
type ScatterOptions struct {
	Count     int     `yaml:"count"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
	MinFactor float64 `yaml:"min_factor"` // radial factor range relative to the surface
	MaxFactor float64 `yaml:"max_factor"`
}

// DefaultLightScatter returns the extra lights scattered over the reference tree.
func DefaultLightScatter() ScatterOptions {
	return ScatterOptions{
		Count:     30,
		MinHeight: 0.5,
		MaxHeight: 4.5,
		MinFactor: 1.05,
		MaxFactor: 1.15,
	}
}

// Validate checks the scatter settings.
func (o ScatterOptions) Validate() error {
	switch {
	case o.Count < 0:
		return fmt.Errorf("count must be non-negative, got %d", o.Count)
	case !geom.Finite(o.MinHeight) || !geom.Finite(o.MaxHeight) || o.MinHeight > o.MaxHeight:
		return fmt.Errorf("height range [%v, %v] is invalid", o.MinHeight, o.MaxHeight)
	case !geom.Finite(o.MinFactor) || !geom.Finite(o.MaxFactor) || o.MinFactor <= 0 || o.MinFactor > o.MaxFactor:
		return fmt.Errorf("factor range [%v, %v] is invalid", o.MinFactor, o.MaxFactor)
	}
	return nil
}

// Scatter draws Count points with height, radial factor and angle each
// uniform over their ranges. Colours come from the same source. Reproducible
// only for a reproducible src.
func Scatter(s Sampler, opts ScatterOptions, palette Palette, src Source) []SurfacePoint {
	points := make([]SurfacePoint, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		h := geom.Lerp(opts.MinHeight, opts.MaxHeight, src.Float64())
		factor := geom.Lerp(opts.MinFactor, opts.MaxFactor, src.Float64())
		angle := src.Float64() * geom.TwoPi

		p := newSurfacePoint(angle, s.RadiusAt(h)*factor, h, palette.Random(src))
		p.Strand = -1
		p.Index = i
		p.Progress = geom.Clamp01((h - opts.MinHeight) / max(opts.MaxHeight-opts.MinHeight, 1e-9))
		points = append(points, p)
	}
	return points
}
