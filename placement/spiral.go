package placement

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/garland/geom"
)

// SpiralOptions describes evenly wound strands around the solid.
type SpiralOptions struct {
	Spirals       int     `yaml:"spirals"`        // strand count, evenly phased around the axis
	PerSpiral     int     `yaml:"per_spiral"`     // items per strand
	MinHeight     float64 `yaml:"min_height"`     // height of the first item on a strand
	MaxHeight     float64 `yaml:"max_height"`     // height of the last item on a strand
	SurfaceFactor float64 `yaml:"surface_factor"` // >1 sits outside the surface, <1 nestles inside
	Turns         float64 `yaml:"turns"`          // full turns from bottom to top
	Easing        string  `yaml:"easing"`         // progress curve, see Easings
	PaletteStride int     `yaml:"palette_stride"` // colour offset between strands
}

// DefaultLightSpiral returns the string-light winding of the reference tree.
func DefaultLightSpiral() SpiralOptions {
	return SpiralOptions{
		Spirals:       6,
		PerSpiral:     8,
		MinHeight:     0.8,
		MaxHeight:     4.5,
		SurfaceFactor: 1.05,
		Turns:         1.75,
		Easing:        "linear",
		PaletteStride: 3,
	}
}

// easings holds the monotone progress curves. Non-monotone curves (back,
// elastic, bounce) would break height ordering along a strand.
var easings = map[string]ease.TweenFunc{
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
}

// Easings lists the accepted easing names.
func Easings() []string {
	names := []string{"linear"}
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// Validate checks the spiral settings.
func (o SpiralOptions) Validate() error {
	switch {
	case o.Spirals < 0 || o.PerSpiral < 0:
		return fmt.Errorf("spirals and per_spiral must be non-negative, got %d and %d", o.Spirals, o.PerSpiral)
	case !geom.Finite(o.MinHeight) || !geom.Finite(o.MaxHeight) || o.MinHeight > o.MaxHeight:
		return fmt.Errorf("height range [%v, %v] is invalid", o.MinHeight, o.MaxHeight)
	case !geom.Finite(o.SurfaceFactor) || o.SurfaceFactor <= 0:
		return fmt.Errorf("surface_factor must be positive, got %v", o.SurfaceFactor)
	case !geom.Finite(o.Turns):
		return fmt.Errorf("turns must be finite, got %v", o.Turns)
	case o.Easing != "" && o.Easing != "linear" && easings[o.Easing] == nil:
		return fmt.Errorf("unknown easing %q", o.Easing)
	}
	return nil
}

// progress maps strand position t in [0, 1] through the easing curve.
func (o SpiralOptions) progress(t float64) float64 {
	fn, ok := easings[o.Easing]
	if !ok {
		return t
	}
	return geom.Clamp01(float64(fn(float32(t), 0, 1, 1)))
}

// Spiral winds Spirals strands of PerSpiral items around the solid. Item i of
// a strand sits at vertical progress t = i/(PerSpiral-1), height
// MinHeight + t*(MaxHeight-MinHeight), radius RadiusAt(h)*SurfaceFactor and
// angle strandOffset + t*Turns*2π. Output is strand-major.
func Spiral(s Sampler, opts SpiralOptions, palette Palette) []SurfacePoint {
	if opts.Spirals <= 0 || opts.PerSpiral <= 0 {
		return nil
	}
	points := make([]SurfacePoint, 0, opts.Spirals*opts.PerSpiral)
	for spiral := 0; spiral < opts.Spirals; spiral++ {
		offset := float64(spiral) / float64(opts.Spirals) * geom.TwoPi

		for i := 0; i < opts.PerSpiral; i++ {
			t := 0.0
			if opts.PerSpiral > 1 {
				t = float64(i) / float64(opts.PerSpiral-1)
			}
			progress := opts.progress(t)
			h := geom.Lerp(opts.MinHeight, opts.MaxHeight, progress)
			if h > opts.MaxHeight {
				h = opts.MaxHeight
			}
			r := s.RadiusAt(h) * opts.SurfaceFactor
			angle := offset + progress*opts.Turns*geom.TwoPi

			p := newSurfacePoint(angle, r, h, palette.Strided(spiral, i, opts.PaletteStride))
			p.Strand = spiral
			p.Index = i
			p.Progress = progress
			points = append(points, p)
		}
	}
	return points
}

// Strands splits strand-major spiral output back into per-strand slices.
func Strands(points []SurfacePoint) [][]SurfacePoint {
	var strands [][]SurfacePoint
	for _, p := range points {
		if p.Strand < 0 {
			continue
		}
		for len(strands) <= p.Strand {
			strands = append(strands, nil)
		}
		strands[p.Strand] = append(strands[p.Strand], p)
	}
	return strands
}
