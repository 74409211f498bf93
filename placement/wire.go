package placement

import (
	"fmt"
	"math"

	"github.com/pthm-cable/garland/geom"
)

// WireOptions shapes the cable hanging between consecutive lights.
type WireOptions struct {
	Steps        int     `yaml:"steps"`         // subdivisions per segment
	Sag          float64 `yaml:"sag"`           // depth of the droop at mid-segment
	AttachOffset float64 `yaml:"attach_offset"` // vertical offset from a light to its socket
}

// DefaultWire returns the cable shape used on the reference tree.
func DefaultWire() WireOptions {
	return WireOptions{Steps: 8, Sag: 0.05, AttachOffset: -0.22}
}

// Validate checks the wire settings.
func (o WireOptions) Validate() error {
	if o.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", o.Steps)
	}
	if !geom.Finite(o.Sag) || !geom.Finite(o.AttachOffset) {
		return fmt.Errorf("sag and attach_offset must be finite")
	}
	return nil
}

// Wire is one drooping cable segment between two lights on a strand.
type Wire struct {
	Strand int
	From   int // index of the upper-strand light the segment starts at
	Points []geom.Vec3
}

// Wires links consecutive lights of every spiral strand. Each segment runs
// from socket to socket with Steps-1 interior points sagging by
// sin(t*π)*Sag. Scattered points are ignored.
func Wires(points []SurfacePoint, opts WireOptions) []Wire {
	var wires []Wire
	for strand, lights := range Strands(points) {
		for i := 0; i+1 < len(lights); i++ {
			a := lights[i].Position
			b := lights[i+1].Position
			a.Y += opts.AttachOffset
			b.Y += opts.AttachOffset

			pts := make([]geom.Vec3, 0, opts.Steps+1)
			pts = append(pts, a)
			for s := 1; s < opts.Steps; s++ {
				t := float64(s) / float64(opts.Steps)
				p := geom.Vec3{
					X: geom.Lerp(a.X, b.X, t),
					Y: geom.Lerp(a.Y, b.Y, t) - math.Sin(t*math.Pi)*opts.Sag,
					Z: geom.Lerp(a.Z, b.Z, t),
				}
				pts = append(pts, p)
			}
			pts = append(pts, b)

			wires = append(wires, Wire{Strand: strand, From: lights[i].Index, Points: pts})
		}
	}
	return wires
}
