package placement

import (
	"math"

	"github.com/pthm-cable/garland/geom"
)

// Sampler reports the solid's radius at a height.
type Sampler interface {
	RadiusAt(h float64) float64
}

// Source is the random stream used by stochastic placement. *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// HangAngle points a hanging decoration straight down.
const HangAngle = math.Pi

// SurfacePoint is a decoration placed on or near the solid's surface.
// There is no overlap guarantee between surface points.
type SurfacePoint struct {
	Position geom.Vec3
	Color    string
	Tilt     float64 // yaw facing away from the axis, atan2(x, z)
	Hang     float64 // pitch, HangAngle for hanging decorations
	Phase    float64 // blink phase in [0, 10)
	Strand   int     // spiral index; -1 for scattered points
	Index    int     // position along the strand, or scatter order
	Progress float64 // vertical progress along the strand in [0, 1]
}

func newSurfacePoint(angle, radius, h float64, color string) SurfacePoint {
	p := geom.PolarAt(angle, radius, h)
	return SurfacePoint{
		Position: p,
		Color:    color,
		Tilt:     geom.OutwardTilt(p.X, p.Z),
		Hang:     HangAngle,
		Phase:    BlinkPhase(p.X, p.Z),
	}
}

// BlinkPhase hashes a ground-plane position into a phase in [0, 10) so that
// neighbouring lights do not pulse in sync.
func BlinkPhase(x, z float64) float64 {
	return math.Mod(math.Abs(math.Sin(x*12.9898+z*78.233))*43758.5453, 10)
}

// Palette is an ordered list of colours.
type Palette []string

// Strided picks the colour for item i on strand s: (s*stride + i) mod len.
func (p Palette) Strided(s, i, stride int) string {
	if len(p) == 0 {
		return ""
	}
	idx := (s*stride + i) % len(p)
	if idx < 0 {
		idx += len(p)
	}
	return p[idx]
}

// Random draws a colour from src.
func (p Palette) Random(src Source) string {
	if len(p) == 0 {
		return ""
	}
	return p[src.Intn(len(p))]
}
