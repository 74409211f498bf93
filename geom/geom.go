// Package geom holds the small amount of shared geometry used by placement:
// polar conversion on the ground plane, planar distances and angle wrapping.
//
// The engine works in a right-handed Y-up frame. "Ground plane" means the
// (x, z) plane; polar angle 0 points along +x and grows towards +z.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Vec3 is a point in scene space.
type Vec3 = r3.Vec

// Polar returns the ground-plane point at the given angle and radius.
func Polar(angle, radius float64) (x, z float64) {
	return math.Cos(angle) * radius, math.Sin(angle) * radius
}

// PolarAt returns the scene-space point at the given angle, radius and height.
func PolarAt(angle, radius, y float64) Vec3 {
	x, z := Polar(angle, radius)
	return Vec3{X: x, Y: y, Z: z}
}

// ToPolar recovers angle and radius from a ground-plane point.
func ToPolar(x, z float64) (angle, radius float64) {
	return math.Atan2(z, x), math.Hypot(x, z)
}

// Ground projects a scene-space point onto the ground plane.
func Ground(p Vec3) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Z}
}

// Dist2D returns the distance between the ground-plane projections of a and b.
func Dist2D(a, b Vec3) float64 {
	return r2.Norm(r2.Sub(Ground(a), Ground(b)))
}

// DistSq2D returns the squared ground-plane distance between a and b.
func DistSq2D(a, b Vec3) float64 {
	return r2.Norm2(r2.Sub(Ground(a), Ground(b)))
}

// OutwardTilt is the yaw that turns an object at (x, z) to face away from the
// vertical axis.
func OutwardTilt(x, z float64) float64 {
	return math.Atan2(x, z)
}

// Lerp interpolates linearly between a and b, returning b exactly at t == 1.
func Lerp(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeHeading wraps a heading to [0, 2*Pi).
func NormalizeHeading(h float64) float64 {
	for h < 0 {
		h += TwoPi
	}
	for h >= TwoPi {
		h -= TwoPi
	}
	return h
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
