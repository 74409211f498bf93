// Package camera provides an orbit camera for viewing a layout in 3D.
package camera

import "math"

// Camera orbits a target point on a sphere. Yaw turns about the vertical
// axis and pitch lifts the eye above the target's horizontal plane.
type Camera struct {
	// Target is the point the camera looks at
	TargetX, TargetY, TargetZ float32

	Yaw      float32 // radians, 0 looks along -Z
	Pitch    float32 // radians
	Distance float32 // eye distance from the target

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	home pose
}

// pose is the orientation restored by Reset.
type pose struct {
	yaw, pitch, distance float32
}

// New creates a camera looking at (0, targetY, 0) from the given distance.
func New(targetY, distance float32) *Camera {
	c := &Camera{
		TargetY:     targetY,
		Yaw:         0,
		Pitch:       0.35,
		Distance:    distance,
		MinDistance: 2,
		MaxDistance: 80,
		MinPitch:    -0.2,
		MaxPitch:    1.5,
	}
	c.home = pose{yaw: c.Yaw, pitch: c.Pitch, distance: c.Distance}
	return c
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	cp := float32(math.Cos(float64(c.Pitch)))
	sp := float32(math.Sin(float64(c.Pitch)))
	cy := float32(math.Cos(float64(c.Yaw)))
	sy := float32(math.Sin(float64(c.Yaw)))

	x = c.TargetX + c.Distance*cp*sy
	y = c.TargetY + c.Distance*sp
	z = c.TargetZ + c.Distance*cp*cy
	return x, y, z
}

// Orbit rotates the camera by the given yaw and pitch deltas in radians.
// Pitch is clamped; yaw wraps.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// SetDistance sets the eye distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the current distance by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to the pose it was created with.
func (c *Camera) Reset() {
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
	c.Distance = c.home.distance
}

// GroundHit intersects the ray from origin o along direction d with the
// horizontal plane y = planeY. It reports false when the ray is parallel to
// the plane or points away from it.
func GroundHit(ox, oy, oz, dx, dy, dz, planeY float32) (x, z float32, ok bool) {
	if absf(dy) < 1e-6 {
		return 0, 0, false
	}
	t := (planeY - oy) / dy
	if t < 0 {
		return 0, 0, false
	}
	return ox + dx*t, oz + dz*t, true
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
