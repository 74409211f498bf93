package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		angle, radius float64
	}{
		{"positive angle", 1.0, 2.9},
		{"negative angle", -0.25, 2.85},
		{"near pi", -3.0, 2.9},
		{"zero", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z := Polar(tt.angle, tt.radius)
			angle, radius := ToPolar(x, z)
			assert.InDelta(t, tt.angle, angle, 1e-12)
			assert.InDelta(t, tt.radius, radius, 1e-12)
		})
	}
}

func TestDist2DIgnoresHeight(t *testing.T) {
	a := Vec3{X: 0, Y: -2, Z: 0}
	b := Vec3{X: 3, Y: 10, Z: 4}

	assert.InDelta(t, 5.0, Dist2D(a, b), 1e-12)
	assert.InDelta(t, 25.0, DistSq2D(a, b), 1e-12)
}

func TestOutwardTilt(t *testing.T) {
	// +z faces yaw 0, +x faces yaw pi/2.
	assert.InDelta(t, 0.0, OutwardTilt(0, 1), 1e-12)
	assert.InDelta(t, math.Pi/2, OutwardTilt(1, 0), 1e-12)
	assert.InDelta(t, -math.Pi/2, OutwardTilt(-1, 0), 1e-12)
}

func TestNormalizeHeading(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeHeading(TwoPi), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, NormalizeHeading(-math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, NormalizeHeading(math.Pi/2-TwoPi), 1e-12)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(1.5))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}

func TestLerpEndpoints(t *testing.T) {
	assert.Equal(t, 0.8, Lerp(0.8, 4.5, 0))
	assert.Equal(t, 4.5, Lerp(0.8, 4.5, 1))
	assert.InDelta(t, 2.65, Lerp(0.8, 4.5, 0.5), 1e-12)
}
