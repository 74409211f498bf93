package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func TestNew(t *testing.T) {
	cam := New(1, 10)

	assert.Equal(t, float32(1), cam.TargetY)
	assert.Equal(t, float32(10), cam.Distance)
}

func TestPositionKeepsDistance(t *testing.T) {
	cam := New(1, 10)

	testCases := []struct{ yaw, pitch float32 }{
		{0, 0},
		{1, 0.5},
		{4, -0.2},
		{2.5, 1.4},
	}

	for _, tc := range testCases {
		cam.Yaw, cam.Pitch = tc.yaw, tc.pitch
		x, y, z := cam.Position()
		dy := y - cam.TargetY
		d := math.Sqrt(float64(x*x + dy*dy + z*z))
		assert.InDelta(t, 10, d, tolerance, "yaw %f pitch %f", tc.yaw, tc.pitch)
	}
}

func TestPositionAxes(t *testing.T) {
	cam := New(0, 5)
	cam.Pitch = 0

	// Yaw 0 puts the eye on +Z.
	x, y, z := cam.Position()
	assert.InDelta(t, 0, x, tolerance)
	assert.InDelta(t, 0, y, tolerance)
	assert.InDelta(t, 5, z, tolerance)

	cam.Yaw = math.Pi / 2
	x, _, z = cam.Position()
	assert.InDelta(t, 5, x, tolerance)
	assert.InDelta(t, 0, z, tolerance)
}

func TestOrbitClampsPitchAndWrapsYaw(t *testing.T) {
	cam := New(0, 5)

	cam.Orbit(0, 10)
	assert.Equal(t, cam.MaxPitch, cam.Pitch)
	cam.Orbit(0, -10)
	assert.Equal(t, cam.MinPitch, cam.Pitch)

	cam.Orbit(-1, 0)
	assert.GreaterOrEqual(t, cam.Yaw, float32(0))
	assert.Less(t, cam.Yaw, float32(2*math.Pi))
	assert.InDelta(t, 2*math.Pi-1, cam.Yaw, tolerance)
}

func TestZoomClamping(t *testing.T) {
	cam := New(0, 10)

	cam.ZoomBy(100)
	assert.Equal(t, cam.MinDistance, cam.Distance)

	cam.ZoomBy(0.001)
	assert.Equal(t, cam.MaxDistance, cam.Distance)

	cam.ZoomBy(0)
	assert.Equal(t, cam.MaxDistance, cam.Distance, "zero factor is ignored")
}

func TestReset(t *testing.T) {
	cam := New(0, 10)
	cam.Orbit(1, 0.3)
	cam.ZoomBy(2)

	cam.Reset()
	assert.Equal(t, float32(0), cam.Yaw)
	assert.Equal(t, float32(0.35), cam.Pitch)
	assert.Equal(t, float32(10), cam.Distance)
}

func TestGroundHit(t *testing.T) {
	tests := []struct {
		name    string
		o, d    [3]float32
		planeY  float32
		wantX   float32
		wantZ   float32
		wantHit bool
	}{
		{"straight down", [3]float32{1, 5, 2}, [3]float32{0, -1, 0}, -2, 1, 2, true},
		{"diagonal", [3]float32{0, 2, 0}, [3]float32{1, -1, 0.5}, -2, 4, 2, true},
		{"parallel", [3]float32{0, 2, 0}, [3]float32{1, 0, 0}, -2, 0, 0, false},
		{"pointing away", [3]float32{0, 2, 0}, [3]float32{0, 1, 0}, -2, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z, ok := GroundHit(tt.o[0], tt.o[1], tt.o[2], tt.d[0], tt.d[1], tt.d[2], tt.planeY)
			require.Equal(t, tt.wantHit, ok)
			if ok {
				assert.InDelta(t, tt.wantX, x, tolerance)
				assert.InDelta(t, tt.wantZ, z, tolerance)
			}
		})
	}
}
