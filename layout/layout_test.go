package layout

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/geom"
	"github.com/pthm-cable/garland/placement"
	"github.com/pthm-cable/garland/profile"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestBuildDefaults(t *testing.T) {
	cfg := loadDefaults(t)

	l, err := Build(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Len(t, l.Gifts, 7)
	assert.Empty(t, l.Dropped)
	assert.Len(t, l.Lights, 48)
	assert.Len(t, l.Scatter, 30)
	assert.Len(t, l.Ornaments, 24)
	assert.Len(t, l.Wires, 6*7)
	assert.Len(t, l.Forest, 30)
	assert.Len(t, l.AllLights(), 78)
	assert.Equal(t, -2.0, l.TreeOrigin)

	main, ok := l.Gift("main")
	require.True(t, ok)
	assert.True(t, main.Interactive)
	assert.Equal(t, "#dc2626", main.Color)

	for _, o := range l.Ornaments {
		_, r := geom.ToPolar(o.Position.X, o.Position.Z)
		assert.Less(t, r, l.Profile.RadiusAt(o.Position.Y), "ornaments nestle inside the canopy")
	}
}

func TestBuildFailsFastOnBadManifest(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Gifts.Manifest = append([]placement.Request{}, cfg.Gifts.Manifest...)
	cfg.Gifts.Manifest[2].Angle = math.NaN()

	_, err := Build(cfg, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, placement.ErrInvalidManifest))
}

func TestBuildFailsFastOnBadProfile(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Derived.Bands = []profile.Band{{CenterHeight: 1, BaseScale: -2, BandHeight: 3}}

	_, err := Build(cfg, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrInvalidProfile))
}

func TestCacheBuildsOncePerKey(t *testing.T) {
	cfg := loadDefaults(t)
	cache := NewCache()

	a, err := cache.Get(cfg, 7)
	require.NoError(t, err)
	b, err := cache.Get(cfg, 7)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.Builds())

	c, err := cache.Get(cfg, 8)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, cache.Builds())

	// Same seed rebuilt from scratch gives the same scatter.
	fresh, err := Build(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, fresh.Scatter, a.Scatter)
}

func TestKeyTracksPlacementInputs(t *testing.T) {
	cfg := loadDefaults(t)

	base, err := KeyOf(cfg, 1)
	require.NoError(t, err)

	same, err := KeyOf(loadDefaults(t), 1)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	cfg.Logging.Level = "debug"
	unchanged, err := KeyOf(cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, base, unchanged, "logging does not affect placement")

	cfg.Gifts.MinSpacing = 2
	changed, err := KeyOf(cfg, 1)
	require.NoError(t, err)
	assert.NotEqual(t, base, changed)

	seeded, err := KeyOf(loadDefaults(t), 2)
	require.NoError(t, err)
	assert.NotEqual(t, base, seeded)
}
