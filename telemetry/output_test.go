package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/profile"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// A nil manager accepts every write.
	assert.NoError(t, om.WriteConfig(nil))
	assert.NoError(t, om.WriteLayout(nil, nil, 0))
	assert.NoError(t, om.WritePerf(PerfStats{}))
	assert.Equal(t, "", om.Dir())
}

func TestOutputManagerWritesLayout(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	l, err := layout.Build(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, om.Dir())

	cov := LayoutCoverage(l, cfg.Telemetry.CoverageSectors)
	require.NoError(t, om.WriteLayout(l, cov, cfg.Telemetry.ProfileSamples))
	require.NoError(t, om.WriteConfig(cfg))

	var gifts []*GiftRecord
	readCSV(t, filepath.Join(dir, GiftsFile), &gifts)
	require.Len(t, gifts, len(l.Gifts))
	assert.Equal(t, "main", gifts[0].ID)
	assert.True(t, gifts[0].Interactive)
	assert.InDelta(t, 2.85, gifts[0].Radius, 1e-9)
	assert.Equal(t, "#fbbf24", gifts[0].Ribbon)

	var lights []*PointRecord
	readCSV(t, filepath.Join(dir, LightsFile), &lights)
	require.Len(t, lights, len(l.Lights)+len(l.Scatter))
	assert.InDelta(t, l.Lights[0].Position.Y+l.TreeOrigin, lights[0].Y, 1e-9)
	assert.InDelta(t, l.Lights[0].Position.Y, lights[0].Height, 1e-9)
	assert.Equal(t, -1, lights[len(lights)-1].Strand)

	var ornaments []*PointRecord
	readCSV(t, filepath.Join(dir, OrnamentsFile), &ornaments)
	assert.Len(t, ornaments, len(l.Ornaments))

	var forest []*ForestRecord
	readCSV(t, filepath.Join(dir, ForestFile), &forest)
	assert.Len(t, forest, len(l.Forest))

	var coverage []*Coverage
	readCSV(t, filepath.Join(dir, CoverageFile), &coverage)
	require.Len(t, coverage, len(cov))
	assert.Equal(t, "gifts", coverage[0].Set)

	var samples []*profile.Sample
	readCSV(t, filepath.Join(dir, ProfileFile), &samples)
	assert.Len(t, samples, cfg.Telemetry.ProfileSamples)

	loaded, err := config.Load(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, cfg.Gifts.MinSpacing, loaded.Gifts.MinSpacing)
	assert.Len(t, loaded.Gifts.Manifest, len(cfg.Gifts.Manifest))
}

func TestOutputManagerWritesPerf(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	require.NoError(t, err)

	p := NewPerfCollector()
	p.Start()
	p.StartPhase(PhaseSolve)
	p.End()
	require.NoError(t, om.WritePerf(p.Stats()))

	var rows []*PerfRecord
	readCSV(t, filepath.Join(om.Dir(), PerfFile), &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, PhaseSolve, rows[0].Phase)
	assert.Equal(t, "total", rows[1].Phase)
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gocsv.UnmarshalFile(f, out))
}
