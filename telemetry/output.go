package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/layout"
)

// Output file names.
const (
	GiftsFile     = "gifts.csv"
	LightsFile    = "lights.csv"
	OrnamentsFile = "ornaments.csv"
	ForestFile    = "forest.csv"
	CoverageFile  = "coverage.csv"
	ProfileFile   = "profile.csv"
	PerfFile      = "perf.csv"
	ConfigFile    = "config.yaml"
)

// OutputManager writes layout reports to a directory.
type OutputManager struct {
	dir string
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &OutputManager{dir: dir}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteLayout writes the placement of every decoration set, the coverage
// report and the sampled canopy envelope.
func (om *OutputManager) WriteLayout(l *layout.Layout, cov []Coverage, profileSamples int) error {
	if om == nil {
		return nil
	}

	lo, hi := l.Profile.Extent()
	files := []struct {
		name    string
		records any
	}{
		{GiftsFile, GiftRecords(l.Gifts)},
		{LightsFile, layoutLights(l)},
		{OrnamentsFile, PointRecords(l.Ornaments, l.TreeOrigin)},
		{ForestFile, ForestRecords(l.Forest)},
		{CoverageFile, cov},
		{ProfileFile, l.Profile.Sample(lo, hi, profileSamples)},
	}

	for _, f := range files {
		if err := om.writeCSV(f.name, f.records); err != nil {
			return err
		}
	}
	return nil
}

// WritePerf writes stage timings to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats) error {
	if om == nil {
		return nil
	}
	return om.writeCSV(PerfFile, stats.ToCSV())
}

// writeCSV writes records, a slice of csv-tagged structs, with a header row.
func (om *OutputManager) writeCSV(name string, records any) error {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}
