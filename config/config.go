// Package config provides configuration loading and access for the layout engine.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/garland/placement"
	"github.com/pthm-cable/garland/profile"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all layout configuration parameters.
type Config struct {
	Logging   LoggingConfig           `yaml:"logging"`
	Tree      TreeConfig              `yaml:"tree"`
	Gifts     GiftsConfig             `yaml:"gifts"`
	Lights    LightsConfig            `yaml:"lights"`
	Ornaments OrnamentsConfig         `yaml:"ornaments"`
	Forest    placement.ForestOptions `yaml:"forest"`
	Scene     SceneConfig             `yaml:"scene"`
	Telemetry TelemetryConfig         `yaml:"telemetry"`
	Preview   PreviewConfig           `yaml:"preview"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// TreeConfig describes the canopy as stacked cone bands.
type TreeConfig struct {
	OriginY         float64      `yaml:"origin_y"`          // world height of the tree's local frame
	BandHeightRatio float64      `yaml:"band_height_ratio"` // band height = base scale * ratio
	FallbackRadius  float64      `yaml:"fallback_radius"`   // radius outside every band
	Bands           []BandConfig `yaml:"bands"`
}

// BandConfig is one cone band. BandHeight 0 derives it from BandHeightRatio.
type BandConfig struct {
	CenterHeight float64 `yaml:"center_height"`
	BaseScale    float64 `yaml:"base_scale"`
	BandHeight   float64 `yaml:"band_height,omitempty"`
}

// GiftsConfig holds the gift manifest and the collision solver constants.
type GiftsConfig struct {
	placement.CollisionOptions `yaml:",inline"`

	Primary  string              `yaml:"primary"` // id placed first and never moved
	Manifest []placement.Request `yaml:"manifest"`
}

// LightsConfig holds the string-light layout.
type LightsConfig struct {
	Spiral  placement.SpiralOptions  `yaml:"spiral"`
	Scatter placement.ScatterOptions `yaml:"scatter"`
	Wire    placement.WireOptions    `yaml:"wire"`
	Palette []string                 `yaml:"palette"`
}

// OrnamentsConfig holds the bauble layout.
type OrnamentsConfig struct {
	Spiral  placement.SpiralOptions `yaml:"spiral"`
	Palette []string                `yaml:"palette"`
}

// MinGridCellSize is the smallest accepted scene.grid_cell_size.
const MinGridCellSize = 0.25

// SceneConfig holds settings for the entity scene built from a layout.
type SceneConfig struct {
	PickRadius   float64 `yaml:"pick_radius"`    // ground-plane radius that selects an item
	GridCellSize float64 `yaml:"grid_cell_size"` // spatial index cell size
}

// TelemetryConfig holds coverage report settings.
type TelemetryConfig struct {
	CoverageSectors int `yaml:"coverage_sectors"` // angular buckets for coverage stats
	ProfileSamples  int `yaml:"profile_samples"`  // envelope samples written with the report
}

// PreviewConfig holds preview window settings.
type PreviewConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bands    []profile.Band // bands with heights filled in
	LogLevel slog.Level     // parsed Logging.Level
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	ratio := c.Tree.BandHeightRatio
	if ratio == 0 {
		ratio = profile.DefaultBandHeightRatio
	}

	c.Derived.Bands = make([]profile.Band, len(c.Tree.Bands))
	for i, b := range c.Tree.Bands {
		band := profile.NewBand(b.CenterHeight, b.BaseScale, ratio)
		if b.BandHeight != 0 {
			band.BandHeight = b.BandHeight
		}
		c.Derived.Bands[i] = band
	}

	level, err := ParseLevel(c.Logging.Level)
	if err != nil {
		return err
	}
	c.Derived.LogLevel = level
	return nil
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Validate checks the option sections. The band stack and gift manifest are
// validated when the layout is built from them.
func (c *Config) Validate() error {
	checks := []struct {
		section string
		err     error
	}{
		{"gifts", c.Gifts.CollisionOptions.Validate()},
		{"lights.spiral", c.Lights.Spiral.Validate()},
		{"lights.scatter", c.Lights.Scatter.Validate()},
		{"lights.wire", c.Lights.Wire.Validate()},
		{"ornaments.spiral", c.Ornaments.Spiral.Validate()},
		{"forest", c.Forest.Validate()},
	}
	for _, check := range checks {
		if check.err != nil {
			return fmt.Errorf("config %s: %w", check.section, check.err)
		}
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("config logging.format: unknown format %q", c.Logging.Format)
	}
	if !(c.Scene.GridCellSize >= MinGridCellSize) {
		return fmt.Errorf("config scene.grid_cell_size must be at least %v, got %v", MinGridCellSize, c.Scene.GridCellSize)
	}
	if c.Scene.PickRadius < 0 {
		return fmt.Errorf("config scene.pick_radius must be non-negative, got %v", c.Scene.PickRadius)
	}
	if c.Telemetry.CoverageSectors < 1 {
		return fmt.Errorf("config telemetry.coverage_sectors must be at least 1, got %d", c.Telemetry.CoverageSectors)
	}

	if len(c.Lights.Palette) == 0 || len(c.Ornaments.Palette) == 0 {
		return fmt.Errorf("config lights.palette and ornaments.palette must not be empty")
	}
	colors := append(append([]string{}, c.Lights.Palette...), c.Ornaments.Palette...)
	for _, r := range c.Gifts.Manifest {
		colors = append(colors, r.Color, r.Ribbon)
	}
	for _, hex := range colors {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("config color %q: %w", hex, err)
		}
	}
	return nil
}

// NewLogger builds the slog logger described by the logging section.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Derived.LogLevel}
	if c.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
