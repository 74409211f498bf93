package layout

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/placement"
	"github.com/pthm-cable/garland/profile"
)

// Key identifies a layout: the band stack, manifest, every option section
// that feeds the solver, and the scatter seed.
type Key uint64

// keyInputs is the hashed view of a config. Sections that do not affect
// placement (logging, scene, telemetry, preview) are left out.
type keyInputs struct {
	Bands     []profile.Band          `yaml:"bands"`
	Fallback  float64                 `yaml:"fallback"`
	Origin    float64                 `yaml:"origin"`
	Gifts     config.GiftsConfig      `yaml:"gifts"`
	Lights    config.LightsConfig     `yaml:"lights"`
	Ornaments config.OrnamentsConfig  `yaml:"ornaments"`
	Forest    placement.ForestOptions `yaml:"forest"`
	Seed      int64                   `yaml:"seed"`
}

// KeyOf hashes the placement inputs of cfg with seed.
func KeyOf(cfg *config.Config, seed int64) (Key, error) {
	data, err := yaml.Marshal(keyInputs{
		Bands:     cfg.Derived.Bands,
		Fallback:  cfg.Tree.FallbackRadius,
		Origin:    cfg.Tree.OriginY,
		Gifts:     cfg.Gifts,
		Lights:    cfg.Lights,
		Ornaments: cfg.Ornaments,
		Forest:    cfg.Forest,
		Seed:      seed,
	})
	if err != nil {
		return 0, fmt.Errorf("hashing layout inputs: %w", err)
	}
	h := fnv.New64a()
	h.Write(data)
	return Key(h.Sum64()), nil
}

// Cache memoises layouts for the lifetime of a session. A layout is built
// once per key and never recomputed.
type Cache struct {
	mu      sync.Mutex
	layouts map[Key]*Layout
	builds  int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{layouts: make(map[Key]*Layout)}
}

// Get returns the layout for cfg and seed, building it on first use. The
// scattered lights draw from rand.NewSource(seed).
func (c *Cache) Get(cfg *config.Config, seed int64) (*Layout, error) {
	key, err := KeyOf(cfg, seed)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.layouts[key]; ok {
		return l, nil
	}

	l, err := Build(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	c.layouts[key] = l
	c.builds++
	return l, nil
}

// Builds reports how many layouts the cache has computed.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
