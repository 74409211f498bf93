// Package layout runs the placement pipeline: build and validate the canopy
// profile and gift manifest, then solve every decoration set against them.
// A Layout is computed once per session and read by everything downstream.
package layout

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/placement"
	"github.com/pthm-cable/garland/profile"
)

// Layout is the finished, read-only placement of a scene. Surface points
// are in the tree's local frame; add TreeOrigin to reach world space.
type Layout struct {
	Profile    *profile.Profile
	TreeOrigin float64

	Gifts   []placement.Item
	Dropped []string

	Lights    []placement.SurfacePoint // spiral strands, strand-major
	Scatter   []placement.SurfacePoint // supplementary scattered lights
	Ornaments []placement.SurfacePoint
	Wires     []placement.Wire
	Forest    []placement.ForestTree
}

// Inputs are the validated products of the first pipeline stage.
type Inputs struct {
	Profile  *profile.Profile
	Manifest *placement.Manifest
}

// Prepare is the first stage: it builds the profile and manifest from cfg and
// fails on malformed input.
func Prepare(cfg *config.Config) (*Inputs, error) {
	prof, err := profile.New(cfg.Derived.Bands, cfg.Tree.FallbackRadius)
	if err != nil {
		return nil, fmt.Errorf("building profile: %w", err)
	}
	manifest, err := placement.NewManifest(cfg.Gifts.Manifest, cfg.Gifts.Primary)
	if err != nil {
		return nil, fmt.Errorf("building manifest: %w", err)
	}
	return &Inputs{Profile: prof, Manifest: manifest}, nil
}

// Solve is the second stage: it places every decoration set. Only the
// scattered lights consume src.
func Solve(cfg *config.Config, in *Inputs, src placement.Source) *Layout {
	gifts := placement.SolveCollisions(in.Manifest, cfg.Gifts.CollisionOptions)
	lights := placement.Spiral(in.Profile, cfg.Lights.Spiral, cfg.Lights.Palette)

	l := &Layout{
		Profile:    in.Profile,
		TreeOrigin: cfg.Tree.OriginY,
		Gifts:      gifts.Placed,
		Dropped:    gifts.Dropped,
		Lights:     lights,
		Scatter:    placement.Scatter(in.Profile, cfg.Lights.Scatter, cfg.Lights.Palette, src),
		Ornaments:  placement.Spiral(in.Profile, cfg.Ornaments.Spiral, cfg.Ornaments.Palette),
		Wires:      placement.Wires(lights, cfg.Lights.Wire),
		Forest:     placement.Forest(cfg.Forest),
	}

	if len(l.Dropped) > 0 {
		slog.Debug("gifts dropped", "count", len(l.Dropped), "ids", l.Dropped)
	}
	return l
}

// Build runs both stages.
func Build(cfg *config.Config, src placement.Source) (*Layout, error) {
	in, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return Solve(cfg, in, src), nil
}

// Gift returns the placed gift with the given id.
func (l *Layout) Gift(id string) (placement.Item, bool) {
	for _, g := range l.Gifts {
		if g.ID == id {
			return g, true
		}
	}
	return placement.Item{}, false
}

// AllLights returns the spiral and scattered lights together.
func (l *Layout) AllLights() []placement.SurfacePoint {
	out := make([]placement.SurfacePoint, 0, len(l.Lights)+len(l.Scatter))
	out = append(out, l.Lights...)
	return append(out, l.Scatter...)
}

// Summary returns slog attributes describing the layout.
func (l *Layout) Summary() []any {
	return []any{
		"gifts", len(l.Gifts),
		"dropped", len(l.Dropped),
		"lights", len(l.Lights),
		"scattered", len(l.Scatter),
		"ornaments", len(l.Ornaments),
		"wires", len(l.Wires),
		"forest", len(l.Forest),
	}
}
