package placement

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/garland/geom"
)

// CollisionOptions tunes SolveCollisions. The spacing, budget and step are
// empirical constants for the reference canopy, not derived from the profile.
type CollisionOptions struct {
	PlaneHeight     float64 `yaml:"plane_height"`      // y of every placed item
	DefaultRadius   float64 `yaml:"default_radius"`    // used when a request has no radius
	DefaultScale    float64 `yaml:"default_scale"`     // used when a request has scale 0
	TreeClearance   float64 `yaml:"tree_clearance"`    // minimum distance from the axis before scale padding
	BaseOffsetRatio float64 `yaml:"base_offset_ratio"` // radius padding per unit of scale
	ClearanceRatio  float64 `yaml:"clearance_ratio"`   // clearance padding per unit of scale
	MinSpacing      float64 `yaml:"min_spacing"`       // minimum ground-plane centre distance
	RetryBudget     int     `yaml:"retry_budget"`      // attempts per item, including the first
	NudgeStep       float64 `yaml:"nudge_step"`        // radius added after each failed attempt
}

// DefaultCollisionOptions returns the constants tuned for the reference tree.
func DefaultCollisionOptions() CollisionOptions {
	return CollisionOptions{
		PlaneHeight:     -2,
		DefaultRadius:   2.0,
		DefaultScale:    0.8,
		TreeClearance:   2.0,
		BaseOffsetRatio: 0.25,
		ClearanceRatio:  0.5,
		MinSpacing:      1.15,
		RetryBudget:     6,
		NudgeStep:       0.25,
	}
}

// Validate checks that the options can produce a layout.
func (o CollisionOptions) Validate() error {
	switch {
	case !geom.Finite(o.MinSpacing) || o.MinSpacing <= 0:
		return fmt.Errorf("min_spacing must be positive, got %v", o.MinSpacing)
	case o.RetryBudget < 1:
		return fmt.Errorf("retry_budget must be at least 1, got %d", o.RetryBudget)
	case !geom.Finite(o.NudgeStep) || o.NudgeStep < 0:
		return fmt.Errorf("nudge_step must be non-negative, got %v", o.NudgeStep)
	case !geom.Finite(o.DefaultRadius) || o.DefaultRadius < 0:
		return fmt.Errorf("default_radius must be non-negative, got %v", o.DefaultRadius)
	case !geom.Finite(o.DefaultScale) || o.DefaultScale < 0:
		return fmt.Errorf("default_scale must be non-negative, got %v", o.DefaultScale)
	case !geom.Finite(o.PlaneHeight):
		return fmt.Errorf("plane_height must be finite, got %v", o.PlaneHeight)
	}
	return nil
}

// Item is a placed request.
type Item struct {
	Request
	Position geom.Vec3
	Attempts int // 0 for the primary item, otherwise the attempt that succeeded (1-based)
}

// Result is the outcome of SolveCollisions.
type Result struct {
	Placed  []Item   // primary first, then the remaining items in manifest order
	Dropped []string // ids that found no free slot within the retry budget
}

// IDs returns the ids of the placed items in order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.Placed))
	for i, it := range r.Placed {
		ids[i] = it.ID
	}
	return ids
}

// Find returns the placed item with the given id.
func (r Result) Find(id string) (Item, bool) {
	for _, it := range r.Placed {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// InitialPosition is where a request starts before any nudging: its radius
// is padded by its scale and kept clear of the trunk.
func (o CollisionOptions) InitialPosition(r Request) geom.Vec3 {
	radius := o.DefaultRadius
	if r.Radius != nil {
		radius = *r.Radius
	}
	scale := o.scaleOf(r)
	desired := max(radius+scale*o.BaseOffsetRatio, o.TreeClearance+scale*o.ClearanceRatio)
	return geom.PolarAt(r.Angle, desired, o.PlaneHeight)
}

func (o CollisionOptions) scaleOf(r Request) float64 {
	if r.Scale == 0 {
		return o.DefaultScale
	}
	return r.Scale
}

// SolveCollisions places the manifest on the ground plane. The primary item is
// accepted at its initial position; every other item is tried at its initial
// angle and pushed outward by NudgeStep until it clears MinSpacing from all
// accepted items or RetryBudget attempts are spent, in which case it is
// dropped. The result is fully determined by the manifest and options.
func SolveCollisions(m *Manifest, opts CollisionOptions) Result {
	requests := m.requests
	accepted := make([]Item, 0, len(requests))

	primary := requests[m.primary]
	primary.Scale = opts.scaleOf(primary)
	accepted = append(accepted, Item{
		Request:  primary,
		Position: opts.InitialPosition(requests[m.primary]),
	})

	var dropped []string
	for i, req := range requests {
		if i == m.primary {
			continue
		}

		start := opts.InitialPosition(req)
		angle, radius := geom.ToPolar(start.X, start.Z)

		placed := false
		for attempt := 1; attempt <= opts.RetryBudget; attempt++ {
			candidate := geom.PolarAt(angle, radius, opts.PlaneHeight)
			if !collides(candidate, accepted, opts.MinSpacing) {
				it := Item{Request: req, Position: candidate, Attempts: attempt}
				it.Scale = opts.scaleOf(req)
				accepted = append(accepted, it)
				placed = true
				break
			}
			radius += opts.NudgeStep
		}

		if !placed {
			dropped = append(dropped, req.ID)
			slog.Debug("placement dropped item",
				"id", req.ID,
				"attempts", opts.RetryBudget,
				"last_radius", radius-opts.NudgeStep,
			)
		}
	}

	return Result{Placed: accepted, Dropped: dropped}
}

// collides reports whether p is closer than spacing to any accepted item.
func collides(p geom.Vec3, accepted []Item, spacing float64) bool {
	for _, a := range accepted {
		if geom.Dist2D(p, a.Position) < spacing {
			return true
		}
	}
	return false
}
