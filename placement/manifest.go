// Package placement distributes decorative items around a stacked solid.
//
// Two strategies are provided. SolveCollisions places a small manifest of
// important items (gift boxes) on a ground plane and guarantees a minimum
// spacing between them, dropping items it cannot fit. Spiral and Scatter
// place large counts of small items (lights, baubles) on the solid's surface
// and only control coverage statistically.
package placement

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/garland/geom"
)

// ErrInvalidManifest is wrapped by every manifest validation error.
var ErrInvalidManifest = errors.New("invalid manifest")

// ValidationError describes a rejected request.
type ValidationError struct {
	ID     string // empty for manifest-wide problems
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("manifest entry %d %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("manifest entry %q %s: %s", e.ID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidManifest }

// Request is one item's placement intent.
type Request struct {
	ID          string   `yaml:"id"`
	Angle       float64  `yaml:"angle"`            // polar angle on the ground plane, radians
	Radius      *float64 `yaml:"radius,omitempty"` // nil uses CollisionOptions.DefaultRadius
	Scale       float64  `yaml:"scale"`            // 0 uses CollisionOptions.DefaultScale
	Interactive bool     `yaml:"interactive"`
	Color       string   `yaml:"color"`
	Ribbon      string   `yaml:"ribbon"`
}

// Manifest is a validated, ordered list of requests with one primary item.
type Manifest struct {
	requests []Request
	primary  int
}

// NewManifest validates the requests. primaryID selects the item that is
// placed first and never moved; when empty, the first interactive request is
// used, or the first request when none is interactive.
func NewManifest(requests []Request, primaryID string) (*Manifest, error) {
	if len(requests) == 0 {
		return nil, &ValidationError{Index: -1, Field: "requests", Reason: "manifest is empty"}
	}

	seen := make(map[string]bool, len(requests))
	for i, r := range requests {
		if err := validateRequest(i, r); err != nil {
			return nil, err
		}
		if seen[r.ID] {
			return nil, &ValidationError{ID: r.ID, Index: i, Field: "id", Reason: "duplicate id"}
		}
		seen[r.ID] = true
	}

	primary := -1
	if primaryID != "" {
		for i, r := range requests {
			if r.ID == primaryID {
				primary = i
				break
			}
		}
		if primary < 0 {
			return nil, &ValidationError{ID: primaryID, Index: -1, Field: "primary", Reason: "no request with this id"}
		}
	} else {
		primary = 0
		for i, r := range requests {
			if r.Interactive {
				primary = i
				break
			}
		}
	}

	m := &Manifest{
		requests: make([]Request, len(requests)),
		primary:  primary,
	}
	copy(m.requests, requests)
	return m, nil
}

func validateRequest(i int, r Request) error {
	switch {
	case r.ID == "":
		return &ValidationError{Index: i, Field: "id", Reason: "must not be empty"}
	case !geom.Finite(r.Angle):
		return &ValidationError{ID: r.ID, Index: i, Field: "angle", Reason: "must be finite"}
	case !geom.Finite(r.Scale) || r.Scale < 0:
		return &ValidationError{ID: r.ID, Index: i, Field: "scale", Reason: "must be a non-negative number"}
	case r.Radius != nil && (!geom.Finite(*r.Radius) || *r.Radius < 0):
		return &ValidationError{ID: r.ID, Index: i, Field: "radius", Reason: "must be a non-negative number"}
	}
	return nil
}

// Len returns the number of requests.
func (m *Manifest) Len() int { return len(m.requests) }

// Requests returns a copy of the requests in manifest order.
func (m *Manifest) Requests() []Request {
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Primary returns the primary request.
func (m *Manifest) Primary() Request { return m.requests[m.primary] }

// Without returns a manifest with the given id removed. Removing the primary
// promotes a new one by the NewManifest rules.
func (m *Manifest) Without(id string) (*Manifest, error) {
	rest := make([]Request, 0, len(m.requests))
	for _, r := range m.requests {
		if r.ID != id {
			rest = append(rest, r)
		}
	}
	primaryID := m.Primary().ID
	if primaryID == id {
		primaryID = ""
	}
	return NewManifest(rest, primaryID)
}

// Float returns a pointer to v, for optional request fields.
func Float(v float64) *float64 { return &v }
