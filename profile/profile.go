// Package profile samples the silhouette of an axially symmetric solid built
// from stacked cone bands.
//
// Each band is a cone whose base sits at CenterHeight - BandHeight/2 with
// radius BaseScale and whose apex sits at CenterHeight + BandHeight/2. Bands
// may overlap vertically; the radius at a height is the envelope (maximum)
// over every band that contains it.
package profile

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/garland/geom"
)

// DefaultFallbackRadius is returned for heights outside every band.
const DefaultFallbackRadius = 0.5

// DefaultBandHeightRatio relates a band's height to its base scale.
const DefaultBandHeightRatio = 1.5

// ErrInvalidProfile is wrapped by every profile validation error.
var ErrInvalidProfile = errors.New("invalid profile")

// ValidationError describes a rejected band or profile setting.
type ValidationError struct {
	Band   int // -1 for profile-wide settings
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Band < 0 {
		return fmt.Sprintf("profile %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("profile band %d %s: %s", e.Band, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProfile }

// Band is one truncated-cone section of the solid.
type Band struct {
	CenterHeight float64 `yaml:"center_height"`
	BaseScale    float64 `yaml:"base_scale"`
	BandHeight   float64 `yaml:"band_height"`
}

// Bottom is the height of the band's base.
func (b Band) Bottom() float64 { return b.CenterHeight - b.BandHeight/2 }

// Top is the height of the band's apex.
func (b Band) Top() float64 { return b.CenterHeight + b.BandHeight/2 }

// Contains reports whether h lies within the band's closed vertical range.
func (b Band) Contains(h float64) bool {
	return h >= b.Bottom() && h <= b.Top()
}

// RadiusAt interpolates from BaseScale at the bottom to 0 at the top.
// The caller must check Contains first.
func (b Band) RadiusAt(h float64) float64 {
	t := (h - b.Bottom()) / b.BandHeight
	return b.BaseScale * (1 - t)
}

// NewBand builds a band whose height is scale*ratio.
func NewBand(center, scale, ratio float64) Band {
	return Band{CenterHeight: center, BaseScale: scale, BandHeight: scale * ratio}
}

// FromScales builds a profile from parallel center heights and base scales,
// each band's height being scale*ratio.
func FromScales(centers, scales []float64, ratio, fallback float64) (*Profile, error) {
	if len(centers) != len(scales) {
		return nil, &ValidationError{
			Band:   -1,
			Field:  "bands",
			Reason: fmt.Sprintf("%d centers for %d scales", len(centers), len(scales)),
		}
	}
	if !geom.Finite(ratio) || ratio <= 0 {
		return nil, &ValidationError{Band: -1, Field: "band_height_ratio", Reason: "must be a positive number"}
	}
	bands := make([]Band, len(centers))
	for i := range centers {
		bands[i] = NewBand(centers[i], scales[i], ratio)
	}
	return New(bands, fallback)
}

// Profile is an immutable stack of bands.
type Profile struct {
	bands    []Band
	fallback float64
}

// New validates the bands and returns a profile. The slice is copied.
func New(bands []Band, fallback float64) (*Profile, error) {
	if !geom.Finite(fallback) || fallback <= 0 {
		return nil, &ValidationError{Band: -1, Field: "fallback_radius", Reason: "must be a positive number"}
	}
	if len(bands) == 0 {
		return nil, &ValidationError{Band: -1, Field: "bands", Reason: "at least one band is required"}
	}
	for i, b := range bands {
		if err := validateBand(i, b); err != nil {
			return nil, err
		}
	}

	p := &Profile{
		bands:    make([]Band, len(bands)),
		fallback: fallback,
	}
	copy(p.bands, bands)
	return p, nil
}

func validateBand(i int, b Band) error {
	switch {
	case !geom.Finite(b.CenterHeight):
		return &ValidationError{Band: i, Field: "center_height", Reason: "must be finite"}
	case !geom.Finite(b.BaseScale) || b.BaseScale <= 0:
		return &ValidationError{Band: i, Field: "base_scale", Reason: "must be a positive number"}
	case !geom.Finite(b.BandHeight) || b.BandHeight <= 0:
		return &ValidationError{Band: i, Field: "band_height", Reason: "must be a positive number"}
	}
	return nil
}

// DefaultTree returns the canopy of the reference tree: four stacked cones
// in the tree's local frame.
func DefaultTree() *Profile {
	p, err := FromScales(
		[]float64{1.5, 2.5, 3.5, 4.3},
		[]float64{2.2, 1.8, 1.4, 1.0},
		DefaultBandHeightRatio, DefaultFallbackRadius,
	)
	if err != nil {
		panic(err)
	}
	return p
}

// RadiusAt returns the envelope radius at height h, or the fallback radius
// when no band contributes a positive radius.
func (p *Profile) RadiusAt(h float64) float64 {
	maxRadius := 0.0
	for _, b := range p.bands {
		if !b.Contains(h) {
			continue
		}
		if r := b.RadiusAt(h); r > maxRadius {
			maxRadius = r
		}
	}
	if maxRadius > 0 {
		return maxRadius
	}
	return p.fallback
}

// Fallback returns the radius used outside every band.
func (p *Profile) Fallback() float64 { return p.fallback }

// Bands returns a copy of the profile's bands.
func (p *Profile) Bands() []Band {
	out := make([]Band, len(p.bands))
	copy(out, p.bands)
	return out
}

// Extent returns the lowest band bottom and highest band top.
func (p *Profile) Extent() (bottom, top float64) {
	bottom, top = p.bands[0].Bottom(), p.bands[0].Top()
	for _, b := range p.bands[1:] {
		bottom = min(bottom, b.Bottom())
		top = max(top, b.Top())
	}
	return bottom, top
}

// Sample is one envelope reading.
type Sample struct {
	Height float64 `csv:"height"`
	Radius float64 `csv:"radius"`
}

// Sample reads the envelope at n evenly spaced heights from `from` to `to`
// inclusive. n < 2 yields a single sample at `from`.
func (p *Profile) Sample(from, to float64, n int) []Sample {
	if n < 2 {
		return []Sample{{Height: from, Radius: p.RadiusAt(from)}}
	}
	out := make([]Sample, n)
	for i := range out {
		h := geom.Lerp(from, to, float64(i)/float64(n-1))
		out[i] = Sample{Height: h, Radius: p.RadiusAt(h)}
	}
	return out
}
