package telemetry

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/garland/geom"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/placement"
)

// Coverage describes how evenly one decoration set covers the tree.
type Coverage struct {
	Set          string  `csv:"set"`
	Count        int     `csv:"count"`
	Sectors      int     `csv:"sectors"`
	EmptySectors int     `csv:"empty_sectors"`
	SectorMin    float64 `csv:"sector_min"`
	SectorMax    float64 `csv:"sector_max"`
	SectorCV     float64 `csv:"sector_cv"` // std/mean of per-sector counts
	HeightMean   float64 `csv:"height_mean"`
	HeightStd    float64 `csv:"height_std"`
	HeightMin    float64 `csv:"height_min"`
	HeightMax    float64 `csv:"height_max"`
	RadiusMean   float64 `csv:"radius_mean"`
	MinGap       float64 `csv:"min_gap"` // closest ground-plane pair, 0 below two points
}

// SectorCounts buckets points by polar angle into n equal sectors starting
// at angle 0.
func SectorCounts(points []geom.Vec3, n int) []float64 {
	counts := make([]float64, n)
	width := geom.TwoPi / float64(n)
	for _, p := range points {
		angle, _ := geom.ToPolar(p.X, p.Z)
		i := int(geom.NormalizeHeading(angle) / width)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	return counts
}

// HeightCounts buckets points by height into n equal bins over [lo, hi].
// Points outside the range count towards the nearest end bin.
func HeightCounts(points []geom.Vec3, lo, hi float64, n int) []float64 {
	counts := make([]float64, n)
	if hi <= lo {
		counts[0] = float64(len(points))
		return counts
	}
	width := (hi - lo) / float64(n)
	for _, p := range points {
		i := int(math.Floor((p.Y - lo) / width))
		counts[min(max(i, 0), n-1)]++
	}
	return counts
}

// MinGap returns the smallest ground-plane distance between any two points.
func MinGap(points []geom.Vec3) float64 {
	if len(points) < 2 {
		return 0
	}
	gap := math.Inf(1)
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			gap = min(gap, geom.Dist2D(points[i], points[j]))
		}
	}
	return gap
}

// ComputeCoverage measures one set of points.
func ComputeCoverage(set string, points []geom.Vec3, sectors int) Coverage {
	heights := make([]float64, len(points))
	radii := make([]float64, len(points))
	for i, p := range points {
		heights[i] = p.Y
		_, radii[i] = geom.ToPolar(p.X, p.Z)
	}

	counts := SectorCounts(points, sectors)
	empty := 0
	for _, c := range counts {
		if c == 0 {
			empty++
		}
	}
	sector := Describe(counts)
	height := Describe(heights)

	return Coverage{
		Set:          set,
		Count:        len(points),
		Sectors:      sectors,
		EmptySectors: empty,
		SectorMin:    sector.Min,
		SectorMax:    sector.Max,
		SectorCV:     sector.CV(),
		HeightMean:   height.Mean,
		HeightStd:    height.Std,
		HeightMin:    height.Min,
		HeightMax:    height.Max,
		RadiusMean:   Describe(radii).Mean,
		MinGap:       MinGap(points),
	}
}

// LayoutCoverage measures every decoration set of a layout.
func LayoutCoverage(l *layout.Layout, sectors int) []Coverage {
	gifts := make([]geom.Vec3, len(l.Gifts))
	for i, g := range l.Gifts {
		gifts[i] = g.Position
	}
	forest := make([]geom.Vec3, len(l.Forest))
	for i, t := range l.Forest {
		forest[i] = t.Position
	}

	return []Coverage{
		ComputeCoverage("gifts", gifts, sectors),
		ComputeCoverage("lights", surfacePositions(l.Lights), sectors),
		ComputeCoverage("scatter", surfacePositions(l.Scatter), sectors),
		ComputeCoverage("ornaments", surfacePositions(l.Ornaments), sectors),
		ComputeCoverage("forest", forest, sectors),
	}
}

func surfacePositions(points []placement.SurfacePoint) []geom.Vec3 {
	out := make([]geom.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Position
	}
	return out
}

// LogCoverage logs one line per set.
func LogCoverage(cov []Coverage) {
	for _, c := range cov {
		slog.Info("coverage",
			"set", c.Set,
			"count", c.Count,
			"empty_sectors", c.EmptySectors,
			"sector_cv", c.SectorCV,
			"height_min", c.HeightMin,
			"height_max", c.HeightMax,
			"min_gap", c.MinGap,
		)
	}
}
