package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution summarises a sample of values.
type Distribution struct {
	Count int
	Mean  float64
	Std   float64 // sample standard deviation, 0 for fewer than two values
	Min   float64
	Max   float64
	P10   float64
	P50   float64
	P90   float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Describe computes the distribution of values. An empty sample gives the
// zero Distribution.
func Describe(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	d := Distribution{
		Count: n,
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)

	return d
}

// CV returns the coefficient of variation, or 0 when the mean is 0.
func (d Distribution) CV() float64 {
	if d.Mean == 0 {
		return 0
	}
	return d.Std / d.Mean
}

// LogValue implements slog.LogValuer for structured logging.
func (d Distribution) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", d.Count),
		slog.Float64("mean", d.Mean),
		slog.Float64("std", d.Std),
		slog.Float64("min", d.Min),
		slog.Float64("max", d.Max),
		slog.Float64("p50", d.P50),
	)
}
