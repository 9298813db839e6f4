// Package heat turns per-region density values into normalized heatmap
// weights anchored at region centroids.
package heat

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
)

// Strategy selects how densities are scaled to [0, 1].
type Strategy string

// Normalization strategies.
const (
	// StrategyPercentile clips densities to [Lower, Upper] percentiles of
	// the region before min-max scaling.
	StrategyPercentile Strategy = "percentile"
	// StrategyMax divides each density by the region maximum.
	StrategyMax Strategy = "max"
)

// Defaults for the percentile strategy.
const (
	DefaultLowerPercentile = 0.05
	DefaultUpperPercentile = 0.95
	DefaultFloor           = 0.05
)

// minSpan keeps the percentile range from collapsing to zero width.
const minSpan = 1e-9

// Options configures BuildWeights.
type Options struct {
	Strategy Strategy
	Lower    float64
	Upper    float64
	// Floor is the minimum weight so zero-density regions stay visible.
	Floor float64
}

// DefaultOptions returns percentile clipping at p05/p95 with a 0.05 floor.
func DefaultOptions() Options {
	return Options{
		Strategy: StrategyPercentile,
		Lower:    DefaultLowerPercentile,
		Upper:    DefaultUpperPercentile,
		Floor:    DefaultFloor,
	}
}

// ParseStrategy validates a strategy name. An empty name selects the
// percentile strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyPercentile:
		return StrategyPercentile, nil
	case StrategyMax:
		return StrategyMax, nil
	default:
		return "", eris.Errorf("heat: unknown strategy %q", s)
	}
}

// Sample is one region's representative point and density.
type Sample struct {
	Lat     float64
	Lng     float64
	Density float64
}

// Point is a weighted heatmap point.
type Point struct {
	Lat    float64 `json:"lat" yaml:"lat"`
	Lng    float64 `json:"lng" yaml:"lng"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// BuildWeights returns one point per sample with a weight in [Floor, 1].
// The scale is derived from the samples alone, so each region set is
// normalized independently.
func BuildWeights(samples []Sample, opts Options) []Point {
	opts = opts.normalized()

	finite := make([]float64, 0, len(samples))
	for _, s := range samples {
		if isFinite(s.Density) {
			finite = append(finite, s.Density)
		}
	}

	scale := func(float64) float64 { return 0 }
	if len(finite) > 0 {
		switch opts.Strategy {
		case StrategyMax:
			scale = maxScale(finite)
		default:
			scale = percentileScale(finite, opts.Lower, opts.Upper)
		}
	}

	points := make([]Point, len(samples))
	for i, s := range samples {
		w := 0.0
		if isFinite(s.Density) {
			w = scale(s.Density)
		}
		points[i] = Point{Lat: s.Lat, Lng: s.Lng, Weight: clampWeight(w, opts.Floor)}
	}
	return points
}

func maxScale(vals []float64) func(float64) float64 {
	hi := floats.Max(vals)
	if hi <= 0 {
		return func(float64) float64 { return 0 }
	}
	return func(d float64) float64 { return d / hi }
}

func percentileScale(vals []float64, lower, upper float64) func(float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	lo := math.Max(0, Quantile(sorted, lower))
	hi := math.Max(lo+minSpan, Quantile(sorted, upper))

	return func(d float64) float64 {
		d = math.Min(hi, math.Max(lo, d))
		return (d - lo) / (hi - lo)
	}
}

// Quantile returns the q-quantile of sorted, interpolating linearly between
// the two values around position (n-1)*q. sorted must be ascending and
// non-empty.
func Quantile(sorted []float64, q float64) float64 {
	pos := float64(len(sorted)-1) * q
	base := int(math.Floor(pos))
	if base < 0 {
		return sorted[0]
	}
	if base+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	rest := pos - float64(base)
	return sorted[base] + rest*(sorted[base+1]-sorted[base])
}

func clampWeight(w, floor float64) float64 {
	if !isFinite(w) {
		return floor
	}
	return math.Max(floor, math.Min(1, w))
}

func (o Options) normalized() Options {
	if o.Strategy == "" {
		o.Strategy = StrategyPercentile
	}
	o.Lower = clamp01(o.Lower)
	o.Upper = clamp01(o.Upper)
	if o.Upper == 0 {
		o.Upper = DefaultUpperPercentile
	}
	if o.Lower > o.Upper {
		o.Lower, o.Upper = o.Upper, o.Lower
	}
	o.Floor = clamp01(o.Floor)
	return o
}

func clamp01(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
