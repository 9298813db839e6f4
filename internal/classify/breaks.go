// Package classify computes quantile class breaks over density values and maps
// densities to choropleth classes and colors.
package classify

import (
	"math"
	"sort"
)

// DefaultClasses is the number of breaks computed when none is configured.
const DefaultClasses = 5

// Breaks are ascending, deduplicated class thresholds.
type Breaks []float64

// ComputeBreaks returns up to k nearest-rank quantile breaks over the finite
// values in densities. Break i (1..k) is the sorted value at index
// round(i/k * (n-1)). Equal neighbors collapse, so the result may be shorter
// than k. An input with no finite values yields the ramp 0..k-1.
func ComputeBreaks(densities []float64, k int) Breaks {
	if k < 1 {
		k = 1
	}

	vals := make([]float64, 0, len(densities))
	for _, d := range densities {
		if !math.IsNaN(d) && !math.IsInf(d, 0) {
			vals = append(vals, d)
		}
	}
	if len(vals) == 0 {
		ramp := make(Breaks, k)
		for i := range ramp {
			ramp[i] = float64(i)
		}
		return ramp
	}
	sort.Float64s(vals)

	n := len(vals)
	out := make(Breaks, 0, k)
	for i := 1; i <= k; i++ {
		idx := int(math.Round(float64(i) / float64(k) * float64(n-1)))
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		v := vals[idx]
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ClassIndex returns the smallest i with d <= b[i]. Values above every break
// (and NaN) fall in the top class, len(b).
func (b Breaks) ClassIndex(d float64) int {
	// sort.SearchFloat64s finds the first b[i] >= d, i.e. d <= b[i].
	return sort.SearchFloat64s(b, d)
}

// NumClasses returns the number of classes the breaks partition values into.
func (b Breaks) NumClasses() int {
	return len(b) + 1
}
