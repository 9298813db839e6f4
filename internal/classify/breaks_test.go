package classify

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBreaks(t *testing.T) {
	tests := []struct {
		name      string
		densities []float64
		k         int
		expected  Breaks
	}{
		{
			name:      "empty yields default ramp",
			densities: nil,
			k:         5,
			expected:  Breaks{0, 1, 2, 3, 4},
		},
		{
			name:      "only non-finite yields default ramp",
			densities: []float64{math.NaN(), math.Inf(1)},
			k:         3,
			expected:  Breaks{0, 1, 2},
		},
		{
			name:      "single value collapses",
			densities: []float64{42},
			k:         5,
			expected:  Breaks{42},
		},
		{
			name:      "two values",
			densities: []float64{10000, 100},
			k:         5,
			expected:  Breaks{100, 10000},
		},
		{
			name:      "eleven values nearest rank",
			densities: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			k:         5,
			expected:  Breaks{20, 40, 60, 80, 100},
		},
		{
			name:      "unsorted with non-finite noise",
			densities: []float64{50, math.NaN(), 10, 30, math.Inf(-1), 20, 40},
			k:         5,
			// n=5 sorted 10..50; indices round(0.8)=1, round(1.6)=2, round(2.4)=2, round(3.2)=3, 4.
			expected: Breaks{20, 30, 40, 50},
		},
		{
			name:      "ties collapse",
			densities: []float64{5, 5, 5, 5, 9},
			k:         4,
			expected:  Breaks{5, 9},
		},
		{
			name:      "k below one treated as one",
			densities: []float64{1, 2, 3},
			k:         0,
			expected:  Breaks{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeBreaks(tt.densities, tt.k))
		})
	}
}

func TestComputeBreaks_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	ComputeBreaks(in, 3)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestComputeBreaks_MonotonicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		n := rng.IntN(40)
		k := 1 + rng.IntN(8)
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.Floor(rng.Float64() * 20)
		}

		b := ComputeBreaks(vals, k)
		require.LessOrEqual(t, len(b), k)
		require.NotEmpty(t, b)
		for i := 1; i < len(b); i++ {
			require.Less(t, b[i-1], b[i], "breaks must be strictly ascending after dedupe: %v", b)
		}
	}
}

func TestBreaksClassIndex(t *testing.T) {
	b := Breaks{100, 1000, 5000}

	tests := []struct {
		d        float64
		expected int
	}{
		{d: 0, expected: 0},
		{d: 100, expected: 0},
		{d: 100.5, expected: 1},
		{d: 1000, expected: 1},
		{d: 4999, expected: 2},
		{d: 5000, expected: 2},
		{d: 5001, expected: 3},
		{d: math.Inf(1), expected: 3},
		{d: math.NaN(), expected: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, b.ClassIndex(tt.d), "density %v", tt.d)
	}
	assert.Equal(t, 4, b.NumClasses())
}

func TestBreaksClassIndex_Monotonic(t *testing.T) {
	b := ComputeBreaks([]float64{1, 4, 9, 16, 25, 36, 49, 64, 81, 100}, 5)
	prev := -1
	for d := 0.0; d <= 120; d += 0.5 {
		idx := b.ClassIndex(d)
		assert.GreaterOrEqual(t, idx, prev, "density %v", d)
		prev = idx
	}
}

func TestEndToEnd_DenseAboveSparse(t *testing.T) {
	// A: 100,000 people on 10 km²; B: 10,000 people on 100 km².
	densA := 100000.0 / 10
	densB := 10000.0 / 100

	b := ComputeBreaks([]float64{densA, densB}, 5)
	assert.Greater(t, b.ClassIndex(densA), b.ClassIndex(densB))
}
