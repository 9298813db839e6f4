package heat

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(densities ...float64) []Sample {
	out := make([]Sample, len(densities))
	for i, d := range densities {
		out[i] = Sample{Lat: -6.9 + float64(i)*0.01, Lng: 107.6, Density: d}
	}
	return out
}

func weights(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Weight
	}
	return out
}

func TestBuildWeights_Percentile(t *testing.T) {
	pts := BuildWeights(samples(0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100), DefaultOptions())
	require.Len(t, pts, 11)

	// p05 = 5, p95 = 95.
	assert.Equal(t, DefaultFloor, pts[0].Weight)
	assert.InDelta(t, 0.5, pts[5].Weight, 1e-9)
	assert.Equal(t, 1.0, pts[10].Weight)
	assert.Equal(t, -6.9, pts[0].Lat)
	assert.Equal(t, 107.6, pts[0].Lng)
}

func TestBuildWeights_PercentileClipsOutlier(t *testing.T) {
	vals := make([]float64, 0, 21)
	for i := 0; i < 20; i++ {
		vals = append(vals, 100+float64(i)*10)
	}
	vals = append(vals, 100000)

	ws := weights(BuildWeights(samples(vals...), DefaultOptions()))
	// p05 = 110 and p95 = 290, so the middle of the range lands on 0.5
	// instead of being flattened to the floor by the outlier.
	assert.InDelta(t, (200-110.0)/(290-110.0), ws[10], 1e-9)
	assert.Equal(t, 1.0, ws[20])
	assert.Equal(t, DefaultFloor, ws[0])
}

func TestBuildWeights_PercentileTwoValues(t *testing.T) {
	ws := weights(BuildWeights(samples(100, 5000), DefaultOptions()))
	assert.Equal(t, []float64{DefaultFloor, 1}, ws)

	// p05 = 345, p95 = 4755.
	ws = weights(BuildWeights(samples(100, 5000, 2550), DefaultOptions()))
	assert.InDelta(t, 0.5, ws[2], 1e-9)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{"single", []float64{7}, 0.95, 7},
		{"two values low", []float64{100, 5000}, 0.05, 345},
		{"two values high", []float64{100, 5000}, 0.95, 4755},
		{"decile low", []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, 0.05, 5},
		{"decile high", []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, 0.95, 95},
		{"min", []float64{1, 2, 3}, 0, 1},
		{"max", []float64{1, 2, 3}, 1, 3},
		{"median", []float64{1, 2, 3, 4}, 0.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(tt.sorted, tt.q), 1e-9)
		})
	}
}

func TestBuildWeights_Max(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = StrategyMax

	pts := BuildWeights(samples(0, 50, 100), opts)
	assert.Equal(t, []float64{DefaultFloor, 0.5, 1}, weights(pts))
}

func TestBuildWeights_AllZero(t *testing.T) {
	for _, strategy := range []Strategy{StrategyPercentile, StrategyMax} {
		opts := DefaultOptions()
		opts.Strategy = strategy
		for _, w := range weights(BuildWeights(samples(0, 0, 0), opts)) {
			assert.Equal(t, DefaultFloor, w, "strategy %s", strategy)
		}
	}
}

func TestBuildWeights_Empty(t *testing.T) {
	assert.Empty(t, BuildWeights(nil, DefaultOptions()))
}

func TestBuildWeights_NonFiniteGetsFloor(t *testing.T) {
	pts := BuildWeights(samples(math.NaN(), 10, math.Inf(1)), DefaultOptions())
	assert.Equal(t, DefaultFloor, pts[0].Weight)
	assert.Equal(t, DefaultFloor, pts[2].Weight)
}

func TestBuildWeights_ZeroFloor(t *testing.T) {
	opts := DefaultOptions()
	opts.Floor = 0
	opts.Strategy = StrategyMax

	pts := BuildWeights(samples(0, 10), opts)
	assert.Equal(t, []float64{0, 1}, weights(pts))
}

func TestBuildWeights_IndependentPerSet(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = StrategyMax

	city := BuildWeights(samples(1000, 2000), opts)
	all := BuildWeights(samples(1000, 2000, 4000), opts)

	assert.Equal(t, 1.0, city[1].Weight)
	assert.Equal(t, 0.5, all[1].Weight)
}

func TestBuildWeights_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 200; trial++ {
		n := rng.IntN(30)
		vals := make([]float64, n)
		for i := range vals {
			if rng.IntN(4) == 0 {
				vals[i] = 0
			} else {
				vals[i] = rng.Float64() * 50000
			}
		}
		for _, strategy := range []Strategy{StrategyPercentile, StrategyMax} {
			opts := DefaultOptions()
			opts.Strategy = strategy
			for _, w := range weights(BuildWeights(samples(vals...), opts)) {
				require.False(t, math.IsNaN(w))
				require.GreaterOrEqual(t, w, DefaultFloor)
				require.LessOrEqual(t, w, 1.0)
			}
		}
	}
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{Lower: 0.9, Upper: 0.1, Floor: 2}.normalized()
	assert.Equal(t, StrategyPercentile, o.Strategy)
	assert.Equal(t, 0.1, o.Lower)
	assert.Equal(t, 0.9, o.Upper)
	assert.Equal(t, 1.0, o.Floor)

	o = Options{Lower: -1, Upper: math.NaN()}.normalized()
	assert.Equal(t, 0.0, o.Lower)
	assert.Equal(t, DefaultUpperPercentile, o.Upper)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyPercentile, s)

	s, err = ParseStrategy("max")
	require.NoError(t, err)
	assert.Equal(t, StrategyMax, s)

	_, err = ParseStrategy("log")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}
