package classify

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheme_FullRamp(t *testing.T) {
	s := NewScheme([]float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, 5, nil, "")

	assert.Equal(t, Breaks{20, 40, 60, 80, 100}, s.Breaks())
	assert.Equal(t, DefaultPalette, s.Ramp())
	assert.False(t, s.Degenerate())

	assert.Equal(t, "#f5f1ee", s.Color(5))
	assert.Equal(t, "#e0d6d1", s.Color(30))
	assert.Equal(t, "#6d4c41", s.Color(100))
	assert.Equal(t, "#4e342e", s.Color(150))
}

func TestNewScheme_CollapsedBreaksKeepRampEnds(t *testing.T) {
	s := NewScheme([]float64{100, 10000}, 5, nil, "")

	require.Equal(t, Breaks{100, 10000}, s.Breaks())
	assert.Equal(t, []string{"#f5f1ee", "#8d6e63", "#4e342e"}, s.Ramp())
	assert.Equal(t, "#f5f1ee", s.Color(100))
	assert.Equal(t, "#8d6e63", s.Color(10000))
}

func TestNewScheme_Degenerate(t *testing.T) {
	s := NewScheme(nil, 5, nil, "#999999")

	assert.True(t, s.Degenerate())
	assert.Equal(t, Breaks{0, 1, 2, 3, 4}, s.Breaks())
	for _, d := range []float64{0, 1, 3.5, 1000} {
		assert.Equal(t, "#999999", s.Color(d))
	}
	for _, e := range s.Legend() {
		assert.Equal(t, "#999999", e.Color)
	}
}

func TestScheme_ColorMonotonic(t *testing.T) {
	s := NewScheme([]float64{3, 7, 12, 50, 51, 90, 400, 1200}, 5, nil, "")
	ramp := s.Ramp()
	pos := func(c string) int {
		for i, r := range ramp {
			if r == c {
				return i
			}
		}
		return -1
	}

	prev := -1
	for d := 0.0; d < 1500; d += 7 {
		p := pos(s.Color(d))
		require.NotEqual(t, -1, p)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestScheme_NaNUsesFallback(t *testing.T) {
	s := NewScheme([]float64{1, 2, 3}, 3, nil, "#000000")
	assert.Equal(t, "#000000", s.Color(math.NaN()))
}

func TestScheme_Legend(t *testing.T) {
	s := NewScheme([]float64{100, 10000}, 5, nil, "")

	legend := s.Legend()
	require.Len(t, legend, 3)

	assert.Equal(t, 0.0, legend[0].Lower)
	assert.Equal(t, 100.0, legend[0].Upper)
	assert.Equal(t, 100.0, legend[1].Lower)
	assert.Equal(t, 10000.0, legend[1].Upper)
	assert.True(t, math.IsInf(legend[2].Upper, 1))
	for i, e := range legend {
		assert.Equal(t, i, e.Class)
		assert.Equal(t, s.Ramp()[i], e.Color)
	}
}

func TestLegendEntry_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(LegendEntry{Class: 2, Lower: 10, Upper: math.Inf(1), Color: "#4e342e"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":2,"lower":10,"upper":null,"color":"#4e342e"}`, string(data))
}

func TestSampleRamp(t *testing.T) {
	p := []string{"a", "b", "c", "d", "e", "f"}
	assert.Equal(t, []string{"f"}, sampleRamp(p, 1))
	assert.Equal(t, []string{"a", "f"}, sampleRamp(p, 2))
	assert.Equal(t, p, sampleRamp(p, 6))
	assert.Nil(t, sampleRamp(p, 0))
}
