package attrs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePopulation(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{name: "nil", raw: nil, expected: 0},
		{name: "empty string", raw: "", expected: 0},
		{name: "whitespace", raw: "   ", expected: 0},
		{name: "thousands separator", raw: "72.067", expected: 72067},
		{name: "multiple separators", raw: "1.234.567", expected: 1234567},
		{name: "decimal comma", raw: "1.234,5", expected: 1234.5},
		{name: "padded", raw: "  98.110 ", expected: 98110},
		{name: "plain integer string", raw: "4500", expected: 4500},
		{name: "garbage", raw: "abc", expected: 0},
		{name: "infinity string", raw: "Inf", expected: 0},
		{name: "nan string", raw: "NaN", expected: 0},
		{name: "overflow", raw: "1e400", expected: 0},
		{name: "negative string clamps", raw: "-10", expected: 0},
		{name: "float64", raw: 1500.0, expected: 1500},
		{name: "int", raw: 42, expected: 42},
		{name: "uint16", raw: uint16(7), expected: 7},
		{name: "float32", raw: float32(2.5), expected: 2.5},
		{name: "json number", raw: json.Number("12345"), expected: 12345},
		{name: "float NaN", raw: math.NaN(), expected: 0},
		{name: "float +Inf", raw: math.Inf(1), expected: 0},
		{name: "negative float clamps", raw: -3.0, expected: 0},
		{name: "bool", raw: true, expected: 0},
		{name: "map", raw: map[string]any{}, expected: 0},
		{name: "slice", raw: []int{1, 2}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePopulation(tt.raw), 1e-9)
		})
	}
}

func TestParsePopulation_GroupedIntegers(t *testing.T) {
	groups := [][]string{
		{"7"},
		{"72", "067"},
		{"1", "000", "000"},
		{"999", "999", "999"},
		{"12", "345", "678", "901"},
	}
	for _, g := range groups {
		s := strings.Join(g, ".")
		want, err := strconv.ParseFloat(strings.Join(g, ""), 64)
		if !assert.NoError(t, err) {
			continue
		}
		assert.Equal(t, want, ParsePopulation(s), "input %q", s)
	}
}

func TestParsePopulation_AlwaysFiniteNonNegative(t *testing.T) {
	inputs := []any{nil, "", "abc", "-", ".", ",", "..,,", "-1.000", "1,2,3", struct{}{}, math.Inf(-1), int64(-9)}
	for _, in := range inputs {
		n := ParsePopulation(in)
		assert.False(t, math.IsNaN(n) || math.IsInf(n, 0), "input %v", in)
		assert.GreaterOrEqual(t, n, 0.0, "input %v", in)
	}
}
