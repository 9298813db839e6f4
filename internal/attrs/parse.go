// Package attrs resolves population and name attributes from loosely typed
// GeoJSON property bags.
package attrs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ParsePopulation converts a raw attribute value into a finite, non-negative
// number. Strings are read as locale-formatted numbers: "." is a thousands
// separator and "," is the decimal separator, so "72.067" is 72067 and
// "1.234,5" is 1234.5. Anything that cannot be read yields 0.
func ParsePopulation(raw any) float64 {
	var n float64
	switch v := raw.(type) {
	case nil, bool:
		return 0
	case string:
		n = parseLocaleString(v)
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		json.Number:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

func parseLocaleString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
