package classify

import (
	"encoding/json"
	"math"
)

// DefaultPalette runs light to dark.
var DefaultPalette = []string{"#f5f1ee", "#e0d6d1", "#bcaaa4", "#8d6e63", "#6d4c41", "#4e342e"}

// DefaultFallbackColor is returned for every lookup when there is no data.
const DefaultFallbackColor = "#cccccc"

// Scheme pairs class breaks with a color ramp.
type Scheme struct {
	breaks     Breaks
	ramp       []string
	fallback   string
	degenerate bool
}

// LegendEntry describes one class: values in (Lower, Upper] get Color. The
// first class has no lower bound beyond Lower and the top class has
// Upper = +Inf.
type LegendEntry struct {
	Class int     `json:"class" yaml:"class"`
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Color string  `json:"color" yaml:"color"`
}

// NewScheme computes k breaks over densities and builds a ramp of
// len(breaks)+1 colors sampled evenly from palette. When densities holds no
// finite value the scheme is degenerate and every color is fallback.
func NewScheme(densities []float64, k int, palette []string, fallback string) Scheme {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if fallback == "" {
		fallback = DefaultFallbackColor
	}

	s := Scheme{
		breaks:     ComputeBreaks(densities, k),
		fallback:   fallback,
		degenerate: !hasFinite(densities),
	}
	s.ramp = sampleRamp(palette, s.breaks.NumClasses())
	return s
}

// Breaks returns a copy of the class thresholds.
func (s Scheme) Breaks() Breaks {
	return append(Breaks(nil), s.breaks...)
}

// Ramp returns a copy of the per-class colors.
func (s Scheme) Ramp() []string {
	return append([]string(nil), s.ramp...)
}

// Degenerate reports whether the scheme was built without any data.
func (s Scheme) Degenerate() bool {
	return s.degenerate
}

// ClassIndex returns the class of d.
func (s Scheme) ClassIndex(d float64) int {
	return s.breaks.ClassIndex(d)
}

// Color returns the fill color for d.
func (s Scheme) Color(d float64) string {
	if s.degenerate || math.IsNaN(d) || len(s.ramp) == 0 {
		return s.fallback
	}
	i := s.ClassIndex(d)
	if i >= len(s.ramp) {
		i = len(s.ramp) - 1
	}
	return s.ramp[i]
}

// Legend returns one entry per class in ascending order.
func (s Scheme) Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, s.breaks.NumClasses())
	lower := 0.0
	if len(s.breaks) > 0 && s.breaks[0] < 0 {
		lower = math.Inf(-1)
	}
	for i := 0; i < s.breaks.NumClasses(); i++ {
		upper := math.Inf(1)
		if i < len(s.breaks) {
			upper = s.breaks[i]
		}
		color := s.fallback
		if !s.degenerate {
			color = s.ramp[i]
		}
		entries = append(entries, LegendEntry{Class: i, Lower: lower, Upper: upper, Color: color})
		lower = upper
	}
	return entries
}

// sampleRamp picks n colors spread evenly across palette, keeping both ends.
func sampleRamp(palette []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{palette[len(palette)-1]}
	}
	out := make([]string, n)
	last := len(palette) - 1
	for i := range out {
		idx := int(math.Round(float64(i) * float64(last) / float64(n-1)))
		out[i] = palette[idx]
	}
	return out
}

func hasFinite(vals []float64) bool {
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes unbounded ends as null.
func (e LegendEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Class int      `json:"class"`
		Lower *float64 `json:"lower"`
		Upper *float64 `json:"upper"`
		Color string   `json:"color"`
	}{
		Class: e.Class,
		Lower: finitePtr(e.Lower),
		Upper: finitePtr(e.Upper),
		Color: e.Color,
	})
}

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
