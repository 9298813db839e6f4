// Package analysis ranks, searches and summarizes enriched districts.
package analysis

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"

	"github.com/sells-group/densitymap/internal/density"
)

// DefaultTopN is the size of the densest-districts list.
const DefaultTopN = 10

// Search errors.
var (
	ErrEmptyQuery = eris.New("analysis: empty search query")
	ErrNotFound   = eris.New("analysis: no district matches query")
)

// Ranked returns a copy of recs sorted by density, densest first. Ties are
// broken by name so the order is deterministic.
func Ranked(recs []density.Record) []density.Record {
	out := make([]density.Record, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Density != out[j].Density {
			return out[i].Density > out[j].Density
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopDense returns the n densest records. n <= 0 selects DefaultTopN.
func TopDense(recs []density.Record, n int) []density.Record {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := Ranked(recs)
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Search returns the first record, in dataset order, whose name contains
// query case-insensitively.
func Search(recs []density.Record, query string) (density.Record, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return density.Record{}, ErrEmptyQuery
	}
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), q) {
			return r, nil
		}
	}
	return density.Record{}, ErrNotFound
}

// Summary aggregates a set of records.
type Summary struct {
	Count           int     `json:"count" yaml:"count"`
	TotalPopulation float64 `json:"total_population" yaml:"total_population"`
	TotalAreaKm2    float64 `json:"total_area_km2" yaml:"total_area_km2"`
	AverageDensity  float64 `json:"average_density" yaml:"average_density"`
	ZeroPopulation  int     `json:"zero_population" yaml:"zero_population"`
	MaxDensity      float64 `json:"max_density" yaml:"max_density"`
	Densest         string  `json:"densest,omitempty" yaml:"densest,omitempty"`
}

// Summarize totals population and area. AverageDensity is total population
// over total area, not the mean of per-district densities.
func Summarize(recs []density.Record) Summary {
	s := Summary{Count: len(recs)}
	if len(recs) == 0 {
		return s
	}

	pops := make([]float64, len(recs))
	areas := make([]float64, len(recs))
	for i, r := range recs {
		pops[i] = r.Population
		areas[i] = r.AreaKm2
		if r.Population <= 0 {
			s.ZeroPopulation++
		}
	}
	s.TotalPopulation = floats.Sum(pops)
	s.TotalAreaKm2 = floats.Sum(areas)
	s.AverageDensity = density.Density(s.TotalPopulation, s.TotalAreaKm2)

	top := Ranked(recs)[0]
	s.MaxDensity = top.Density
	if top.Density > 0 {
		s.Densest = top.Name
	}
	return s
}

// DistanceKm returns the great-circle distance between two (lat, lng)
// points in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return geo.DistanceHaversine(orb.Point{lng1, lat1}, orb.Point{lng2, lat2}) / 1000
}

// RecordDistanceKm measures between the centroids of two records.
func RecordDistanceKm(a, b density.Record) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}
