// Package density enriches subdistrict features with population, area and
// density, and holds the enriched dataset with its global class scheme.
package density

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"

	"github.com/sells-group/densitymap/internal/area"
	"github.com/sells-group/densitymap/internal/attrs"
)

// Region identifies one of the two source partitions, or their union.
type Region string

// Regions.
const (
	RegionKota      Region = "Kota"
	RegionKabupaten Region = "Kabupaten"
	RegionAll       Region = "All"
)

// SourceRegions lists the partitions loaded from input, in dataset order.
var SourceRegions = []Region{RegionKota, RegionKabupaten}

// ParseRegion accepts a region name case-insensitively. "all" and the empty
// string select RegionAll.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "gabungan":
		return RegionAll, nil
	case "kota", "city":
		return RegionKota, nil
	case "kabupaten", "kab", "regency":
		return RegionKabupaten, nil
	default:
		return "", eris.Errorf("density: unknown region %q", s)
	}
}

// Record is one enriched subdistrict. Derived values are computed once when
// the dataset is built.
type Record struct {
	// Index is the record's position in the combined dataset order. It
	// identifies a record even when names repeat.
	Index      int
	Name       string
	Region     Region
	Population float64
	AreaKm2    float64
	Density    float64
	Lat        float64
	Lng        float64
	Geometry   geom.T
	Properties map[string]any
}

// Enricher derives Records from raw features.
type Enricher struct {
	Resolver attrs.Resolver
	Area     area.Options
}

// NewEnricher returns an Enricher with default field resolution and area
// heuristics.
func NewEnricher() *Enricher {
	return &Enricher{
		Resolver: attrs.NewResolver(),
		Area:     area.DefaultOptions(),
	}
}

// Enrich computes population, area, density and centroid for one feature.
// It never fails: unreadable input degrades to zeros.
func (e *Enricher) Enrich(region Region, f *geojson.Feature) Record {
	rec := Record{Region: region}
	if f == nil {
		rec.Name = e.Resolver.Name(nil)
		return rec
	}

	rec.Properties = f.Properties
	rec.Geometry = f.Geometry
	rec.Name = e.Resolver.Name(f.Properties)
	rec.Population = e.Resolver.Population(f.Properties)
	rec.AreaKm2 = area.Km2(f.Geometry, e.Area)
	rec.Density = Density(rec.Population, rec.AreaKm2)
	rec.Lat, rec.Lng = Centroid(f.Geometry)
	return rec
}

// Density returns population per square kilometer, or 0 when the area is
// not positive or the quotient is not finite.
func Density(population, areaKm2 float64) float64 {
	if !(areaKm2 > 0) {
		return 0
	}
	d := population / areaKm2
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

// Centroid returns the area-weighted centroid of a Polygon or MultiPolygon
// as (lat, lng). Empty or unsupported geometries yield (0, 0).
func Centroid(g geom.T) (lat, lng float64) {
	var polys []*geom.Polygon
	switch t := g.(type) {
	case *geom.Polygon:
		polys = append(polys, t)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			polys = append(polys, t.Polygon(i))
		}
	default:
		return 0, 0
	}

	var calc *xy.AreaCentroidCalculator
	for _, p := range polys {
		if p.Stride() < 2 || p.NumLinearRings() == 0 || p.LinearRing(0).NumCoords() == 0 {
			continue
		}
		if calc == nil {
			calc = xy.NewAreaCentroidCalculator(p.Layout())
		}
		calc.AddPolygon(p)
	}
	if calc == nil {
		return 0, 0
	}

	c := calc.GetCentroid()
	if len(c) < 2 || math.IsNaN(c[0]) || math.IsNaN(c[1]) || math.IsInf(c[0], 0) || math.IsInf(c[1], 0) {
		return 0, 0
	}
	return c[1], c[0]
}
