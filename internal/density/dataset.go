package density

import (
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/densitymap/internal/classify"
	"github.com/sells-group/densitymap/internal/heat"
)

// SchemeOptions configures the global class scheme.
type SchemeOptions struct {
	Classes  int
	Palette  []string
	Fallback string
}

// DefaultSchemeOptions returns five quantile classes over the brown palette.
func DefaultSchemeOptions() SchemeOptions {
	return SchemeOptions{
		Classes:  classify.DefaultClasses,
		Palette:  classify.DefaultPalette,
		Fallback: classify.DefaultFallbackColor,
	}
}

// Dataset is the enriched, classified result of one load. It is immutable;
// a reload builds a new Dataset.
type Dataset struct {
	byRegion map[Region][]Record
	all      []Record
	scheme   classify.Scheme
}

// Build enriches every feature once and computes the class scheme over the
// combined density distribution of all regions.
func Build(e *Enricher, opts SchemeOptions, features map[Region][]*geojson.Feature) *Dataset {
	if e == nil {
		e = NewEnricher()
	}
	log := zap.L().With(zap.String("component", "density.build"))

	ds := &Dataset{byRegion: make(map[Region][]Record, len(SourceRegions))}
	for _, region := range SourceRegions {
		fs := features[region]
		recs := make([]Record, 0, len(fs))
		for _, f := range fs {
			rec := e.Enrich(region, f)
			rec.Index = len(ds.all) + len(recs)
			recs = append(recs, rec)
		}
		ds.byRegion[region] = recs
		ds.all = append(ds.all, recs...)
		log.Debug("enriched region", zap.String("region", string(region)), zap.Int("features", len(recs)))
	}

	densities := make([]float64, len(ds.all))
	for i, r := range ds.all {
		densities[i] = r.Density
	}
	ds.scheme = classify.NewScheme(densities, opts.Classes, opts.Palette, opts.Fallback)

	warnDataQuality(log, ds.all)
	return ds
}

func warnDataQuality(log *zap.Logger, recs []Record) {
	if len(recs) == 0 {
		log.Warn("dataset has no features")
		return
	}
	popZero, areaZero := true, true
	for _, r := range recs {
		if r.Population > 0 {
			popZero = false
		}
		if r.AreaKm2 > 0 {
			areaZero = false
		}
	}
	if popZero {
		log.Warn("every feature has zero population; check population field names",
			zap.Int("features", len(recs)))
	}
	if areaZero {
		log.Warn("every feature has zero area; check geometry types",
			zap.Int("features", len(recs)))
	}
}

// Records returns a copy of the records for region. RegionAll yields Kota
// records followed by Kabupaten records.
func (d *Dataset) Records(region Region) []Record {
	var src []Record
	if region == RegionAll {
		src = d.all
	} else {
		src = d.byRegion[region]
	}
	out := make([]Record, len(src))
	copy(out, src)
	return out
}

// Len returns the number of records in region.
func (d *Dataset) Len(region Region) int {
	if region == RegionAll {
		return len(d.all)
	}
	return len(d.byRegion[region])
}

// Scheme returns the global class scheme.
func (d *Dataset) Scheme() classify.Scheme {
	return d.scheme
}

// ClassIndex returns the class of rec under the global scheme.
func (d *Dataset) ClassIndex(rec Record) int {
	return d.scheme.ClassIndex(rec.Density)
}

// Color returns the fill color of rec under the global scheme.
func (d *Dataset) Color(rec Record) string {
	return d.scheme.Color(rec.Density)
}

// Heat computes heat weights for region. Each region is normalized against
// its own distribution.
func (d *Dataset) Heat(region Region, opts heat.Options) []heat.Point {
	recs := d.Records(region)
	samples := make([]heat.Sample, len(recs))
	for i, r := range recs {
		samples[i] = heat.Sample{Lat: r.Lat, Lng: r.Lng, Density: r.Density}
	}
	return heat.BuildWeights(samples, opts)
}
