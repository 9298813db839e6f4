package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/densitymap/internal/density"
)

// Properties added to every exported feature.
const (
	PropName       = "name"
	PropRegion     = "region"
	PropPopulation = "population"
	PropAreaKm2    = "area_km2"
	PropDensity    = "density"
	PropClass      = "class"
	PropColor      = "color"
)

// FeatureCollection rebuilds the source features of recs with the derived
// values added to their properties. Source properties are copied, never
// mutated.
func FeatureCollection(ds *density.Dataset, recs []density.Record) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(recs))}
	for _, r := range recs {
		props := make(map[string]any, len(r.Properties)+7)
		for k, v := range r.Properties {
			props[k] = v
		}
		props[PropName] = r.Name
		props[PropRegion] = string(r.Region)
		props[PropPopulation] = r.Population
		props[PropAreaKm2] = r.AreaKm2
		props[PropDensity] = r.Density
		if ds != nil {
			props[PropClass] = ds.ClassIndex(r)
			props[PropColor] = ds.Color(r)
		}
		fc.Features = append(fc.Features, &geojson.Feature{Geometry: r.Geometry, Properties: props})
	}
	return fc
}

// WriteGeoJSON encodes the enriched feature collection to out.
func WriteGeoJSON(out io.Writer, ds *density.Dataset, recs []density.Record) error {
	data, err := json.Marshal(FeatureCollection(ds, recs))
	if err != nil {
		return eris.Wrap(err, "report: encode geojson")
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "report: write geojson")
	}
	return nil
}
