package report

import (
	"github.com/sells-group/densitymap/internal/density"
)

// Row is one district line in a report.
type Row struct {
	Rank       int     `json:"rank" yaml:"rank"`
	Name       string  `json:"name" yaml:"name"`
	Region     string  `json:"region" yaml:"region"`
	Population float64 `json:"population" yaml:"population"`
	AreaKm2    float64 `json:"area_km2" yaml:"area_km2"`
	Density    float64 `json:"density" yaml:"density"`
	Class      int     `json:"class" yaml:"class"`
	Color      string  `json:"color" yaml:"color"`
	Lat        float64 `json:"lat" yaml:"lat"`
	Lng        float64 `json:"lng" yaml:"lng"`
}

// Rows converts records to report rows, ranked in the order given. Class
// and color come from the dataset's global scheme.
func Rows(ds *density.Dataset, recs []density.Record) []Row {
	rows := make([]Row, len(recs))
	for i, r := range recs {
		rows[i] = Row{
			Rank:       i + 1,
			Name:       r.Name,
			Region:     string(r.Region),
			Population: r.Population,
			AreaKm2:    r.AreaKm2,
			Density:    r.Density,
			Lat:        r.Lat,
			Lng:        r.Lng,
		}
		if ds != nil {
			rows[i].Class = ds.ClassIndex(r)
			rows[i].Color = ds.Color(r)
		}
	}
	return rows
}

var rowHeader = []string{"rank", "name", "region", "population", "area_km2", "density", "class", "color", "lat", "lng"}
