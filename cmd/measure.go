package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/sells-group/densitymap/internal/analysis"
	"github.com/sells-group/densitymap/internal/density"
	"github.com/sells-group/densitymap/internal/report"
)

// place is one end of a measurement.
type place struct {
	label    string
	lat, lng float64
}

var measureCmd = &cobra.Command{
	Use:   "measure <from> <to>",
	Short: "Measure great-circle distance",
	Long:  "Measure the haversine distance between two places. Each place is either \"lat,lng\" or a district name, which resolves to that district's centroid.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, fromOK := parseLatLng(args[0])
		to, toOK := parseLatLng(args[1])

		if !fromOK || !toOK {
			region, err := regionFlag(cmd)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			recs := ds.Records(region)
			if !fromOK {
				if from, err = placeFor(recs, args[0]); err != nil {
					return err
				}
			}
			if !toOK {
				if to, err = placeFor(recs, args[1]); err != nil {
					return err
				}
			}
		}

		n, err := report.NewNumbers(cfg.Report.Locale)
		if err != nil {
			return err
		}
		km := analysis.DistanceKm(from.lat, from.lng, to.lat, to.lng)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %s km\n", from.label, to.label, n.FormatDecimal(km))
		return err
	},
}

// parseLatLng accepts "lat,lng".
func parseLatLng(s string) (place, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return place{}, false
	}
	lat, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	if err != nil || lat < -90 || lat > 90 {
		return place{}, false
	}
	lng, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err != nil || lng < -180 || lng > 180 {
		return place{}, false
	}
	return place{label: s, lat: lat, lng: lng}, true
}

func placeFor(recs []density.Record, query string) (place, error) {
	rec, err := analysis.Search(recs, query)
	if err != nil {
		return place{}, eris.Wrapf(err, "measure: resolve %q", query)
	}
	return place{label: rec.Name, lat: rec.Lat, lng: rec.Lng}, nil
}

func init() {
	rootCmd.AddCommand(measureCmd)
}
