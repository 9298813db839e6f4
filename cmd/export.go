package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/densitymap/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write enriched GeoJSON",
	Long:  "Write the selected region as a GeoJSON FeatureCollection with name, region, population, area_km2, density, class and color added to each feature's properties.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		recs := ds.Records(region)
		return withOutput(cmd, func(out io.Writer) error {
			return report.WriteGeoJSON(out, ds, recs)
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
