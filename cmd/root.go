package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/densitymap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "densitymap",
	Short: "Population density choropleth for kecamatan datasets",
	Long:  "Loads Kota and Kabupaten subdistrict polygons, derives population density, classifies it into quantile classes and reports rankings, summaries, heat weights and enriched GeoJSON.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applySourceFlags(cmd, c)
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// applySourceFlags lets the global flags override configured values.
func applySourceFlags(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("kota") {
		c.Sources.Kota, _ = cmd.Flags().GetString("kota")
	}
	if cmd.Flags().Changed("kabupaten") {
		c.Sources.Kabupaten, _ = cmd.Flags().GetString("kabupaten")
	}
	if cmd.Flags().Changed("format") {
		c.Report.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("locale") {
		c.Report.Locale, _ = cmd.Flags().GetString("locale")
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("kota", "", "Kota dataset path or URL (overrides sources.kota)")
	pf.String("kabupaten", "", "Kabupaten dataset path or URL (overrides sources.kabupaten)")
	pf.StringP("region", "r", "all", "region to report: kota, kabupaten or all")
	pf.StringP("format", "f", "", "output format: table, csv, json, yaml or xlsx (overrides report.format)")
	pf.String("locale", "", "number locale for table output (overrides report.locale)")
	pf.StringP("out", "o", "", "write output to this file instead of stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
