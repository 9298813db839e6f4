package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/densitymap/internal/heat"
)

var heatCmd = &cobra.Command{
	Use:   "heat",
	Short: "Compute heatmap weights",
	Long:  "Emit one weighted point per district centroid. Weights are normalized within the selected region and never drop below the configured floor.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		w, err := newWriter()
		if err != nil {
			return err
		}

		opts := cfg.HeatOptions()
		if cmd.Flags().Changed("strategy") {
			s, _ := cmd.Flags().GetString("strategy")
			if opts.Strategy, err = heat.ParseStrategy(s); err != nil {
				return err
			}
		}

		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		points := ds.Heat(region, opts)
		return withOutput(cmd, func(out io.Writer) error {
			return w.WriteHeat(out, points)
		})
	},
}

func init() {
	heatCmd.Flags().String("strategy", string(heat.StrategyPercentile), "normalization: percentile or max (overrides heat.strategy)")
	rootCmd.AddCommand(heatCmd)
}
