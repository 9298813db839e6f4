package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/densitymap/internal/analysis"
	"github.com/sells-group/densitymap/internal/report"
)

var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "List districts ranked by density",
	Long:  "Print every district in the selected region with population, area, density, class and color, densest first.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		w, err := newWriter()
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		recs := ds.Records(region)
		if keep, _ := cmd.Flags().GetBool("dataset-order"); !keep {
			recs = analysis.Ranked(recs)
		}
		rows := report.Rows(ds, recs)

		return withOutput(cmd, func(out io.Writer) error {
			return w.WriteRows(out, rows)
		})
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the densest districts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		w, err := newWriter()
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("n")
		if !cmd.Flags().Changed("n") {
			n = cfg.Report.TopN
		}

		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		rows := report.Rows(ds, analysis.TopDense(ds.Records(region), n))

		return withOutput(cmd, func(out io.Writer) error {
			return w.WriteRows(out, rows)
		})
	},
}

func init() {
	districtsCmd.Flags().Bool("dataset-order", false, "keep file order instead of ranking by density")
	topCmd.Flags().IntP("n", "n", analysis.DefaultTopN, "number of districts (defaults to report.top_n)")
	rootCmd.AddCommand(districtsCmd, topCmd)
}
