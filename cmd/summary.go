package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/densitymap/internal/analysis"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize population, area and density",
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

		s := analysis.Summarize(ds.Records(region))
		return withOutput(cmd, func(out io.Writer) error {
			return w.WriteSummary(out, s)
		})
	},
}

var breaksCmd = &cobra.Command{
	Use:   "breaks",
	Short: "Show the density class breaks and colors",
	Long:  "Print the legend: one line per class with its density bounds and fill color. Breaks are computed over both regions combined.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w, err := newWriter()
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		legend := ds.Scheme().Legend()
		return withOutput(cmd, func(out io.Writer) error {
			return w.WriteLegend(out, legend)
		})
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd, breaksCmd)
}
