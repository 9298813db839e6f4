package main

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/densitymap/internal/analysis"
	"github.com/sells-group/densitymap/internal/report"
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find a district by name",
	Long:  "Case-insensitive substring search over district names. The first match in dataset order (Kota before Kabupaten) is shown.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		query := strings.Join(args, " ")
		rec, err := analysis.Search(ds.Records(region), query)
		if err != nil {
			return eris.Wrapf(err, "search: %q", query)
		}

		// Report the match with its rank in the region.
		ranked := analysis.Ranked(ds.Records(region))
		rows := report.Rows(ds, ranked)
		var found []report.Row
		for i, r := range ranked {
			if r.Index == rec.Index {
				found = rows[i : i+1]
				break
			}
		}

		return withOutput(cmd, func(out io.Writer) error {
			return w.WriteRows(out, found)
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
