package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/densitymap/internal/density"
	"github.com/sells-group/densitymap/internal/loader"
	"github.com/sells-group/densitymap/internal/report"
)

// loadDataset fetches both sources and builds the enriched dataset. Only
// the fetch honors SIGINT/SIGTERM; enrichment is synchronous.
func loadDataset(cmd *cobra.Command) (*density.Dataset, error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(
		zap.String("component", "cmd.load"),
		zap.String("load_id", uuid.NewString()),
	)

	opts := cfg.LoaderOptions()
	log.Info("loading sources", zap.String("kota", opts.Kota), zap.String("kabupaten", opts.Kabupaten))

	start := time.Now()
	features, err := loader.Load(ctx, opts)
	if err != nil {
		log.Error("load failed", zap.Error(err))
		return nil, eris.Wrap(err, "load dataset")
	}

	ds := density.Build(cfg.Enricher(), cfg.SchemeOptions(), features)
	log.Info("dataset ready",
		zap.Int("kota", ds.Len(density.RegionKota)),
		zap.Int("kabupaten", ds.Len(density.RegionKabupaten)),
		zap.Float64s("breaks", ds.Scheme().Breaks()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}

// regionFlag parses the --region flag.
func regionFlag(cmd *cobra.Command) (density.Region, error) {
	s, _ := cmd.Flags().GetString("region")
	return density.ParseRegion(s)
}

// newWriter builds a report writer from the configured format and locale.
func newWriter() (*report.Writer, error) {
	return report.NewWriter(cfg.Report.Format, cfg.Report.Locale)
}

// output returns the destination for command output and a function that
// closes it.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, f.Close, nil
}

// withOutput runs fn against the command's output destination.
func withOutput(cmd *cobra.Command, fn func(io.Writer) error) error {
	out, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := fn(out); err != nil {
		_ = closeFn()
		return err
	}
	return eris.Wrap(closeFn(), "close output")
}
