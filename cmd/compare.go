package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/approx-cli/internal/compare"
	"github.com/sells-group/approx-cli/internal/model"
	"github.com/sells-group/approx-cli/internal/render"
	"github.com/sells-group/approx-cli/internal/sample"
)

var (
	compareDataDir string
	comparePlots   bool
	comparePlotDir string
	compareNoStore bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the approximation datasets against their libm references",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dataDir := compareDataDir
		if dataDir == "" {
			dataDir = cfg.Data.Dir
		}
		specs := model.DefaultSpecs(dataDir)

		loader := sample.NewLoader(sample.WithHTTPSource(sample.NewHTTPSource(sample.HTTPOptions{
			UserAgent:  cfg.HTTP.UserAgent,
			Timeout:    time.Duration(cfg.HTTP.TimeoutSecs) * time.Second,
			MaxRetries: cfg.HTTP.MaxRetries,
			RateLimit:  rate.Limit(cfg.HTTP.RateLimit),
		})))

		var renderer compare.Renderer
		if comparePlots {
			plotDir := comparePlotDir
			if plotDir == "" {
				plotDir = cfg.Plot.Dir
			}
			if err := os.MkdirAll(plotDir, 0o755); err != nil {
				return eris.Wrapf(err, "create plot dir %s", plotDir)
			}
			renderer = render.NewPlotRenderer(plotDir)
		}

		pipeline := compare.New(loader, renderer, os.Stdout)

		if compareNoStore {
			_, err := pipeline.Run(specs)
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		run, err := st.CreateRun(ctx, dataDir)
		if err != nil {
			return eris.Wrap(err, "create run")
		}

		reports, err := pipeline.Run(specs)
		if err != nil {
			if failErr := st.FailRun(ctx, run.ID, err.Error()); failErr != nil {
				zap.L().Warn("failed to record run failure", zap.Error(failErr))
			}
			return err
		}

		results := make([]model.RunResult, 0, len(reports))
		for _, report := range reports {
			results = append(results, model.NewRunResult(report))
		}
		if err := st.CompleteRun(ctx, run.ID, results); err != nil {
			return eris.Wrap(err, "complete run")
		}

		zap.L().Info("comparison complete",
			zap.String("run_id", run.ID),
			zap.Int("functions", len(reports)),
		)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareDataDir, "data-dir", "", "directory holding the sample datasets (default from config)")
	compareCmd.Flags().BoolVar(&comparePlots, "plots", false, "render function and error charts")
	compareCmd.Flags().StringVar(&comparePlotDir, "plot-dir", "", "directory for chart output (default from config)")
	compareCmd.Flags().BoolVar(&compareNoStore, "no-store", false, "skip persisting the run")
	rootCmd.AddCommand(compareCmd)
}
