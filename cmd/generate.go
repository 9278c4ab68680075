package main

import (
	"math"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/approx-cli/internal/approx"
	"github.com/sells-group/approx-cli/internal/model"
	"github.com/sells-group/approx-cli/internal/sample"
)

var (
	generateOutDir  string
	generateFrom    float64
	generateTo      float64
	generateSamples int
)

// functionPairs maps each function to its implementation under test and its
// libm reference.
var functionPairs = map[model.FunctionName]struct {
	custom    func(float64) float64
	reference func(float64) float64
}{
	model.FuncSin:  {approx.Sin, math.Sin},
	model.FuncCos:  {approx.Cos, math.Cos},
	model.FuncAtan: {approx.Atan, math.Atan},
	model.FuncExp:  {approx.Exp, math.Exp},
	model.FuncLog:  {approx.Log, math.Log},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the ten sample datasets (approximation and libm)",
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := generateOutDir
		if outDir == "" {
			outDir = cfg.Data.Dir
		}
		from, to, samples := generateFrom, generateTo, generateSamples
		if !cmd.Flags().Changed("from") {
			from = cfg.Generate.From
		}
		if !cmd.Flags().Changed("to") {
			to = cfg.Generate.To
		}
		if !cmd.Flags().Changed("samples") {
			samples = cfg.Generate.Samples
		}
		if samples <= 0 {
			return eris.Errorf("samples must be positive, got %d", samples)
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrapf(err, "create output dir %s", outDir)
		}

		xs := approx.Grid(from, to, samples)

		// Each function's pair of files is independent, so generation fans
		// out per function.
		g := new(errgroup.Group)
		for _, spec := range model.DefaultSpecs(outDir) {
			pair, ok := functionPairs[spec.Name]
			if !ok {
				return eris.Errorf("no generator for function %s", spec.Name)
			}
			g.Go(func() error {
				if err := writeDataset(spec.CustomSource, xs, pair.custom); err != nil {
					return err
				}
				return writeDataset(spec.ReferenceSource, xs, pair.reference)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("datasets generated",
			zap.String("dir", outDir),
			zap.Int("points", len(xs)),
			zap.Float64("from", from),
			zap.Float64("to", to),
		)
		return nil
	},
}

func writeDataset(path string, xs []float64, f func(float64) float64) error {
	set := model.SampleSet{X: xs, Y: make([]float64, len(xs))}
	for i, x := range xs {
		set.Y[i] = f(x)
	}
	if err := sample.WriteFile(path, set); err != nil {
		return eris.Wrapf(err, "generate %s", filepath.Base(path))
	}
	return nil
}

func init() {
	generateCmd.Flags().StringVar(&generateOutDir, "out-dir", "", "directory for generated datasets (default from config)")
	generateCmd.Flags().Float64Var(&generateFrom, "from", -10.0, "start of the sampling interval")
	generateCmd.Flags().Float64Var(&generateTo, "to", 10.0, "end of the sampling interval")
	generateCmd.Flags().IntVar(&generateSamples, "samples", 1000000, "number of sampling steps")
	rootCmd.AddCommand(generateCmd)
}
