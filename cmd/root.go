package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/approx-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "approx-cli",
	Short: "Accuracy validation for the Hart-approximation math library",
	Long:  "Compares sampled output of the polynomial-approximation implementations of sin, cos, atan, exp, and log against the standard library, reports the maximum absolute error per function, and renders curve and error charts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
