package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bestball",
	Short: "Best-ball playoff tracker scoring and projection engine",
	Long:  "Scores raw box-score stats under a configurable rule set, blends sportsbook props with historical performance into projections, and composes bracket expected value per owner.",
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
