package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/import-formatter/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "importfmt",
	Short: "Formats user spreadsheets for platform import",
	Long:  "Reads exported user lists (CSV or XLSX), maps their columns onto the import template, normalizes every field and writes the import file plus a run report.",
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
