package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/loader"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load CSV files into the database",
	Long: `
Load customers.csv, products.csv and sales.csv from a directory
(default: seeders_dir from the config, usually ./seeders).

Each file is loaded in a single transaction. A missing or failing file is
reported and rolled back, and the remaining files are still loaded.

Examples:
  insight load
  insight load ./data`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.SeedersDir
		if len(args) == 1 {
			dir = args[0]
		}

		ctx := context.Background()
		adapter, err := connectStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		if err := adapter.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		color.Cyan("📂 Loading CSV files from %s", dir)
		results, err := loader.New(adapter).LoadDir(ctx, dir)
		if err != nil {
			return err
		}

		loader.Summary(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
