package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/loader"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate data and load it straight into the database",
	Long: `
Generate synthetic data and insert it into the database without going
through CSV files. Sales reference the customer and product ids that
actually exist in the database after loading.

Examples:
  insight seed --customers 200 --products 40 --sales 5000
  insight seed --truncate --customers 10 --products 5 --sales 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		counts, err := resolveCounts(cmd, cfg)
		if err != nil {
			return err
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

		if truncate, _ := cmd.Flags().GetBool("truncate"); truncate {
			if err := truncateAll(ctx, adapter); err != nil {
				return err
			}
		}

		color.Cyan("🌱 Seeding %d customers, %d products and %d sales", counts.Customers, counts.Products, counts.Sales)
		results, err := loader.New(adapter).Seed(ctx, newGenerator(cmd), counts)
		if err != nil {
			return err
		}

		loader.Summary(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addCountFlags(seedCmd)
	seedCmd.Flags().Bool("truncate", false, "Empty all tables before seeding")
}
