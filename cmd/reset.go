package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Lumos-Labs-HQ/insight/internal/prompt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all rows from every table",
	Long: `
Empty the customers, products and sales tables and restart their ids at 1.
The tables themselves are kept.

⚠️  WARNING: This will permanently delete all data in these tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			ok, err := prompt.Confirm("This will delete all customers, products and sales. Continue?")
			if err != nil {
				return err
			}
			if !ok {
				color.Yellow("⚠️  Reset cancelled")
				return nil
			}
		}

		ctx := context.Background()
		adapter, err := connectStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		return truncateAll(ctx, adapter)
	},
}

func truncateAll(ctx context.Context, adapter database.DatabaseAdapter) error {
	if err := adapter.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := adapter.Truncate(ctx, models.Entities()); err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}

	color.Green("✅ All tables emptied")
	return nil
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
