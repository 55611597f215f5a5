package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
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

		fmt.Println()
		color.Cyan("📋 Tables:")
		for _, entity := range models.Entities() {
			count, err := adapter.GetTableRowCount(ctx, entity)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", entity.Name, err)
			}
			fmt.Printf("   %-12s %d rows\n", adapter.Table(entity.Name), count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
