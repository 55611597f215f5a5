package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and tables",
	Long: `
Create the store_analytics tables (and the Postgres schema) if they do not
exist yet. Safe to run repeatedly.

Examples:
  insight migrate
  insight migrate --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			adapter := database.NewAdapter(cfg.Database.Provider, database.Options{Schema: cfg.Database.Schema})
			fmt.Println(adapter.SchemaSQL())
			return nil
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

		color.Green("✅ Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("dry-run", false, "Print the DDL without running it")
}
