package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/insight/internal/report"
	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw <sql|sql-file>",
	Short: "Run an ad-hoc read-only query",
	Long: `
Run a SELECT (or WITH/EXPLAIN) statement against the database and print the
result. The argument may be the SQL text itself or a path to a .sql file.

Examples:
  insight raw "SELECT city, COUNT(*) FROM customers GROUP BY city"
  insight raw queries/top_cities.sql`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		if _, err := os.Stat(query); err == nil {
			content, err := os.ReadFile(query)
			if err != nil {
				return fmt.Errorf("failed to read SQL file: %w", err)
			}
			query = string(content)
		}

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

		fmt.Println("⚡ Executing query...")
		table, err := newAnalyzer(cmd, adapter, cfg).Raw(ctx, query)
		if err != nil {
			return err
		}

		fmt.Println()
		return report.RenderTable(os.Stdout, table)
	},
}

func init() {
	rootCmd.AddCommand(rawCmd)
}
