package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/insight/internal/analytics"
	"github.com/Lumos-Labs-HQ/insight/internal/report"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [name|all]",
	Short: "Run the analytics queries",
	Long: fmt.Sprintf(`
Run one of the aggregate queries, or all of them, and print the results.

Available queries: %s

Examples:
  insight query
  insight query spend --threshold 5000
  insight query monthly --year 2024
  insight query top-products --limit 10`, strings.Join(analytics.Names(), ", ")),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: append(analytics.Names(), "all"),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "all"
		if len(args) == 1 {
			name = args[0]
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

		tables, err := runQueries(ctx, newAnalyzer(cmd, adapter, cfg), name)
		if err != nil {
			return err
		}

		fmt.Println()
		return report.RenderTables(os.Stdout, tables)
	},
}

func runQueries(ctx context.Context, a *analytics.Analyzer, name string) ([]*analytics.Table, error) {
	if name == "all" {
		return a.All(ctx)
	}

	q, err := a.Lookup(name)
	if err != nil {
		return nil, err
	}

	t, err := q(ctx)
	if err != nil {
		return nil, err
	}
	return []*analytics.Table{t}, nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	addAnalyticsFlags(queryCmd)
}
