package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/insight/internal/report"
	"github.com/spf13/cobra"
)

var visualizeCmd = &cobra.Command{
	Use:     "visualize",
	Aliases: []string{"viz"},
	Short:   "Draw terminal charts of the analytics results",
	Long: `
Draw bar charts for the top-selling products, the monthly sales trend
(in calendar order) and the share of sales by customer gender.

Examples:
  insight visualize
  insight viz --year 2024 --limit 10`,
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

		tables, err := newAnalyzer(cmd, adapter, cfg).All(ctx)
		if err != nil {
			return err
		}

		fmt.Println()
		return report.Visualize(os.Stdout, tables)
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
	addAnalyticsFlags(visualizeCmd)
}
