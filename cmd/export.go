package cmd

import (
	"context"

	"github.com/Lumos-Labs-HQ/insight/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [name|all]",
	Short: "Export analytics results",
	Long: `
Run the analytics queries and write the results to export_path.
Supported formats: json (default), csv, yaml

Examples:
  insight export
  insight export --csv
  insight export spend --yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "all"
		if len(args) == 1 {
			name = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		format := "json"
		if csv, _ := cmd.Flags().GetBool("csv"); csv {
			format = "csv"
		} else if yaml, _ := cmd.Flags().GetBool("yaml"); yaml {
			format = "yaml"
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

		exportPath, err := report.Export(cfg.ExportPath, format, tables...)
		if err != nil {
			return err
		}

		color.Green("✅ Export completed: %s", exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addAnalyticsFlags(exportCmd)
	exportCmd.Flags().BoolP("json", "j", false, "Export as JSON (default)")
	exportCmd.Flags().BoolP("csv", "c", false, "Export as CSV")
	exportCmd.Flags().BoolP("yaml", "y", false, "Export as YAML")
}
