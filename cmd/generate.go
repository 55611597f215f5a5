package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/config"
	"github.com/Lumos-Labs-HQ/insight/internal/csvio"
	"github.com/Lumos-Labs-HQ/insight/internal/prompt"
	"github.com/Lumos-Labs-HQ/insight/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic customers, products and sales",
	Long: `
Generate a synthetic retail dataset and save it as CSV files
(customers.csv, products.csv, sales.csv).

Counts not given as flags are read from the config file or asked for
interactively.

Examples:
  insight generate
  insight generate --customers 100 --products 50 --sales 1000
  insight generate --customers 10 --products 5 --sales 20 --out seeders --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		counts, err := resolveCounts(cmd, cfg)
		if err != nil {
			return err
		}

		ds := newGenerator(cmd).Generate(counts)
		color.Green("✅ Generated %d customers, %d products and %d sales",
			len(ds.Customers), len(ds.Products), len(ds.Sales))
		if ds.SalesSkipped {
			color.Yellow("⚠️  Cannot generate sales data because there are no customers or products")
		}

		save, _ := cmd.Flags().GetBool("yes")
		if !save {
			save, err = prompt.Confirm("Do you want to save the data to CSV files?")
			if err != nil {
				return err
			}
		}
		if !save {
			color.Yellow("⚠️  Data was not saved")
			return nil
		}

		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.OutputDir
		}

		paths, err := csvio.WriteDataset(outDir, ds)
		if err != nil {
			return fmt.Errorf("failed to save CSV files: %w", err)
		}

		color.Green("💾 Data saved to:")
		for _, p := range paths {
			fmt.Printf("   %s\n", p)
		}
		return nil
	},
}

func addCountFlags(cmd *cobra.Command) {
	cmd.Flags().Int("customers", 0, "Number of customers to generate")
	cmd.Flags().Int("products", 0, "Number of products to generate")
	cmd.Flags().Int("sales", 0, "Number of sales to generate")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible data (0 = time based)")
}

// resolveCounts takes each count from its flag, then the config file, then
// an interactive prompt.
func resolveCounts(cmd *cobra.Command, cfg *config.Config) (seeder.Counts, error) {
	var counts seeder.Counts

	fields := []struct {
		flag     string
		fromCfg  int
		question string
		dst      *int
	}{
		{"customers", cfg.Seed.Customers, "How many customers do you want to generate?", &counts.Customers},
		{"products", cfg.Seed.Products, "How many products do you want to generate?", &counts.Products},
		{"sales", cfg.Seed.Sales, "How many sales do you want to generate?", &counts.Sales},
	}

	for _, f := range fields {
		switch {
		case cmd.Flags().Changed(f.flag):
			*f.dst, _ = cmd.Flags().GetInt(f.flag)
		case f.fromCfg > 0:
			*f.dst = f.fromCfg
		default:
			n, err := prompt.Count(f.question)
			if err != nil {
				return counts, err
			}
			*f.dst = n
		}
	}

	if err := seeder.ValidateCounts(counts); err != nil {
		return counts, err
	}
	return counts, nil
}

func newGenerator(cmd *cobra.Command) *seeder.Generator {
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		return seeder.NewGenerator(seeder.WithSeed(seed))
	}
	return seeder.NewGenerator()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addCountFlags(generateCmd)
	generateCmd.Flags().StringP("out", "o", "", "Directory for the CSV files (default from config)")
	generateCmd.Flags().BoolP("yes", "y", false, "Save without asking")
}
