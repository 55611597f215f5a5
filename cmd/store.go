package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/analytics"
	"github.com/Lumos-Labs-HQ/insight/internal/config"
	"github.com/Lumos-Labs-HQ/insight/internal/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

// connectStore opens and pings the configured database. Callers own the
// returned adapter and must Close it.
func connectStore(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	adapter := database.NewAdapter(cfg.Database.Provider, database.Options{
		Schema:    cfg.Database.Schema,
		BatchSize: cfg.Seed.Batch,
	})

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	color.Cyan("🎯 Database: %s", adapter.Provider())
	return adapter, nil
}

func addAnalyticsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", 0, "Minimum total spend for the spend query (default from config)")
	cmd.Flags().Int("year", 0, "Year for the monthly trend (default from config)")
	cmd.Flags().Int("limit", 0, "Number of top products (default from config)")
}

// newAnalyzer applies flag overrides on top of the analytics config.
func newAnalyzer(cmd *cobra.Command, adapter database.DatabaseAdapter, cfg *config.Config) *analytics.Analyzer {
	opts := analytics.Options{
		SpendThreshold: cfg.Analytics.SpendThreshold,
		TrendYear:      cfg.Analytics.TrendYear,
		TopLimit:       cfg.Analytics.TopLimit,
	}

	if v, _ := cmd.Flags().GetFloat64("threshold"); v > 0 {
		opts.SpendThreshold = v
	}
	if v, _ := cmd.Flags().GetInt("year"); v > 0 {
		opts.TrendYear = v
	}
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		opts.TopLimit = v
	}

	return analytics.New(adapter, opts)
}
