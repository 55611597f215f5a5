package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const FileName = "insight.config.json"

var SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

type Config struct {
	Version    string    `json:"version" mapstructure:"version"`
	SeedersDir string    `json:"seeders_dir" mapstructure:"seeders_dir"`
	OutputDir  string    `json:"output_dir" mapstructure:"output_dir"`
	ExportPath string    `json:"export_path" mapstructure:"export_path"`
	Database   Database  `json:"database" mapstructure:"database"`
	Seed       Seed      `json:"seed" mapstructure:"seed"`
	Analytics  Analytics `json:"analytics" mapstructure:"analytics"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Schema   string `json:"schema,omitempty" mapstructure:"schema"` // postgres only
}

type Seed struct {
	Batch     int `json:"batch,omitempty" mapstructure:"batch"`
	Customers int `json:"customers,omitempty" mapstructure:"customers"`
	Products  int `json:"products,omitempty" mapstructure:"products"`
	Sales     int `json:"sales,omitempty" mapstructure:"sales"`
}

type Analytics struct {
	SpendThreshold float64 `json:"spend_threshold" mapstructure:"spend_threshold"`
	TrendYear      int     `json:"trend_year" mapstructure:"trend_year"`
	TopLimit       int     `json:"top_limit" mapstructure:"top_limit"`
}

// Load reads the process-wide viper instance populated by the root command.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.SeedersDir == "" {
		c.SeedersDir = "seeders"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ExportPath == "" {
		c.ExportPath = "insight_export"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	c.Database.Provider = strings.ToLower(c.Database.Provider)
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Seed.Batch <= 0 {
		c.Seed.Batch = 500
	}
	if c.Analytics.SpendThreshold <= 0 {
		c.Analytics.SpendThreshold = 10000
	}
	if c.Analytics.TrendYear <= 0 {
		c.Analytics.TrendYear = 2025
	}
	if c.Analytics.TopLimit <= 0 {
		c.Analytics.TopLimit = 5
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.OutputDir,
		c.ExportPath,
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range SupportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, SupportedProviders)
	}

	if c.SeedersDir == "" {
		return fmt.Errorf("seeders_dir cannot be empty")
	}

	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	if c.Seed.Customers < 0 || c.Seed.Products < 0 || c.Seed.Sales < 0 {
		return fmt.Errorf("seed counts cannot be negative")
	}

	return nil
}
