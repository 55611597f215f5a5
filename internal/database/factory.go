package database

import (
	"github.com/Lumos-Labs-HQ/insight/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/insight/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/insight/internal/database/sqlite"
)

// Options tune adapters; zero values fall back to each adapter's defaults.
type Options struct {
	Schema    string
	BatchSize int
}

func NewAdapter(provider string, opts Options) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(opts.Schema)
	case "mysql":
		return mysql.New(opts.BatchSize)
	case "sqlite", "sqlite3":
		return sqlite.New(opts.BatchSize)
	default:
		return postgres.New(opts.Schema)
	}
}
