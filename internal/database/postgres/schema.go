package postgres

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/lib/pq"
)

var dialect = common.Dialect{
	PrimaryKey: "SERIAL PRIMARY KEY",
	Types: map[models.Kind]string{
		models.KindText:    "VARCHAR(255)",
		models.KindInteger: "INTEGER",
		models.KindDecimal: "NUMERIC(10, 2)",
		models.KindDate:    "DATE",
	},
}

func (p *Adapter) SchemaSQL() string {
	return fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;\n\n", pq.QuoteIdentifier(p.schema)) +
		common.SchemaScript(models.Entities(), dialect, p.Table)
}

// EnsureSchema creates the schema and tables in one transaction.
func (p *Adapter) EnsureSchema(ctx context.Context) error {
	if !common.IsValidIdentifier(p.schema) {
		return fmt.Errorf("invalid schema name: %s", p.schema)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range common.ParseSQLStatements(p.SchemaSQL()) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}

	return tx.Commit(ctx)
}
