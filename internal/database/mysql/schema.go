package mysql

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

var dialect = common.Dialect{
	PrimaryKey: "INT AUTO_INCREMENT PRIMARY KEY",
	Types: map[models.Kind]string{
		models.KindText:    "VARCHAR(255)",
		models.KindInteger: "INT",
		models.KindDecimal: "DECIMAL(10, 2)",
		models.KindDate:    "DATE",
	},
	TableOptions: "ENGINE=InnoDB",
}

func (m *Adapter) SchemaSQL() string {
	return common.SchemaScript(models.Entities(), dialect, m.Table)
}

// EnsureSchema runs each CREATE TABLE on its own; MySQL commits DDL implicitly.
func (m *Adapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range common.ParseSQLStatements(m.SchemaSQL()) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}
