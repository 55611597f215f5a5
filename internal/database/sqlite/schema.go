package sqlite

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

var dialect = common.Dialect{
	PrimaryKey: "INTEGER PRIMARY KEY AUTOINCREMENT",
	Types: map[models.Kind]string{
		models.KindText:    "TEXT",
		models.KindInteger: "INTEGER",
		models.KindDecimal: "NUMERIC",
		models.KindDate:    "TEXT",
	},
}

func (s *Adapter) SchemaSQL() string {
	return common.SchemaScript(models.Entities(), dialect, s.Table)
}

func (s *Adapter) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range common.ParseSQLStatements(s.SchemaSQL()) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}

	return tx.Commit()
}
