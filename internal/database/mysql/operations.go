package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

func (m *Adapter) BulkInsert(ctx context.Context, entity models.Entity, records []models.Record) (int64, error) {
	rows, err := common.Rows(entity, records)
	if err != nil {
		return 0, err
	}
	return common.BulkInsertTx(ctx, m.db, m.qb, m.Table(entity.Name), entity, rows, m.batchSize)
}

func (m *Adapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.QueryContext(ctx, query, args...)
}

func (m *Adapter) QueryReadOnly(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	return common.QueryReadOnlyTx(ctx, m.db, query, fn)
}

func (m *Adapter) GetIDs(ctx context.Context, entity models.Entity) ([]int64, error) {
	query, args, err := m.qb.Select(entity.PrimaryKey).From(m.Table(entity.Name)).OrderBy(entity.PrimaryKey).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return common.ScanIDs(rows)
}

func (m *Adapter) GetTableRowCount(ctx context.Context, entity models.Entity) (int64, error) {
	var count int64
	err := m.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", m.Table(entity.Name))).Scan(&count)
	return count, err
}

// Truncate disables FK checks on a single connection so dependents can be
// emptied in any order.
func (m *Adapter) Truncate(ctx context.Context, entities []models.Entity) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	defer conn.ExecContext(context.Background(), "SET FOREIGN_KEY_CHECKS = 1")

	for i := len(entities) - 1; i >= 0; i-- {
		table := m.Table(entities[i].Name)
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}
