package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

func (s *Adapter) BulkInsert(ctx context.Context, entity models.Entity, records []models.Record) (int64, error) {
	rows, err := common.Rows(entity, records)
	if err != nil {
		return 0, err
	}
	return common.BulkInsertTx(ctx, s.db, s.qb, s.Table(entity.Name), entity, rows, s.batchSize)
}

func (s *Adapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// QueryReadOnly pins one connection and turns on query_only for the
// duration of the call. The driver ignores read-only transaction options.
func (s *Adapter) QueryReadOnly(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return fmt.Errorf("failed to enter read-only mode: %w", err)
	}
	defer conn.ExecContext(context.Background(), "PRAGMA query_only = OFF")

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := fn(rows); err != nil {
		return err
	}
	return rows.Err()
}

func (s *Adapter) GetIDs(ctx context.Context, entity models.Entity) ([]int64, error) {
	query, args, err := s.qb.Select(entity.PrimaryKey).From(s.Table(entity.Name)).OrderBy(entity.PrimaryKey).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return common.ScanIDs(rows)
}

func (s *Adapter) GetTableRowCount(ctx context.Context, entity models.Entity) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.Table(entity.Name))).Scan(&count)
	return count, err
}

// Truncate deletes dependents first and resets the AUTOINCREMENT counters.
func (s *Adapter) Truncate(ctx context.Context, entities []models.Entity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := len(entities) - 1; i >= 0; i-- {
		table := s.Table(entities[i].Name)
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}

	return tx.Commit()
}
