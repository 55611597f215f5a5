package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// BulkInsert streams all records with COPY inside a single transaction.
func (p *Adapter) BulkInsert(ctx context.Context, entity models.Entity, records []models.Record) (int64, error) {
	rows, err := common.Rows(entity, records)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		for i, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				row[i] = pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
			}
		}
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{p.schema, entity.Name}, entity.ColumnNames(), pgx.CopyFromRows(rows))
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return n, nil
}

func (p *Adapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return p.db.QueryContext(ctx, query, args...)
}

func (p *Adapter) QueryReadOnly(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	return common.QueryReadOnlyTx(ctx, p.db, query, fn)
}

func (p *Adapter) GetIDs(ctx context.Context, entity models.Entity) ([]int64, error) {
	query, args, err := p.qb.Select(entity.PrimaryKey).From(p.Table(entity.Name)).OrderBy(entity.PrimaryKey).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return common.ScanIDs(rows)
}

func (p *Adapter) GetTableRowCount(ctx context.Context, entity models.Entity) (int64, error) {
	var count int64
	err := p.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", p.Table(entity.Name))).Scan(&count)
	return count, err
}

func (p *Adapter) Truncate(ctx context.Context, entities []models.Entity) error {
	if len(entities) == 0 {
		return nil
	}
	tables := make([]string, len(entities))
	for i, e := range entities {
		tables[i] = p.Table(e.Name)
	}
	_, err := p.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
	return err
}
