package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Masterminds/squirrel"
)

const DefaultBatchSize = 500

// InsertChunks writes rows with multi-row INSERT statements of at most
// batchSize rows each, all on the given transaction.
func InsertChunks(ctx context.Context, tx *sql.Tx, qb squirrel.StatementBuilderType, table string, entity models.Entity, rows [][]interface{}, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var inserted int64
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		insert := qb.Insert(table).Columns(entity.ColumnNames()...)
		for _, row := range rows[start:end] {
			values := make([]interface{}, len(row))
			for i, v := range row {
				sv, err := SQLValue(entity.Columns[i].Kind, v)
				if err != nil {
					return inserted, fmt.Errorf("column %s: %w", entity.Columns[i].Name, err)
				}
				values[i] = sv
			}
			insert = insert.Values(values...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("failed to build insert: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			n = int64(end - start)
		}
		inserted += n
	}

	return inserted, nil
}

// BulkInsertTx runs InsertChunks in its own transaction and rolls back on
// any failure so a failed batch leaves no rows behind.
func BulkInsertTx(ctx context.Context, db *sql.DB, qb squirrel.StatementBuilderType, table string, entity models.Entity, rows [][]interface{}, batchSize int) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	inserted, err := InsertChunks(ctx, tx, qb, table, entity, rows, batchSize)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return 0, fmt.Errorf("insert failed and rollback failed: %v (original: %w)", rbErr, err)
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// ScanIDs reads a single integer column.
func ScanIDs(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// QueryReadOnlyTx runs query inside a read-only transaction and hands the
// rows to fn. The transaction is always rolled back.
func QueryReadOnlyTx(ctx context.Context, db *sql.DB, query string, fn func(*sql.Rows) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := fn(rows); err != nil {
		return err
	}
	return rows.Err()
}
