package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/insight/internal/database/common"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

// IsReadOnly reports whether the statement starts like a read. A WITH clause
// may still wrap a write, so Raw also runs inside the store's read-only mode.
func IsReadOnly(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	for _, prefix := range []string{"SELECT", "WITH", "EXPLAIN", "SHOW", "DESCRIBE"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// Raw runs an ad-hoc read-only statement. Every cell is returned as text.
// Writes hidden behind a read-looking prefix are refused by the store.
func (a *Analyzer) Raw(ctx context.Context, query string) (*Table, error) {
	statements := common.ParseSQLStatements(query)
	switch len(statements) {
	case 0:
		return nil, fmt.Errorf("SQL query is empty")
	case 1:
		query = statements[0]
	default:
		return nil, fmt.Errorf("expected one statement, found %d", len(statements))
	}
	if !IsReadOnly(query) {
		return nil, fmt.Errorf("only read-only statements are allowed")
	}

	t := &Table{Name: "raw", Title: "Query result", Rows: [][]interface{}{}}
	err := a.adapter.QueryReadOnly(ctx, query, func(rows *sql.Rows) error {
		names, err := rows.Columns()
		if err != nil {
			return err
		}
		for _, n := range names {
			t.Columns = append(t.Columns, Column{Name: n, Kind: models.KindText})
		}

		for rows.Next() {
			cells := make([]sql.NullString, len(names))
			dest := make([]interface{}, len(names))
			for i := range cells {
				dest[i] = &cells[i]
			}
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}

			row := make([]interface{}, len(cells))
			for i, c := range cells {
				if c.Valid {
					row[i] = c.String
				}
			}
			t.Rows = append(t.Rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return t, nil
}
