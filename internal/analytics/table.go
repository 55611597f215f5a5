package analytics

import (
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/shopspring/decimal"
)

type Column struct {
	Name string
	Kind models.Kind
}

// Table is a query result. Cells hold string, int64 or decimal.Decimal
// according to the column kind.
type Table struct {
	Name    string
	Title   string
	Columns []Column
	Rows    [][]interface{}
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

func scanTable(rows *sql.Rows, t *Table) error {
	defer rows.Close()

	t.Rows = [][]interface{}{}
	for rows.Next() {
		dest := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			switch col.Kind {
			case models.KindInteger:
				dest[i] = new(int64)
			case models.KindDecimal:
				dest[i] = new(decimal.Decimal)
			default:
				dest[i] = new(string)
			}
		}

		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", t.Name, err)
		}

		row := make([]interface{}, len(dest))
		for i, d := range dest {
			switch v := d.(type) {
			case *int64:
				row[i] = *v
			case *decimal.Decimal:
				row[i] = v.Round(2)
			case *string:
				row[i] = *v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return rows.Err()
}
