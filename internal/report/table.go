package report

import (
	"fmt"
	"io"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/analytics"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// FormatCell renders a result cell as plain text. Money keeps two decimals.
func FormatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case decimal.Decimal:
		return val.StringFixed(2)
	case time.Time:
		return val.Format(models.DateLayout)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// RenderTable writes the table title followed by a bordered grid.
func RenderTable(w io.Writer, t *analytics.Table) error {
	title := t.Title
	if title == "" {
		title = t.Name
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}

	if t.Empty() {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No rows"))
		return err
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		rows[i] = cells
	}

	grid := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(t.ColumnNames()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < len(t.Columns) && t.Columns[col].Kind != models.KindText {
				return numberStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, grid.Render())
	return err
}

func RenderTables(w io.Writer, tables []*analytics.Table) error {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := RenderTable(w, t); err != nil {
			return err
		}
	}
	return nil
}
