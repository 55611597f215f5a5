package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Lumos-Labs-HQ/insight/internal/analytics"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// BarWidth is the length of the longest bar in a chart.
const BarWidth = 40

const noData = "No data to visualize"

// BarChart draws horizontal bars scaled to the largest value.
func BarChart(w io.Writer, title string, labels []string, values []float64) error {
	return barChart(w, title, labels, values, func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
}

func barChart(w io.Writer, title string, labels []string, values []float64, format func(float64) string) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}

	if len(labels) == 0 || len(labels) != len(values) {
		_, err := fmt.Fprintln(w, mutedStyle.Render(noData))
		return err
	}

	labelWidth := 0
	peak := 0.0
	for i, label := range labels {
		if n := lipgloss.Width(label); n > labelWidth {
			labelWidth = n
		}
		if values[i] > peak {
			peak = values[i]
		}
	}

	for i, label := range labels {
		length := 0
		if peak > 0 && values[i] > 0 {
			length = int(values[i] / peak * BarWidth)
			if length == 0 {
				length = 1
			}
		}

		line := fmt.Sprintf("%s │%s %s",
			labelStyle.Render(label+strings.Repeat(" ", labelWidth-lipgloss.Width(label))),
			barStyle.Render(strings.Repeat("█", length)),
			format(values[i]),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// TopProductsChart plots units sold per product.
func TopProductsChart(w io.Writer, t *analytics.Table) error {
	labels, values := series(t, "product_name", "total_quantity_sold")
	return barChart(w, "Top best-selling products (units)", labels, values, func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
}

// MonthlyTrendChart plots revenue per month in calendar order.
func MonthlyTrendChart(w io.Writer, t *analytics.Table) error {
	labels, values := series(t, "sales_month", "total_sales")

	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return labels[idx[a]] < labels[idx[b]] })

	sortedLabels := make([]string, len(idx))
	sortedValues := make([]float64, len(idx))
	for i, j := range idx {
		sortedLabels[i] = labels[j]
		sortedValues[i] = values[j]
	}
	return BarChart(w, "Monthly sales trend", sortedLabels, sortedValues)
}

// GenderShareChart plots each gender's share of total revenue.
func GenderShareChart(w io.Writer, t *analytics.Table) error {
	labels, values := series(t, "customer_gender", "total_sales")

	total := 0.0
	for _, v := range values {
		total += v
	}

	shares := make([]float64, len(values))
	for i, v := range values {
		if total > 0 {
			shares[i] = v / total * 100
		}
	}

	return barChart(w, "Sales share by gender", labels, shares, func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	})
}

// Visualize draws the chart matching each table; tables without a chart are
// skipped.
func Visualize(w io.Writer, tables []*analytics.Table) error {
	drawn := 0
	for _, t := range tables {
		var draw func(io.Writer, *analytics.Table) error
		switch t.Name {
		case "top_selling_products":
			draw = TopProductsChart
		case "monthly_sales_trend":
			draw = MonthlyTrendChart
		case "sales_by_gender":
			draw = GenderShareChart
		default:
			continue
		}

		if drawn > 0 {
			fmt.Fprintln(w)
		}
		if err := draw(w, t); err != nil {
			return err
		}
		drawn++
	}
	return nil
}

func series(t *analytics.Table, labelCol, valueCol string) ([]string, []float64) {
	li, vi := t.ColumnIndex(labelCol), t.ColumnIndex(valueCol)
	if li < 0 || vi < 0 {
		return nil, nil
	}

	labels := make([]string, 0, len(t.Rows))
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		labels = append(labels, FormatCell(row[li]))
		values = append(values, toFloat(row[vi]))
	}
	return labels, values
}

func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64()
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}
