package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Lumos-Labs-HQ/insight/internal/database"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Masterminds/squirrel"
)

const (
	DefaultSpendThreshold = 10000
	DefaultTrendYear      = 2025
	DefaultTopLimit       = 5
)

type Options struct {
	SpendThreshold float64
	TrendYear      int
	TopLimit       int
}

// Query runs one aggregate against the store.
type Query func(ctx context.Context) (*Table, error)

type Analyzer struct {
	adapter database.DatabaseAdapter
	qb      squirrel.StatementBuilderType
	opts    Options
}

func New(adapter database.DatabaseAdapter, opts Options) *Analyzer {
	if opts.SpendThreshold <= 0 {
		opts.SpendThreshold = DefaultSpendThreshold
	}
	if opts.TrendYear <= 0 {
		opts.TrendYear = DefaultTrendYear
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = DefaultTopLimit
	}
	return &Analyzer{
		adapter: adapter,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(adapter.Placeholder()),
		opts:    opts,
	}
}

func (a *Analyzer) Options() Options {
	return a.opts
}

func (a *Analyzer) table(name, alias string) string {
	return a.adapter.Table(name) + " " + alias
}

// salesJoin is sales joined to the given dimension tables on their keys.
func (a *Analyzer) salesJoin(columns []string, customers, products bool) squirrel.SelectBuilder {
	q := a.qb.Select(columns...).From(a.table(models.Sales.Name, "s"))
	if customers {
		q = q.Join(a.table(models.Customers.Name, "c") + " ON s.customer_id = c.customer_id")
	}
	if products {
		q = q.Join(a.table(models.Products.Name, "p") + " ON s.product_id = p.product_id")
	}
	return q
}

func (a *Analyzer) run(ctx context.Context, q squirrel.SelectBuilder, t *Table) (*Table, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.Name, err)
	}

	rows, err := a.adapter.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", t.Name, err)
	}

	if err := scanTable(rows, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SpendPerCustomer lists customers whose total spend exceeds the threshold,
// highest first.
func (a *Analyzer) SpendPerCustomer(ctx context.Context) (*Table, error) {
	q := a.salesJoin([]string{
		"c.name AS customer_name",
		"c.city AS city",
		"SUM(s.quantity * p.price) AS total_spent",
	}, true, true).
		GroupBy("c.name", "c.city").
		Having("SUM(s.quantity * p.price) > ?", a.opts.SpendThreshold).
		OrderBy("total_spent DESC")

	return a.run(ctx, q, &Table{
		Name:  "spend_per_customer",
		Title: fmt.Sprintf("Customers spending more than %.0f", a.opts.SpendThreshold),
		Columns: []Column{
			{Name: "customer_name", Kind: models.KindText},
			{Name: "city", Kind: models.KindText},
			{Name: "total_spent", Kind: models.KindDecimal},
		},
	})
}

// TopSellingProducts ranks (name, category) pairs by units sold. A limit
// of zero or less uses the configured default.
func (a *Analyzer) TopSellingProducts(ctx context.Context, limit int) (*Table, error) {
	if limit <= 0 {
		limit = a.opts.TopLimit
	}

	q := a.salesJoin([]string{
		"p.name AS product_name",
		"p.category AS category",
		"SUM(s.quantity) AS total_quantity_sold",
	}, false, true).
		GroupBy("p.name", "p.category").
		OrderBy("total_quantity_sold DESC").
		Limit(uint64(limit))

	return a.run(ctx, q, &Table{
		Name:  "top_selling_products",
		Title: fmt.Sprintf("Top %d best-selling products", limit),
		Columns: []Column{
			{Name: "product_name", Kind: models.KindText},
			{Name: "category", Kind: models.KindText},
			{Name: "total_quantity_sold", Kind: models.KindInteger},
		},
	})
}

// MonthlySalesTrend sums revenue per month of the configured year.
func (a *Analyzer) MonthlySalesTrend(ctx context.Context) (*Table, error) {
	month := a.adapter.MonthExpr("s.sale_date")
	from := fmt.Sprintf("%04d-01-01", a.opts.TrendYear)
	to := fmt.Sprintf("%04d-01-01", a.opts.TrendYear+1)

	// Bounds are literals so each dialect coerces them to its date type.
	q := a.salesJoin([]string{
		month + " AS sales_month",
		"SUM(s.quantity * p.price) AS total_sales",
	}, false, true).
		Where(fmt.Sprintf("s.sale_date >= '%s' AND s.sale_date < '%s'", from, to)).
		GroupBy(month).
		OrderBy("total_sales DESC")

	return a.run(ctx, q, &Table{
		Name:  "monthly_sales_trend",
		Title: fmt.Sprintf("Monthly sales trend for %d", a.opts.TrendYear),
		Columns: []Column{
			{Name: "sales_month", Kind: models.KindText},
			{Name: "total_sales", Kind: models.KindDecimal},
		},
	})
}

func (a *Analyzer) SalesByGender(ctx context.Context) (*Table, error) {
	q := a.salesJoin([]string{
		"c.gender AS customer_gender",
		"SUM(s.quantity * p.price) AS total_sales",
	}, true, true).
		GroupBy("c.gender").
		OrderBy("total_sales DESC")

	return a.run(ctx, q, &Table{
		Name:  "sales_by_gender",
		Title: "Sales by customer gender",
		Columns: []Column{
			{Name: "customer_gender", Kind: models.KindText},
			{Name: "total_sales", Kind: models.KindDecimal},
		},
	})
}

// All runs every query in order and stops at the first failure.
func (a *Analyzer) All(ctx context.Context) ([]*Table, error) {
	tables := make([]*Table, 0, len(queryNames))
	for _, name := range queryNames {
		q, _ := a.Lookup(name)
		t, err := q(ctx)
		if err != nil {
			return tables, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

var queryNames = []string{"spend", "top-products", "monthly", "gender"}

// Names lists the query names accepted by Lookup, in run order.
func Names() []string {
	names := make([]string, len(queryNames))
	copy(names, queryNames)
	return names
}

func (a *Analyzer) Lookup(name string) (Query, error) {
	queries := map[string]Query{
		"spend": a.SpendPerCustomer,
		"top-products": func(ctx context.Context) (*Table, error) {
			return a.TopSellingProducts(ctx, a.opts.TopLimit)
		},
		"monthly": a.MonthlySalesTrend,
		"gender":  a.SalesByGender,
	}

	if q, ok := queries[strings.ToLower(name)]; ok {
		return q, nil
	}

	valid := Names()
	sort.Strings(valid)
	return nil, fmt.Errorf("unknown query %q (available: %s)", name, strings.Join(valid, ", "))
}
