package loader

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/Lumos-Labs-HQ/insight/internal/csvio"
	"github.com/Lumos-Labs-HQ/insight/internal/database"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Lumos-Labs-HQ/insight/internal/seeder"
	"github.com/fatih/color"
)

// ErrNoReferences marks a sales load that was skipped because there were no
// customers or no products to point at.
var ErrNoReferences = errors.New("cannot generate sales data because there are no customers or products")

// Result reports the outcome of loading one entity.
type Result struct {
	Table   string
	Source  string
	Rows    int64
	Skipped bool
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

type Loader struct {
	adapter database.DatabaseAdapter
}

func New(adapter database.DatabaseAdapter) *Loader {
	return &Loader{adapter: adapter}
}

// Load inserts records into the entity's table as one atomic batch. Errors
// are reported in the Result so the caller can move on to the next entity.
func (l *Loader) Load(ctx context.Context, entity models.Entity, records []models.Record) Result {
	res := Result{Table: entity.Name, Source: "generator"}

	if len(records) > 0 {
		n, err := l.adapter.BulkInsert(ctx, entity, records)
		if err != nil {
			res.Err = err
			color.Red("❌ Error loading '%s' (rolled back): %v", entity.Name, err)
			return res
		}
		res.Rows = n
	}

	color.Green("✅ %d records loaded into '%s'", res.Rows, entity.Name)
	return res
}

// LoadFile reads a CSV and loads it. A missing file is reported and skipped.
func (l *Loader) LoadFile(ctx context.Context, path string, entity models.Entity) Result {
	records, err := csvio.ReadFile(path, entity)
	if err != nil {
		res := Result{Table: entity.Name, Source: path, Err: err}
		if errors.Is(err, csvio.ErrSourceMissing) {
			res.Skipped = true
			color.Red("❌ Error: file %s was not found, skipping '%s'", path, entity.Name)
		} else {
			color.Red("❌ Error reading %s: %v", path, err)
		}
		return res
	}

	res := l.Load(ctx, entity, records)
	res.Source = path
	return res
}

// LoadDir loads <dir>/customers.csv, products.csv and sales.csv with
// referenced tables first, attempting every file regardless of failures.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Result, error) {
	order, err := seeder.LoadOrder()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(order))
	for _, entity := range order {
		results = append(results, l.LoadFile(ctx, filepath.Join(dir, entity.FileName()), entity))
	}
	return results, nil
}

// LoadDataset loads an in-memory dataset in dependency order.
func (l *Loader) LoadDataset(ctx context.Context, ds *seeder.Dataset) ([]Result, error) {
	order, err := seeder.LoadOrder()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(order))
	for _, entity := range order {
		if entity.Name == models.Sales.Name && ds.SalesSkipped {
			results = append(results, skippedSales())
			continue
		}
		results = append(results, l.Load(ctx, entity, ds.Records(entity)))
	}
	return results, nil
}

// Seed generates and loads customers and products, then draws sales from
// the ids actually present in the store.
func (l *Loader) Seed(ctx context.Context, g *seeder.Generator, counts seeder.Counts) ([]Result, error) {
	if err := seeder.ValidateCounts(counts); err != nil {
		return nil, err
	}

	results := []Result{
		l.Load(ctx, models.Customers, models.CustomerRecords(g.GenerateCustomers(counts.Customers))),
		l.Load(ctx, models.Products, models.ProductRecords(g.GenerateProducts(counts.Products))),
	}

	if counts.Sales == 0 {
		return append(results, l.Load(ctx, models.Sales, nil)), nil
	}

	customerIDs, err := l.adapter.GetIDs(ctx, models.Customers)
	if err != nil {
		return results, err
	}
	productIDs, err := l.adapter.GetIDs(ctx, models.Products)
	if err != nil {
		return results, err
	}

	if len(customerIDs) == 0 || len(productIDs) == 0 {
		return append(results, skippedSales()), nil
	}

	sales := g.GenerateSales(counts.Sales, customerIDs, productIDs)
	return append(results, l.Load(ctx, models.Sales, models.SaleRecords(sales))), nil
}

func skippedSales() Result {
	color.Yellow("⚠️  %v", ErrNoReferences)
	return Result{Table: models.Sales.Name, Source: "generator", Skipped: true, Err: ErrNoReferences}
}

// Summary prints a one-line outcome and returns the number of failed entities.
func Summary(results []Result) int {
	var rows int64
	failed := 0
	for _, r := range results {
		if r.OK() {
			rows += r.Rows
		} else {
			failed++
		}
	}

	if failed == 0 {
		color.Green("\n🎉 Load finished: %d rows across %d tables", rows, len(results))
	} else {
		color.Yellow("\n⚠️  Load finished with %d failed table(s); %d rows committed", failed, rows)
	}
	return failed
}
