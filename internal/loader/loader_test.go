package loader

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/csvio"
	"github.com/Lumos-Labs-HQ/insight/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Lumos-Labs-HQ/insight/internal/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *sqlite.Adapter {
	t.Helper()
	ctx := context.Background()

	a := sqlite.New(0)
	require.NoError(t, a.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "store.db")))
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.EnsureSchema(ctx))
	return a
}

func testGenerator() *seeder.Generator {
	fixed := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	return seeder.NewGenerator(
		seeder.WithRand(rand.New(rand.NewSource(7))),
		seeder.WithClock(func() time.Time { return fixed }),
		seeder.WithNameSource(func() string { return "Test Person" }),
	)
}

func count(t *testing.T, store *sqlite.Adapter, e models.Entity) int64 {
	t.Helper()
	n, err := store.GetTableRowCount(context.Background(), e)
	require.NoError(t, err)
	return n
}

func TestLoadFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	dir := t.TempDir()

	ds := testGenerator().Generate(seeder.Counts{Customers: 5})
	_, err := csvio.WriteDataset(dir, ds)
	require.NoError(t, err)

	res := New(store).LoadFile(ctx, filepath.Join(dir, "customers.csv"), models.Customers)
	require.NoError(t, res.Err)
	assert.Equal(t, int64(5), res.Rows)

	rows, err := store.Query(ctx, "SELECT customer_id, name, gender, age, city FROM customers ORDER BY customer_id")
	require.NoError(t, err)
	defer rows.Close()

	i := 0
	for rows.Next() {
		var c models.Customer
		require.NoError(t, rows.Scan(&c.ID, &c.Name, &c.Gender, &c.Age, &c.City))
		assert.Equal(t, ds.Customers[i], c)
		i++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 5, i)
}

func TestLoadIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	records := models.CustomerRecords(testGenerator().GenerateCustomers(4))
	records = append(records, models.Customer{Name: "Too Old", Gender: "Other", Age: 99, City: "Cali"}.Record())

	res := New(store).Load(ctx, models.Customers, records)
	require.Error(t, res.Err)
	assert.False(t, res.OK())
	assert.Zero(t, count(t, store, models.Customers))
}

func TestLoadEmptyRecords(t *testing.T) {
	res := New(openStore(t)).Load(context.Background(), models.Products, nil)
	require.NoError(t, res.Err)
	assert.Zero(t, res.Rows)
}

func TestLoadDirSkipsMissingFiles(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	dir := t.TempDir()

	ds := testGenerator().Generate(seeder.Counts{Customers: 3, Products: 2, Sales: 4})
	_, err := csvio.WriteDataset(dir, ds)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "products.csv")))

	results, err := New(store).LoadDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byTable := map[string]Result{}
	for _, r := range results {
		byTable[r.Table] = r
	}

	assert.NoError(t, byTable["customers"].Err)
	assert.True(t, byTable["products"].Skipped)
	assert.ErrorIs(t, byTable["products"].Err, csvio.ErrSourceMissing)
	// every sale references a product that was never loaded
	assert.Error(t, byTable["sales"].Err)

	assert.Equal(t, int64(3), count(t, store, models.Customers))
	assert.Zero(t, count(t, store, models.Products))
	assert.Zero(t, count(t, store, models.Sales))
	assert.Equal(t, 2, Summary(results))
}

func TestLoadDataset(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	ds := testGenerator().Generate(seeder.Counts{Customers: 4, Products: 3, Sales: 10})
	results, err := New(store).LoadDataset(ctx, ds)
	require.NoError(t, err)
	assert.Zero(t, Summary(results))

	assert.Equal(t, int64(4), count(t, store, models.Customers))
	assert.Equal(t, int64(3), count(t, store, models.Products))
	assert.Equal(t, int64(10), count(t, store, models.Sales))
}

func TestLoadDatasetSkippedSales(t *testing.T) {
	ds := testGenerator().Generate(seeder.Counts{Products: 2, Sales: 5})
	require.True(t, ds.SalesSkipped)

	results, err := New(openStore(t)).LoadDataset(context.Background(), ds)
	require.NoError(t, err)

	last := results[len(results)-1]
	assert.Equal(t, "sales", last.Table)
	assert.True(t, last.Skipped)
	assert.ErrorIs(t, last.Err, ErrNoReferences)
}

func TestSeedUsesStoredIDs(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	l := New(store)

	// earlier rows shift the ids of the next batch
	_, err := l.Seed(ctx, testGenerator(), seeder.Counts{Customers: 2, Products: 2})
	require.NoError(t, err)

	results, err := l.Seed(ctx, testGenerator(), seeder.Counts{Customers: 3, Products: 1, Sales: 20})
	require.NoError(t, err)
	assert.Zero(t, Summary(results))
	assert.Equal(t, int64(20), count(t, store, models.Sales))

	rows, err := store.Query(ctx, "SELECT COUNT(*) FROM sales s LEFT JOIN customers c ON c.customer_id = s.customer_id WHERE c.customer_id IS NULL")
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var orphans int
	require.NoError(t, rows.Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestSeedRejectsNegativeCounts(t *testing.T) {
	_, err := New(openStore(t)).Seed(context.Background(), testGenerator(), seeder.Counts{Sales: -1})
	require.Error(t, err)
}

func TestSeedWithoutProductsSkipsSales(t *testing.T) {
	results, err := New(openStore(t)).Seed(context.Background(), testGenerator(), seeder.Counts{Customers: 2, Sales: 3})
	require.NoError(t, err)
	assert.True(t, results[2].Skipped)
}
