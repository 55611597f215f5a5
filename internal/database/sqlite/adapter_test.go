package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestAdapter(t *testing.T, batchSize int) *Adapter {
	t.Helper()
	ctx := context.Background()

	a := New(batchSize)
	require.NoError(t, a.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { a.Close() })

	require.NoError(t, a.Ping(ctx))
	require.NoError(t, a.EnsureSchema(ctx))
	return a
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	a := openTestAdapter(t, 0)
	require.NoError(t, a.EnsureSchema(context.Background()))

	for _, e := range models.Entities() {
		n, err := a.GetTableRowCount(context.Background(), e)
		require.NoError(t, err)
		assert.Zero(t, n)
	}
}

func TestBulkInsertInChunks(t *testing.T) {
	ctx := context.Background()
	a := openTestAdapter(t, 2)

	records := []models.Record{}
	for i := 0; i < 5; i++ {
		records = append(records, models.Customer{Name: "C", Gender: "Other", Age: 30, City: "Cali"}.Record())
	}

	n, err := a.BulkInsert(ctx, models.Customers, records)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	ids, err := a.GetIDs(ctx, models.Customers)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
}

func TestBulkInsertRollsBackEveryChunk(t *testing.T) {
	ctx := context.Background()
	a := openTestAdapter(t, 2)

	_, err := a.BulkInsert(ctx, models.Customers, []models.Record{
		models.Customer{Name: "A", Gender: "Male", Age: 20, City: "Cali"}.Record(),
	})
	require.NoError(t, err)
	_, err = a.BulkInsert(ctx, models.Products, []models.Record{
		models.Product{Name: "Yoga Mat", Category: "Sports", Price: decimal.RequireFromString("10.00"), Stock: 1}.Record(),
	})
	require.NoError(t, err)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sales := []models.Record{
		models.Sale{CustomerID: 1, ProductID: 1, SaleDate: day, Quantity: 1}.Record(),
		models.Sale{CustomerID: 1, ProductID: 1, SaleDate: day, Quantity: 2}.Record(),
		models.Sale{CustomerID: 1, ProductID: 1, SaleDate: day, Quantity: 3}.Record(),
		models.Sale{CustomerID: 99, ProductID: 1, SaleDate: day, Quantity: 1}.Record(),
	}

	_, err = a.BulkInsert(ctx, models.Sales, sales)
	require.Error(t, err)

	n, err := a.GetTableRowCount(ctx, models.Sales)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBulkInsertRejectsPriceOutOfRange(t *testing.T) {
	ctx := context.Background()
	a := openTestAdapter(t, 0)

	for _, price := range []string{"4.99", "1500.01"} {
		_, err := a.BulkInsert(ctx, models.Products, []models.Record{
			models.Product{Name: "Yoga Mat", Category: "Sports", Price: decimal.RequireFromString("5.00"), Stock: 1}.Record(),
			models.Product{Name: "Air Purifier", Category: "Home", Price: decimal.RequireFromString(price), Stock: 1}.Record(),
		})
		require.Error(t, err, price)
	}

	n, err := a.GetTableRowCount(ctx, models.Products)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = a.BulkInsert(ctx, models.Products, []models.Record{
		models.Product{Name: "Laptop Pro 15-inch", Category: "Technology", Price: decimal.RequireFromString("1500.00"), Stock: 200}.Record(),
	})
	require.NoError(t, err)
}

func TestTruncateResetsIdentity(t *testing.T) {
	ctx := context.Background()
	a := openTestAdapter(t, 0)

	rec := models.Customer{Name: "A", Gender: "Male", Age: 20, City: "Cali"}.Record()
	_, err := a.BulkInsert(ctx, models.Customers, []models.Record{rec, rec})
	require.NoError(t, err)

	require.NoError(t, a.Truncate(ctx, models.Entities()))

	_, err = a.BulkInsert(ctx, models.Customers, []models.Record{rec})
	require.NoError(t, err)

	ids, err := a.GetIDs(ctx, models.Customers)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestMonthExpr(t *testing.T) {
	assert.Equal(t, "strftime('%Y-%m', s.sale_date)", New(0).MonthExpr("s.sale_date"))
}
