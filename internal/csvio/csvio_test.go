package csvio

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Lumos-Labs-HQ/insight/internal/seeder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *seeder.Dataset {
	g := seeder.NewGenerator(
		seeder.WithRand(rand.New(rand.NewSource(7))),
		seeder.WithClock(func() time.Time { return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC) }),
		seeder.WithNameSource(func() string { return "Ana, María" }),
	)
	return g.Generate(seeder.Counts{Customers: 3, Products: 2, Sales: 4})
}

func TestWriteHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, models.Sales, nil))
	assert.Equal(t, "customer_id,product_id,sale_date,quantity\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, models.Customers, nil))
	assert.Equal(t, "name,gender,age,city\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, models.Products, nil))
	assert.Equal(t, "name,category,price,stock\n", buf.String())
}

func TestWriteFormatsDatesAndPrices(t *testing.T) {
	var buf bytes.Buffer
	records := []models.Record{
		models.Product{Name: "Yoga Mat", Category: "Sports", Price: decimal.RequireFromString("12.5"), Stock: 3}.Record(),
		models.Sale{CustomerID: 1, ProductID: 2, SaleDate: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), Quantity: 4}.Record(),
	}

	require.NoError(t, Write(&buf, models.Products, records[:1]))
	assert.Contains(t, buf.String(), "Yoga Mat,Sports,12.50,3")

	buf.Reset()
	require.NoError(t, Write(&buf, models.Sales, records[1:]))
	assert.Contains(t, buf.String(), "1,2,2025-01-09,4")
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := testDataset()

	paths, err := WriteDataset(dir, ds)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	customers, err := ReadFile(filepath.Join(dir, "customers.csv"), models.Customers)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	for i, c := range ds.Customers {
		assert.Equal(t, c.Name, customers[i]["name"])
		assert.Equal(t, c.Gender, customers[i]["gender"])
		assert.Equal(t, int64(c.Age), customers[i]["age"])
		assert.Equal(t, c.City, customers[i]["city"])
	}

	products, err := ReadFile(filepath.Join(dir, "products.csv"), models.Products)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for i, p := range ds.Products {
		assert.True(t, p.Price.Equal(products[i]["price"].(decimal.Decimal)))
	}

	sales, err := ReadFile(filepath.Join(dir, "sales.csv"), models.Sales)
	require.NoError(t, err)
	require.Len(t, sales, 4)
	for i, s := range ds.Sales {
		assert.Equal(t, s.CustomerID, sales[i]["customer_id"])
		assert.True(t, s.SaleDate.Equal(sales[i]["sale_date"].(time.Time)))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), models.Customers)
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestReadAcceptsReorderedAndExtraColumns(t *testing.T) {
	in := "city,age,extra,gender,name\nCali,30,x,Other,Jo\n"
	records, err := Read(strings.NewReader(in), models.Customers)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Record{"name": "Jo", "gender": "Other", "age": int64(30), "city": "Cali"}, records[0])
}

func TestReadRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "file is empty"},
		{"missing column", "name,gender,age\nJo,Other,30\n", "missing column city"},
		{"bad integer", "name,gender,age,city\nJo,Other,thirty,Cali\n", "line 2, column age"},
		{"bad date", "customer_id,product_id,sale_date,quantity\n1,1,09/01/2025,1\n", "invalid date"},
		{"bad decimal", "name,category,price,stock\nMat,Sports,cheap,1\n", "invalid decimal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := models.Customers
			if strings.HasPrefix(tt.input, "customer_id") {
				entity = models.Sales
			} else if strings.Contains(tt.input, "category") {
				entity = models.Products
			}
			_, err := Read(strings.NewReader(tt.input), entity)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestReadHeaderOnly(t *testing.T) {
	records, err := Read(strings.NewReader("customer_id,product_id,sale_date,quantity\n"), models.Sales)
	require.NoError(t, err)
	assert.Empty(t, records)
}
