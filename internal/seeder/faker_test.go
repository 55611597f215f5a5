package seeder

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return fixedNow }),
		WithNameSource(func() string { return "Test Person" }),
	)
}

func TestGenerateCustomers(t *testing.T) {
	g := newTestGenerator(1)

	for _, n := range []int{0, 1, 7, 250} {
		customers := g.GenerateCustomers(n)
		require.Len(t, customers, n)

		for i, c := range customers {
			assert.Equal(t, int64(i+1), c.ID)
			assert.NotEmpty(t, c.Name)
			assert.Contains(t, Genders, c.Gender)
			assert.Contains(t, Cities, c.City)
			assert.GreaterOrEqual(t, c.Age, MinAge)
			assert.LessOrEqual(t, c.Age, MaxAge)
		}
	}
}

func TestGenerateCustomersNegativeCount(t *testing.T) {
	assert.Empty(t, newTestGenerator(1).GenerateCustomers(-3))
}

func TestGenerateCustomersDefaultNames(t *testing.T) {
	customers := NewGenerator().GenerateCustomers(3)
	require.Len(t, customers, 3)
	for _, c := range customers {
		assert.NotEmpty(t, c.Name)
	}
}

func TestGenerateProducts(t *testing.T) {
	g := newTestGenerator(2)

	for _, n := range []int{0, 1, 300} {
		products := g.GenerateProducts(n)
		require.Len(t, products, n)

		for _, p := range products {
			assert.Contains(t, ProductNames, p.Name)
			assert.Contains(t, Categories, p.Category)
			assert.True(t, p.Price.GreaterThanOrEqual(MinPrice), "price %s below minimum", p.Price)
			assert.True(t, p.Price.LessThanOrEqual(MaxPrice), "price %s above maximum", p.Price)
			assert.True(t, p.Price.Equal(p.Price.Round(2)), "price %s has more than 2 decimals", p.Price)
			assert.GreaterOrEqual(t, p.Stock, 0)
			assert.LessOrEqual(t, p.Stock, MaxStock)
		}
	}
}

func TestGenerateSales(t *testing.T) {
	g := newTestGenerator(3)
	customerIDs := []int64{3, 5, 8}
	productIDs := []int64{11, 13}

	sales := g.GenerateSales(500, customerIDs, productIDs)
	require.Len(t, sales, 500)

	today := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(0, 0, -SaleWindowDays)

	for _, s := range sales {
		assert.Contains(t, customerIDs, s.CustomerID)
		assert.Contains(t, productIDs, s.ProductID)
		assert.GreaterOrEqual(t, s.Quantity, MinQuantity)
		assert.LessOrEqual(t, s.Quantity, MaxQuantity)
		assert.False(t, s.SaleDate.Before(earliest), "sale date %s before window", s.SaleDate)
		assert.False(t, s.SaleDate.After(today), "sale date %s after today", s.SaleDate)
	}
}

func TestGenerateSalesWithoutReferences(t *testing.T) {
	g := newTestGenerator(4)

	sales := g.GenerateSales(0, nil, nil)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)

	assert.Empty(t, g.GenerateSales(10, nil, []int64{1}))
	assert.Empty(t, g.GenerateSales(10, []int64{1}, nil))
}

func TestGenerateDataset(t *testing.T) {
	ds := newTestGenerator(5).Generate(Counts{Customers: 4, Products: 3, Sales: 20})

	assert.Len(t, ds.Customers, 4)
	assert.Len(t, ds.Products, 3)
	require.Len(t, ds.Sales, 20)
	assert.False(t, ds.SalesSkipped)

	for _, s := range ds.Sales {
		assert.True(t, s.CustomerID >= 1 && s.CustomerID <= 4)
		assert.True(t, s.ProductID >= 1 && s.ProductID <= 3)
	}
}

func TestGenerateDatasetSkipsSalesWithoutCustomers(t *testing.T) {
	ds := newTestGenerator(6).Generate(Counts{Customers: 0, Products: 3, Sales: 20})

	assert.Empty(t, ds.Sales)
	assert.True(t, ds.SalesSkipped)
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	a := newTestGenerator(42).Generate(Counts{Customers: 5, Products: 5, Sales: 5})
	b := newTestGenerator(42).Generate(Counts{Customers: 5, Products: 5, Sales: 5})

	assert.Equal(t, a.Customers, b.Customers)
	assert.Equal(t, a.Sales, b.Sales)
	for i := range a.Products {
		assert.True(t, a.Products[i].Price.Equal(b.Products[i].Price))
	}
}

func TestWithSeedReproducesNames(t *testing.T) {
	counts := Counts{Customers: 8, Products: 3, Sales: 10}
	clock := WithClock(func() time.Time { return fixedNow })

	a := NewGenerator(WithSeed(7), clock).Generate(counts)
	b := NewGenerator(WithSeed(7), clock).Generate(counts)

	require.Len(t, a.Customers, 8)
	assert.Equal(t, a.Customers, b.Customers)
	assert.Equal(t, a.Sales, b.Sales)
	for _, c := range a.Customers {
		parts := strings.SplitN(c.Name, " ", 2)
		require.Len(t, parts, 2)
		assert.Contains(t, FirstNames, parts[0])
		assert.Contains(t, LastNames, parts[1])
	}

	c := NewGenerator(WithSeed(8), clock).Generate(counts)
	assert.NotEqual(t, a.Customers, c.Customers)
}

func TestValidateCounts(t *testing.T) {
	assert.NoError(t, ValidateCounts(Counts{}))
	assert.NoError(t, ValidateCounts(Counts{Customers: 1, Products: 2, Sales: 3}))
	assert.Error(t, ValidateCounts(Counts{Customers: -1}))
	assert.Error(t, ValidateCounts(Counts{Products: -1}))
	assert.Error(t, ValidateCounts(Counts{Sales: -1}))
}
