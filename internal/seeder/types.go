package seeder

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

// Counts is the number of records requested per entity.
type Counts struct {
	Customers int
	Products  int
	Sales     int
}

// Dataset holds one generation run. SalesSkipped is set when sales were
// requested but there were no customers or products to reference.
type Dataset struct {
	Customers    []models.Customer
	Products     []models.Product
	Sales        []models.Sale
	SalesSkipped bool
}

// Records returns the dataset rows for a single entity.
func (d *Dataset) Records(entity models.Entity) []models.Record {
	switch entity.Name {
	case models.Customers.Name:
		return models.CustomerRecords(d.Customers)
	case models.Products.Name:
		return models.ProductRecords(d.Products)
	case models.Sales.Name:
		return models.SaleRecords(d.Sales)
	default:
		return nil
	}
}

func ValidateCounts(c Counts) error {
	if c.Customers < 0 {
		return fmt.Errorf("customers count must be non-negative, got %d", c.Customers)
	}
	if c.Products < 0 {
		return fmt.Errorf("products count must be non-negative, got %d", c.Products)
	}
	if c.Sales < 0 {
		return fmt.Errorf("sales count must be non-negative, got %d", c.Sales)
	}
	return nil
}
