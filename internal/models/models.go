package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Namespace is the logical schema the three tables live under.
const Namespace = "store_analytics"

type Customer struct {
	ID     int64  `json:"customer_id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
	City   string `json:"city"`
}

type Product struct {
	ID       int64           `json:"product_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

type Sale struct {
	ID         int64     `json:"sale_id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	SaleDate   time.Time `json:"sale_date"`
	Quantity   int       `json:"quantity"`
}

// Record is a single row keyed by column name. Values are typed according
// to the column Kind: string, int64, decimal.Decimal or time.Time.
type Record map[string]interface{}

func (c Customer) Record() Record {
	return Record{
		"name":   c.Name,
		"gender": c.Gender,
		"age":    int64(c.Age),
		"city":   c.City,
	}
}

func (p Product) Record() Record {
	return Record{
		"name":     p.Name,
		"category": p.Category,
		"price":    p.Price,
		"stock":    int64(p.Stock),
	}
}

func (s Sale) Record() Record {
	return Record{
		"customer_id": s.CustomerID,
		"product_id":  s.ProductID,
		"sale_date":   s.SaleDate,
		"quantity":    int64(s.Quantity),
	}
}

func CustomerRecords(customers []Customer) []Record {
	records := make([]Record, len(customers))
	for i, c := range customers {
		records[i] = c.Record()
	}
	return records
}

func ProductRecords(products []Product) []Record {
	records := make([]Record, len(products))
	for i, p := range products {
		records[i] = p.Record()
	}
	return records
}

func SaleRecords(sales []Sale) []Record {
	records := make([]Record, len(sales))
	for i, s := range sales {
		records[i] = s.Record()
	}
	return records
}
