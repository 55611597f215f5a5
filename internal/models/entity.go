package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingColumn = errors.New("missing column")

type Kind string

const (
	KindText    Kind = "text"
	KindInteger Kind = "integer"
	KindDecimal Kind = "decimal"
	KindDate    Kind = "date"
)

// DateLayout is the ISO layout used for sale dates in files and stores.
const DateLayout = "2006-01-02"

type Column struct {
	Name       string
	Kind       Kind
	Check      string // SQL CHECK expression, empty when unconstrained
	References *Reference
}

type Reference struct {
	Table  string
	Column string
}

// Entity binds a record type to its table. Columns lists the non-id fields
// in file and insert order; the primary key is always assigned by the store.
type Entity struct {
	Name       string
	PrimaryKey string
	Columns    []Column
}

var (
	Customers = Entity{
		Name:       "customers",
		PrimaryKey: "customer_id",
		Columns: []Column{
			{Name: "name", Kind: KindText},
			{Name: "gender", Kind: KindText},
			{Name: "age", Kind: KindInteger, Check: "age BETWEEN 18 AND 80"},
			{Name: "city", Kind: KindText},
		},
	}

	Products = Entity{
		Name:       "products",
		PrimaryKey: "product_id",
		Columns: []Column{
			{Name: "name", Kind: KindText},
			{Name: "category", Kind: KindText},
			{Name: "price", Kind: KindDecimal, Check: "price BETWEEN 5 AND 1500"},
			{Name: "stock", Kind: KindInteger, Check: "stock BETWEEN 0 AND 200"},
		},
	}

	Sales = Entity{
		Name:       "sales",
		PrimaryKey: "sale_id",
		Columns: []Column{
			{Name: "customer_id", Kind: KindInteger, References: &Reference{Table: "customers", Column: "customer_id"}},
			{Name: "product_id", Kind: KindInteger, References: &Reference{Table: "products", Column: "product_id"}},
			{Name: "sale_date", Kind: KindDate},
			{Name: "quantity", Kind: KindInteger, Check: "quantity BETWEEN 1 AND 5"},
		},
	}
)

// Entities returns every entity in declaration order.
func Entities() []Entity {
	return []Entity{Customers, Products, Sales}
}

func Lookup(name string) (Entity, error) {
	for _, e := range Entities() {
		if e.Name == strings.ToLower(name) {
			return e, nil
		}
	}
	return Entity{}, fmt.Errorf("unknown entity: %s", name)
}

func (e Entity) ColumnNames() []string {
	names := make([]string, len(e.Columns))
	for i, col := range e.Columns {
		names[i] = col.Name
	}
	return names
}

// Dependencies lists the tables this entity references.
func (e Entity) Dependencies() []string {
	var deps []string
	for _, col := range e.Columns {
		if col.References != nil && col.References.Table != e.Name {
			deps = append(deps, col.References.Table)
		}
	}
	return deps
}

// FileName is the CSV file the entity is persisted to.
func (e Entity) FileName() string {
	return e.Name + ".csv"
}

// Values orders a record's fields by column. A missing field is an error.
func (e Entity) Values(r Record) ([]interface{}, error) {
	values := make([]interface{}, len(e.Columns))
	for i, col := range e.Columns {
		v, ok := r[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w %s for table %s", ErrMissingColumn, col.Name, e.Name)
		}
		values[i] = v
	}
	return values, nil
}
