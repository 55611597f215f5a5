package common

import (
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSQLStatements(t *testing.T) {
	sql := `-- leading comment
CREATE TABLE a (name TEXT DEFAULT 'x;y');
CREATE TABLE b (id INTEGER);
`
	stmts := ParseSQLStatements(sql)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (name TEXT DEFAULT 'x;y')", stmts[0])
	assert.Equal(t, "CREATE TABLE b (id INTEGER)", stmts[1])
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("store_analytics"))
	assert.True(t, IsValidIdentifier("_t1"))
	assert.False(t, IsValidIdentifier("1abc"))
	assert.False(t, IsValidIdentifier("a;drop"))
}

func TestSQLValue(t *testing.T) {
	v, err := SQLValue(models.KindDecimal, decimal.RequireFromString("9.5"))
	require.NoError(t, err)
	assert.Equal(t, "9.50", v)

	v, err = SQLValue(models.KindDate, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", v)

	v, err = SQLValue(models.KindInteger, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = SQLValue(models.KindText, struct{}{})
	assert.Error(t, err)
}

func TestRowsRequiresEveryColumn(t *testing.T) {
	_, err := Rows(models.Customers, []models.Record{{"name": "Jo"}})
	assert.ErrorIs(t, err, models.ErrMissingColumn)
	assert.ErrorContains(t, err, "row 1")
}

func TestCreateTableSQL(t *testing.T) {
	d := Dialect{
		PrimaryKey: "SERIAL PRIMARY KEY",
		Types: map[models.Kind]string{
			models.KindText: "TEXT", models.KindInteger: "INTEGER",
			models.KindDecimal: "NUMERIC(10, 2)", models.KindDate: "DATE",
		},
	}
	qualify := func(name string) string { return "s." + name }

	stmt := CreateTableSQL(models.Sales, d, qualify)
	assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS s.sales ("))
	assert.Contains(t, stmt, "sale_id SERIAL PRIMARY KEY")
	assert.Contains(t, stmt, "sale_date DATE NOT NULL")
	assert.Contains(t, stmt, "CHECK (quantity BETWEEN 1 AND 5)")
	assert.Contains(t, stmt, "FOREIGN KEY (customer_id) REFERENCES s.customers (customer_id)")
	assert.Contains(t, stmt, "FOREIGN KEY (product_id) REFERENCES s.products (product_id)")

	products := CreateTableSQL(models.Products, d, qualify)
	assert.Contains(t, products, "CHECK (price BETWEEN 5 AND 1500)")
	assert.Contains(t, products, "CHECK (stock BETWEEN 0 AND 200)")

	script := SchemaScript(models.Entities(), d, qualify)
	assert.Len(t, ParseSQLStatements(script), 3)
}
