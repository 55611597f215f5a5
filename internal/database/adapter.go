package database

import (
	"context"
	"database/sql"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Masterminds/squirrel"
)

// DatabaseAdapter is the store boundary. Implementations own one connection
// pool between Connect and Close.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	Provider() string

	// SQL dialect
	Placeholder() squirrel.PlaceholderFormat
	Table(name string) string
	MonthExpr(column string) string

	// Schema operations
	EnsureSchema(ctx context.Context) error
	SchemaSQL() string

	// Data operations
	BulkInsert(ctx context.Context, entity models.Entity, records []models.Record) (int64, error)
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	// QueryReadOnly runs an ad-hoc statement where the store refuses writes.
	QueryReadOnly(ctx context.Context, query string, fn func(*sql.Rows) error) error
	GetIDs(ctx context.Context, entity models.Entity) ([]int64, error)
	GetTableRowCount(ctx context.Context, entity models.Entity) (int64, error)
	Truncate(ctx context.Context, entities []models.Entity) error
}
