package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type Adapter struct {
	pool   *pgxpool.Pool
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	schema string
}

func New(schema string) *Adapter {
	if schema == "" {
		schema = models.Namespace
	}
	return &Adapter{
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema: schema,
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	p.db = stdlib.OpenDBFromPool(pool)
	return nil
}

func (p *Adapter) Close() error {
	var err error
	if p.db != nil {
		err = p.db.Close()
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return err
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) Provider() string {
	return "postgresql"
}

func (p *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

// Table returns the schema-qualified, quoted table name.
func (p *Adapter) Table(name string) string {
	return pq.QuoteIdentifier(p.schema) + "." + pq.QuoteIdentifier(name)
}

func (p *Adapter) MonthExpr(column string) string {
	return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
}
