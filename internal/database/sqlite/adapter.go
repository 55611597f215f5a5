package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db        *sql.DB
	qb        squirrel.StatementBuilderType
	path      string
	batchSize int
}

func New(batchSize int) *Adapter {
	return &Adapter{
		qb:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		batchSize: batchSize,
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	s.path = dbPath
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}

	if !strings.Contains(dbPath, "?") {
		dbPath += "?cache=shared&_journal_mode=WAL"
	}
	if !strings.Contains(dbPath, "_foreign_keys") && !strings.Contains(dbPath, "_fk") {
		dbPath += "&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) Provider() string {
	return "sqlite"
}

func (s *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

// Table returns the bare table name; SQLite has no schema namespace.
func (s *Adapter) Table(name string) string {
	return name
}

func (s *Adapter) MonthExpr(column string) string {
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}
