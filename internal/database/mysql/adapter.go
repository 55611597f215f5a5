package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

type Adapter struct {
	db        *sql.DB
	qb        squirrel.StatementBuilderType
	database  string
	batchSize int
}

func New(batchSize int) *Adapter {
	return &Adapter{
		qb:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		batchSize: batchSize,
	}
}

var sslModeReplacer = strings.NewReplacer(
	"ssl-mode=REQUIRED", "tls=skip-verify",
	"ssl-mode=DISABLED", "tls=false",
	"ssl-mode=VERIFY_CA", "tls=true",
	"ssl-mode=VERIFY_IDENTITY", "tls=true",
	"sslmode=require", "tls=skip-verify",
	"sslmode=disable", "tls=false",
	"sslmode=verify-ca", "tls=true",
	"sslmode=verify-full", "tls=true",
)

// ToDSN converts a mysql:// URL into a driver DSN. Plain DSNs pass through.
// parseTime is always enabled so DATE columns scan into time.Time.
func ToDSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.LastIndex(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := sslModeReplacer.Replace(remainder[slashIndex+1:])
				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := ToDSN(url)
	if err != nil {
		return err
	}
	if cfg, err := mysql.ParseDSN(dsn); err == nil {
		m.database = cfg.DBName
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) Provider() string {
	return "mysql"
}

func (m *Adapter) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

// Table returns the bare table name; the connection's database is the namespace.
func (m *Adapter) Table(name string) string {
	return name
}

func (m *Adapter) MonthExpr(column string) string {
	return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
}
