package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/shopspring/decimal"
)

// Pre-compiled regex patterns for SQL parsing
var (
	commentRegex    = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex     = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
	validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// IsValidIdentifier checks if a string is a valid SQL identifier
func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// ParseSQLStatements splits a script on semicolons that are not inside string literals.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	estimatedStmts := strings.Count(sql, ";") + 1
	statements := make([]string, 0, estimatedStmts)

	var currentStatement strings.Builder
	currentStatement.Grow(len(sql) / estimatedStmts)

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			stmt := strings.TrimSpace(currentStatement.String())
			if stmt != "" && !strings.HasPrefix(stmt, "/*") {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		} else {
			currentStatement.WriteRune(char)
		}
	}

	if currentStatement.Len() > 0 {
		stmt := strings.TrimSpace(currentStatement.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// SQLValue converts a record value into something every database/sql
// driver accepts: decimals become fixed-point strings and dates ISO strings.
func SQLValue(kind models.Kind, v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		return val.StringFixed(2), nil
	case time.Time:
		if kind == models.KindDate {
			return val.Format(models.DateLayout), nil
		}
		return val, nil
	case int:
		return int64(val), nil
	case string, int64, float64, bool:
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Rows converts records into positional rows ordered by the entity's columns.
func Rows(entity models.Entity, records []models.Record) ([][]interface{}, error) {
	rows := make([][]interface{}, 0, len(records))
	for i, record := range records {
		values, err := entity.Values(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, values)
	}
	return rows, nil
}
