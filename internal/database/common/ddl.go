package common

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

// Dialect describes how a database spells the column types and table
// options used by the store schema.
type Dialect struct {
	PrimaryKey   string
	Types        map[models.Kind]string
	TableOptions string
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS for an entity. qualify
// maps a bare table name to the name used in SQL text.
func CreateTableSQL(entity models.Entity, d Dialect, qualify func(string) string) string {
	var defs []string
	defs = append(defs, fmt.Sprintf("%s %s", entity.PrimaryKey, d.PrimaryKey))

	for _, col := range entity.Columns {
		defs = append(defs, fmt.Sprintf("%s %s NOT NULL", col.Name, d.Types[col.Kind]))
	}
	for _, col := range entity.Columns {
		if col.Check != "" {
			defs = append(defs, fmt.Sprintf("CHECK (%s)", col.Check))
		}
	}
	for _, col := range entity.Columns {
		if ref := col.References; ref != nil {
			defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", col.Name, qualify(ref.Table), ref.Column))
		}
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", qualify(entity.Name), strings.Join(defs, ",\n\t"))
	if d.TableOptions != "" {
		stmt += " " + d.TableOptions
	}
	return stmt
}

// SchemaScript renders the DDL for every entity, referenced tables first.
func SchemaScript(entities []models.Entity, d Dialect, qualify func(string) string) string {
	var b strings.Builder
	for _, e := range entities {
		b.WriteString(CreateTableSQL(e, d, qualify))
		b.WriteString(";\n\n")
	}
	return b.String()
}
