package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/analytics"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var Formats = []string{"json", "csv", "yaml"}

type Document struct {
	Timestamp string          `json:"timestamp" yaml:"timestamp"`
	Version   string          `json:"version" yaml:"version"`
	Tables    []ExportedTable `json:"tables" yaml:"tables"`
}

type ExportedTable struct {
	Name    string                   `json:"name" yaml:"name"`
	Title   string                   `json:"title,omitempty" yaml:"title,omitempty"`
	Columns []string                 `json:"columns" yaml:"columns"`
	Rows    []map[string]interface{} `json:"rows" yaml:"rows"`
}

// Export writes the tables under dir and returns the path written: a single
// file for json and yaml, a directory of per-table files for csv.
func Export(dir, format string, tables ...*analytics.Table) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	switch format {
	case "json":
		return exportToJSON(newDocument(tables), filepath.Join(dir, fmt.Sprintf("export_%s.json", timestamp)))
	case "yaml", "yml":
		return exportToYAML(newDocument(tables), filepath.Join(dir, fmt.Sprintf("export_%s.yaml", timestamp)))
	case "csv":
		return exportToCSV(tables, filepath.Join(dir, fmt.Sprintf("export_%s_csv", timestamp)))
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: %v)", format, Formats)
	}
}

func newDocument(tables []*analytics.Table) Document {
	doc := Document{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Version:   "1.0",
		Tables:    make([]ExportedTable, 0, len(tables)),
	}

	for _, t := range tables {
		et := ExportedTable{
			Name:    t.Name,
			Title:   t.Title,
			Columns: t.ColumnNames(),
			Rows:    make([]map[string]interface{}, 0, len(t.Rows)),
		}
		for _, row := range t.Rows {
			m := make(map[string]interface{}, len(row))
			for i, v := range row {
				m[t.Columns[i].Name] = exportValue(v)
			}
			et.Rows = append(et.Rows, m)
		}
		doc.Tables = append(doc.Tables, et)
	}
	return doc
}

// exportValue keeps numbers numeric in structured formats.
func exportValue(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return d.Round(2).InexactFloat64()
	}
	return v
}

func exportToJSON(doc Document, filePath string) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToYAML(doc Document, filePath string) (string, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToCSV(tables []*analytics.Table, dirPath string) (string, error) {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create CSV directory: %w", err)
	}

	for _, t := range tables {
		if err := writeTableCSV(t, filepath.Join(dirPath, t.Name+".csv")); err != nil {
			return "", err
		}
	}
	return dirPath, nil
}

func writeTableCSV(t *analytics.Table, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", t.Name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.ColumnNames()); err != nil {
		return err
	}

	for _, row := range t.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = FormatCell(v)
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file for %s: %w", t.Name, err)
	}
	return file.Close()
}
