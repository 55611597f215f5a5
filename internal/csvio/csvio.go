package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/Lumos-Labs-HQ/insight/internal/seeder"
	"github.com/shopspring/decimal"
)

// ErrSourceMissing is returned when an input file does not exist.
var ErrSourceMissing = errors.New("input source not found")

// WriteDataset writes one CSV per entity into dir and returns the absolute
// paths in entity order.
func WriteDataset(dir string, ds *seeder.Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, entity := range models.Entities() {
		path := filepath.Join(dir, entity.FileName())
		if err := WriteFile(path, entity, ds.Records(entity)); err != nil {
			return paths, err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

func WriteFile(path string, entity models.Entity, records []models.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", entity.Name, err)
	}
	defer file.Close()

	if err := Write(file, entity, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// Write encodes records with a header of the entity's non-id columns.
func Write(w io.Writer, entity models.Entity, records []models.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(entity.ColumnNames()); err != nil {
		return err
	}

	for _, record := range records {
		values, err := entity.Values(record)
		if err != nil {
			return err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case decimal.Decimal:
		return val.StringFixed(2)
	case time.Time:
		return val.Format(models.DateLayout)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func ReadFile(path string, entity models.Entity) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := Read(file, entity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read decodes a CSV stream. The header must name every non-id column of the
// entity; column order is free and unknown columns are ignored.
func Read(r io.Reader, entity models.Entity) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty, expected header %s", strings.Join(entity.ColumnNames(), ","))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range entity.Columns {
		if _, ok := index[col.Name]; !ok {
			return nil, fmt.Errorf("header is missing column %s", col.Name)
		}
	}

	records := []models.Record{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record := make(models.Record, len(entity.Columns))
		for _, col := range entity.Columns {
			raw := strings.TrimSpace(row[index[col.Name]])
			v, err := ParseValue(col.Kind, raw)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, col.Name, err)
			}
			record[col.Name] = v
		}
		records = append(records, record)
	}

	return records, nil
}

func ParseValue(kind models.Kind, raw string) (interface{}, error) {
	switch kind {
	case models.KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return n, nil
	case models.KindDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal %q", raw)
		}
		return d, nil
	case models.KindDate:
		t, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
		}
		return t, nil
	default:
		return raw, nil
	}
}
