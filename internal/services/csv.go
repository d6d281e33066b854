package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// ReadDatasetCSV loads a CSV file into a dataset. The first record is the
// header; empty cells become nulls and remaining cells are typed by parsing
// (int, float, bool, then string).
func ReadDatasetCSV(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset is empty: %s", path)
	}

	header := records[0]
	ds := models.NewDataset()

	for colIdx, name := range header {
		values := make([]any, 0, len(records)-1)
		for _, record := range records[1:] {
			if colIdx >= len(record) {
				values = append(values, nil)
				continue
			}
			values = append(values, parseCell(record[colIdx]))
		}
		ds.AddColumn(name, values)
	}

	return ds, nil
}

// parseCell types a raw CSV cell. Parsing order matters: ints before floats
// so "3" stays integral, bools last among literals because "1"/"0" should
// stay numeric.
func parseCell(raw string) any {
	if raw == "" {
		return nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch raw {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	}
	return raw
}

// WriteDatasetCSV writes a dataset out as CSV. Nulls become empty cells.
func WriteDatasetCSV(path string, ds *models.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	columns := ds.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < ds.RowCount(); i++ {
		record := make([]string, len(columns))
		for j, name := range columns {
			values, _ := ds.Column(name)
			if i >= len(values) || models.IsNull(values[i]) {
				record[j] = ""
				continue
			}
			record[j] = formatCell(values[i])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return nil
}

func formatCell(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return models.AsString(v)
	}
}
