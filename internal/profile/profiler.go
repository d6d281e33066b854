// Package profile produces DataProfiles from raw datasets: per-column
// inferred types, missing-value counts, numeric summaries and duplicate-row
// detection. The orchestrator consumes it through the Profiler interface.
package profile

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Profiler is the contract the orchestrator consumes
type Profiler interface {
	Profile(ds *models.Dataset) (*models.DataProfile, error)
}

// categoricalDistinctRatio is the distinct/non-null ratio below which a
// string column is treated as categorical rather than free text
const categoricalDistinctRatio = 0.5

// categoricalMaxDistinct caps the distinct count for categorical inference
// on small datasets
const categoricalMaxDistinct = 20

// Service is the default Profiler implementation
type Service struct{}

// NewService creates a profiler service
func NewService() *Service {
	return &Service{}
}

// Profile analyzes a dataset and returns its complete profile
func (s *Service) Profile(ds *models.Dataset) (*models.DataProfile, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}

	rowCount := ds.RowCount()
	columns := make(map[string]models.ColumnProfile, ds.ColumnCount())

	totalCells := 0
	totalMissing := 0

	for _, name := range ds.Columns() {
		values, _ := ds.Column(name)
		col := s.profileColumn(name, values)
		columns[name] = col

		totalCells += len(values)
		totalMissing += col.NullCount
	}

	overallMissing := 0.0
	if totalCells > 0 {
		overallMissing = float64(totalMissing) / float64(totalCells) * 100.0
	}

	return &models.DataProfile{
		Timestamp:                time.Now(),
		RowCount:                 rowCount,
		ColumnCount:              ds.ColumnCount(),
		Columns:                  columns,
		OverallMissingPercentage: overallMissing,
		DuplicateRows:            countDuplicateRows(ds),
	}, nil
}

// profileColumn builds the profile for a single column
func (s *Service) profileColumn(name string, values []any) models.ColumnProfile {
	nullCount := 0
	for _, v := range values {
		if models.IsNull(v) {
			nullCount++
		}
	}

	nullPct := 0.0
	if len(values) > 0 {
		nullPct = float64(nullCount) / float64(len(values)) * 100.0
	}

	inferred := inferColumnType(values)

	col := models.ColumnProfile{
		Name:           name,
		Dtype:          storageDtype(values),
		NullCount:      nullCount,
		NullPercentage: nullPct,
		InferredType:   inferred,
	}

	if unique := countDistinct(values); unique >= 0 {
		col.UniqueCount = &unique
	}

	if inferred == models.TypeNumeric {
		numeric := numericValues(values)
		if len(numeric) > 0 {
			minV, maxV := numeric[0], numeric[0]
			for _, v := range numeric {
				if v < minV {
					minV = v
				}
				if v > maxV {
					maxV = v
				}
			}
			mean := stat.Mean(numeric, nil)
			col.MinValue = &minV
			col.MaxValue = &maxV
			col.Mean = &mean
			if len(numeric) > 1 {
				std := stat.StdDev(numeric, nil)
				col.Std = &std
			}
		}
	}

	return col
}

// inferColumnType classifies a column from its non-null cell kinds
func inferColumnType(values []any) models.InferredType {
	nonNull := 0
	numeric := 0
	boolean := 0
	datetime := 0
	strings := 0

	stringValues := make([]string, 0)

	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		nonNull++
		switch t := v.(type) {
		case float64, int64, int:
			numeric++
		case bool:
			boolean++
		case time.Time:
			datetime++
		case string:
			strings++
			stringValues = append(stringValues, t)
		}
	}

	if nonNull == 0 {
		return models.TypeText
	}

	switch {
	case numeric == nonNull:
		return models.TypeNumeric
	case boolean == nonNull:
		return models.TypeBoolean
	case datetime == nonNull:
		return models.TypeDatetime
	}

	if strings == nonNull {
		// All-parseable string columns promote to their parsed kind
		if allParseNumeric(stringValues) {
			return models.TypeNumeric
		}
		if allParseDatetime(stringValues) {
			return models.TypeDatetime
		}

		distinct := map[string]struct{}{}
		for _, s := range stringValues {
			distinct[s] = struct{}{}
		}
		ratio := float64(len(distinct)) / float64(len(stringValues))
		if ratio < categoricalDistinctRatio || len(distinct) <= categoricalMaxDistinct {
			return models.TypeCategorical
		}
		return models.TypeText
	}

	// Mixed cell kinds fall back to text
	return models.TypeText
}

func allParseNumeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, s := range values {
		if _, ok := models.AsFloat(s); !ok {
			return false
		}
	}
	return true
}

func allParseDatetime(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, s := range values {
		if _, ok := models.AsTime(s); !ok {
			return false
		}
	}
	return true
}

// storageDtype reports the storage type of the column's non-null cells
func storageDtype(values []any) string {
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		switch v.(type) {
		case float64:
			return "float64"
		case int64, int:
			return "int64"
		case bool:
			return "bool"
		case time.Time:
			return "datetime"
		case string:
			return "string"
		}
	}
	return "string"
}

// countDistinct counts distinct non-null values, or -1 when the column is empty
func countDistinct(values []any) int {
	seen := map[string]struct{}{}
	nonNull := 0
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		nonNull++
		seen[models.AsString(v)] = struct{}{}
	}
	if nonNull == 0 {
		return -1
	}
	return len(seen)
}

// numericValues extracts the float values of a column, skipping nulls and
// non-convertible cells
func numericValues(values []any) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		if f, ok := models.AsFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// countDuplicateRows counts rows that are exact copies of an earlier row
func countDuplicateRows(ds *models.Dataset) int {
	seen := map[string]struct{}{}
	duplicates := 0
	for i := 0; i < ds.RowCount(); i++ {
		key := ds.RowKey(i)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}
