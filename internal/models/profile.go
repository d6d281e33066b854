package models

import (
	"sort"
	"time"
)

// InferredType classifies a column's semantic type as detected by the profiler
type InferredType string

const (
	TypeNumeric     InferredType = "numeric"
	TypeCategorical InferredType = "categorical"
	TypeDatetime    InferredType = "datetime"
	TypeText        InferredType = "text"
	TypeBoolean     InferredType = "boolean"
)

// IsValidInferredType checks if the inferred type is recognized
func IsValidInferredType(t InferredType) bool {
	switch t {
	case TypeNumeric, TypeCategorical, TypeDatetime, TypeText, TypeBoolean:
		return true
	default:
		return false
	}
}

// ColumnProfile holds profiling results for a single column
type ColumnProfile struct {
	Name           string       `json:"name"`
	Dtype          string       `json:"dtype"`           // Storage type of the column cells
	NullCount      int          `json:"null_count"`      // Missing cells (nil, NaN, empty string)
	NullPercentage float64      `json:"null_percentage"` // NullCount / row count * 100
	UniqueCount    *int         `json:"unique_count,omitempty"`
	MinValue       *float64     `json:"min_value,omitempty"` // Numeric columns only
	MaxValue       *float64     `json:"max_value,omitempty"`
	Mean           *float64     `json:"mean,omitempty"`
	Std            *float64     `json:"std,omitempty"` // Sample standard deviation
	InferredType   InferredType `json:"inferred_type"`
}

// DataProfile is the complete profiling result for a dataset
type DataProfile struct {
	Timestamp                time.Time                `json:"timestamp"`
	RowCount                 int                      `json:"row_count"`
	ColumnCount              int                      `json:"column_count"`
	Columns                  map[string]ColumnProfile `json:"columns"`
	OverallMissingPercentage float64                  `json:"overall_missing_percentage"`
	DuplicateRows            int                      `json:"duplicate_rows"`
}

// ColumnNames returns profiled column names in deterministic (sorted) order
func (p *DataProfile) ColumnNames() []string {
	names := make([]string, 0, len(p.Columns))
	for name := range p.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
