package score

import (
	"math"
	"time"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// completeness is the ratio of non-null cells across the whole dataset.
// An empty dataset scores 1.0.
func completeness(ds *models.Dataset) float64 {
	totalCells := 0
	nonNull := 0

	for _, name := range ds.Columns() {
		values, _ := ds.Column(name)
		totalCells += len(values)
		for _, v := range values {
			if !models.IsNull(v) {
				nonNull++
			}
		}
	}

	if totalCells == 0 {
		return 1.0
	}
	return models.ClampScore(float64(nonNull) / float64(totalCells))
}

// consistency averages per-column kind uniformity. A column is consistent
// when its non-null cells share one value kind.
func consistency(ds *models.Dataset) float64 {
	columns := ds.Columns()
	if len(columns) == 0 || ds.RowCount() == 0 {
		return 1.0
	}

	total := 0.0
	for _, name := range columns {
		values, _ := ds.Column(name)
		total += columnConsistency(values)
	}
	return models.ClampScore(total / float64(len(columns)))
}

func columnConsistency(values []any) float64 {
	counts := map[string]int{}
	nonNull := 0

	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		nonNull++
		switch v.(type) {
		case bool:
			counts["bool"]++
		case float64, int64, int:
			counts["numeric"]++
		case time.Time:
			counts["datetime"]++
		case string:
			counts["string"]++
		default:
			counts["other"]++
		}
	}

	if nonNull == 0 {
		return 1.0
	}

	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	return float64(best) / float64(nonNull)
}

// validity averages per-column value plausibility. With a profile, numeric
// values are checked against the profiled range; without one, generic checks
// reject infinities and empty strings.
func validity(ds *models.Dataset, profile *models.DataProfile) float64 {
	columns := ds.Columns()
	if len(columns) == 0 || ds.RowCount() == 0 {
		return 1.0
	}

	total := 0.0
	for _, name := range columns {
		values, _ := ds.Column(name)

		var col *models.ColumnProfile
		if profile != nil {
			if p, ok := profile.Columns[name]; ok {
				col = &p
			}
		}
		total += columnValidity(values, col)
	}
	return models.ClampScore(total / float64(len(columns)))
}

func columnValidity(values []any, col *models.ColumnProfile) float64 {
	nonNull := []any{}
	for _, v := range values {
		if !models.IsNull(v) {
			nonNull = append(nonNull, v)
		}
	}
	if len(nonNull) == 0 {
		return 1.0
	}

	if col != nil && col.InferredType == models.TypeNumeric {
		return numericRangeValidity(nonNull, col.MinValue, col.MaxValue)
	}

	valid := 0
	for _, v := range nonNull {
		switch t := v.(type) {
		case float64:
			if !math.IsInf(t, 0) && !math.IsNaN(t) {
				valid++
			}
		case string:
			if t != "" {
				valid++
			}
		default:
			valid++
		}
	}
	return float64(valid) / float64(len(nonNull))
}

func numericRangeValidity(values []any, minValue, maxValue *float64) float64 {
	if minValue == nil && maxValue == nil {
		return 1.0
	}

	valid := 0
	for _, v := range values {
		f, ok := models.AsFloat(v)
		if !ok || math.IsNaN(f) {
			continue
		}
		if minValue != nil && f < *minValue {
			continue
		}
		if maxValue != nil && f > *maxValue {
			continue
		}
		valid++
	}
	return float64(valid) / float64(len(values))
}

// uniqueness averages per-column distinct ratios over non-null values.
// A profiled unique count, when present, is preferred over recomputing.
func uniqueness(ds *models.Dataset, profile *models.DataProfile) float64 {
	columns := ds.Columns()
	if len(columns) == 0 || ds.RowCount() == 0 {
		return 1.0
	}

	total := 0.0
	for _, name := range columns {
		values, _ := ds.Column(name)

		var col *models.ColumnProfile
		if profile != nil {
			if p, ok := profile.Columns[name]; ok {
				col = &p
			}
		}
		total += columnUniqueness(values, col)
	}
	return models.ClampScore(total / float64(len(columns)))
}

func columnUniqueness(values []any, col *models.ColumnProfile) float64 {
	nonNull := 0
	for _, v := range values {
		if !models.IsNull(v) {
			nonNull++
		}
	}
	if nonNull == 0 {
		return 1.0
	}

	if col != nil && col.UniqueCount != nil {
		return models.ClampScore(float64(*col.UniqueCount) / float64(nonNull))
	}

	seen := map[string]struct{}{}
	for _, v := range values {
		if !models.IsNull(v) {
			seen[models.AsString(v)] = struct{}{}
		}
	}
	return models.ClampScore(float64(len(seen)) / float64(nonNull))
}
