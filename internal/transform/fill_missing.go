package transform

import (
	"fmt"
	"sort"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// fillMissingApplier fills nulls in a single column. Apply records the rows
// that were originally null; constant fills use that record to clear the
// fill again on Reverse.
type fillMissingApplier struct {
	t         models.Transformation
	fillValue any
	nullRows  []int
	applied   bool
}

func newFillMissingApplier(t models.Transformation) applier {
	return &fillMissingApplier{t: t}
}

func (a *fillMissingApplier) Apply(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	strategy := a.t.StrategyParam()
	fillValue, err := a.computeFillValue(strategy, values)
	if err != nil {
		return nil, err
	}

	out := ds.Clone()
	filled := make([]any, len(values))
	a.nullRows = a.nullRows[:0]
	for i, v := range values {
		if models.IsNull(v) {
			filled[i] = fillValue
			a.nullRows = append(a.nullRows, i)
		} else {
			filled[i] = v
		}
	}
	out.SetColumn(column, filled)

	a.fillValue = fillValue
	a.applied = true
	return out, nil
}

func (a *fillMissingApplier) computeFillValue(strategy string, values []any) (any, error) {
	switch strategy {
	case "mean":
		valid := validValues(numericColumn(values))
		if len(valid) == 0 {
			return nil, fmt.Errorf("no numeric values to compute mean")
		}
		sum := 0.0
		for _, v := range valid {
			sum += v
		}
		return sum / float64(len(valid)), nil
	case "median":
		valid := validValues(numericColumn(values))
		if len(valid) == 0 {
			return nil, fmt.Errorf("no numeric values to compute median")
		}
		return quantile(valid, 0.5), nil
	case "mode":
		mode, ok := modeValue(values)
		if !ok {
			return nil, fmt.Errorf("no values to compute mode")
		}
		return mode, nil
	case "constant":
		return a.t.FillValueParam(), nil
	default:
		return float64(0), nil
	}
}

// modeValue picks the most frequent non-null value, breaking count ties by
// the smallest string form so the result is deterministic
func modeValue(values []any) (any, bool) {
	counts := map[string]int{}
	byKey := map[string]any{}
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		key := models.AsString(v)
		counts[key]++
		byKey[key] = v
	}
	if len(counts) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return byKey[best], true
}

func (a *fillMissingApplier) Reverse(ds *models.Dataset) (*models.Dataset, error) {
	if a.t.StrategyParam() != "constant" {
		return nil, lib.ErrNotReversible(a.t, "original missing value positions are not preserved")
	}
	if !a.applied {
		return nil, lib.ErrNotReversible(a.t, "no recorded fill positions to restore")
	}

	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	out := ds.Clone()
	restored := make([]any, len(values))
	copy(restored, values)
	for _, row := range a.nullRows {
		if row < len(restored) {
			restored[row] = nil
		}
	}
	out.SetColumn(column, restored)
	return out, nil
}
