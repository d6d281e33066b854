package transform

import (
	"fmt"
	"sort"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// encodeApplier converts a categorical column to a numeric representation.
// Label encoding maps sorted categories to integers; one-hot encoding fans
// the column out into one indicator column per category.
type encodeApplier struct {
	t      models.Transformation
	method string

	// label
	mapping map[string]int64
	// onehot
	categories []string // Indicator column names in insertion order
}

func newEncodeApplier(t models.Transformation) applier {
	return &encodeApplier{t: t}
}

func (a *encodeApplier) Apply(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	a.method = a.t.MethodParam("label")

	switch a.method {
	case "label":
		return a.applyLabel(ds, column, values)
	case "onehot":
		return a.applyOnehot(ds, column, values)
	default:
		return nil, fmt.Errorf("unknown encoding method: %s", a.method)
	}
}

func (a *encodeApplier) applyLabel(ds *models.Dataset, column string, values []any) (*models.Dataset, error) {
	unique := map[string]struct{}{}
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		unique[models.AsString(v)] = struct{}{}
	}

	sorted := make([]string, 0, len(unique))
	for v := range unique {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	a.mapping = make(map[string]int64, len(sorted))
	for i, v := range sorted {
		a.mapping[v] = int64(i)
	}

	encoded := make([]any, len(values))
	for i, v := range values {
		if models.IsNull(v) {
			encoded[i] = nil
			continue
		}
		encoded[i] = a.mapping[models.AsString(v)]
	}

	out := ds.Clone()
	out.SetColumn(column, encoded)
	return out, nil
}

func (a *encodeApplier) applyOnehot(ds *models.Dataset, column string, values []any) (*models.Dataset, error) {
	unique := map[string]struct{}{}
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		unique[models.AsString(v)] = struct{}{}
	}

	sorted := make([]string, 0, len(unique))
	for v := range unique {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	out := ds.Clone()
	out.DropColumn(column)

	a.categories = make([]string, 0, len(sorted))
	for _, category := range sorted {
		indicator := make([]any, len(values))
		for i, v := range values {
			if !models.IsNull(v) && models.AsString(v) == category {
				indicator[i] = int64(1)
			} else {
				indicator[i] = int64(0)
			}
		}
		name := fmt.Sprintf("%s_%s", column, category)
		out.AddColumn(name, indicator)
		a.categories = append(a.categories, name)
	}

	return out, nil
}

func (a *encodeApplier) Reverse(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]

	switch a.method {
	case "label":
		values, ok := ds.Column(column)
		if !ok {
			return nil, fmt.Errorf("column %s not found", column)
		}

		inverse := make(map[int64]string, len(a.mapping))
		for category, code := range a.mapping {
			inverse[code] = category
		}

		decoded := make([]any, len(values))
		for i, v := range values {
			if models.IsNull(v) {
				decoded[i] = nil
				continue
			}
			f, okF := models.AsFloat(v)
			if !okF {
				decoded[i] = nil
				continue
			}
			if category, found := inverse[int64(f)]; found {
				decoded[i] = category
			} else {
				decoded[i] = nil
			}
		}

		out := ds.Clone()
		out.SetColumn(column, decoded)
		return out, nil

	case "onehot":
		rowCount := ds.RowCount()
		decoded := make([]any, rowCount)
		prefix := column + "_"

		for _, indicator := range a.categories {
			values, ok := ds.Column(indicator)
			if !ok {
				continue
			}
			category := indicator[len(prefix):]
			for i, v := range values {
				if f, okF := models.AsFloat(v); okF && f == 1 {
					decoded[i] = category
				}
			}
		}

		out := ds.Clone()
		for _, indicator := range a.categories {
			out.DropColumn(indicator)
		}
		out.AddColumn(column, decoded)
		return out, nil

	default:
		return nil, fmt.Errorf("unknown encoding method: %s", a.method)
	}
}
