package transform

import (
	"fmt"
	"strings"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// castApplier converts a column to a different value kind. Cells that cannot
// be converted become null. The original cells are kept on the instance so
// Reverse can restore them exactly.
type castApplier struct {
	t        models.Transformation
	original []any
	applied  bool
}

func newCastApplier(t models.Transformation) applier {
	return &castApplier{t: t}
}

func (a *castApplier) Apply(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	a.original = make([]any, len(values))
	copy(a.original, values)
	a.applied = true

	targetType := a.t.TargetTypeParam()
	cast := make([]any, len(values))

	for i, v := range values {
		if models.IsNull(v) {
			cast[i] = nil
			continue
		}

		switch targetType {
		case "numeric":
			if f, okF := models.AsFloat(v); okF {
				cast[i] = f
			} else {
				cast[i] = nil
			}
		case "datetime":
			if t, okT := models.AsTime(v); okT {
				cast[i] = t
			} else {
				cast[i] = nil
			}
		case "string":
			cast[i] = models.AsString(v)
		case "boolean":
			cast[i] = castBool(v)
		default:
			return nil, fmt.Errorf("unknown target type: %s", targetType)
		}
	}

	out := ds.Clone()
	out.SetColumn(column, cast)
	return out, nil
}

func castBool(v any) any {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(t) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		return t != ""
	default:
		if f, ok := models.AsFloat(v); ok {
			return f != 0
		}
		return true
	}
}

func (a *castApplier) Reverse(ds *models.Dataset) (*models.Dataset, error) {
	if !a.applied {
		return nil, fmt.Errorf("no recorded original values to restore")
	}

	column := a.t.TargetColumns[0]
	if !ds.HasColumn(column) {
		return nil, fmt.Errorf("column %s not found", column)
	}

	restored := make([]any, len(a.original))
	copy(restored, a.original)

	out := ds.Clone()
	out.SetColumn(column, restored)
	return out, nil
}
