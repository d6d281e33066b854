package transform

import (
	"math"
	"sort"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// applier performs one transformation on a dataset and, when the
// transformation supports it, undoes it again. Instances carry the state
// captured during Apply (scaling parameters, category mappings, original
// values) that Reverse needs, so the executor retains them per candidate.
type applier interface {
	Apply(ds *models.Dataset) (*models.Dataset, error)
	Reverse(ds *models.Dataset) (*models.Dataset, error)
}

type applierConstructor func(t models.Transformation) applier

var applierRegistry = map[models.TransformationType]applierConstructor{
	models.TransformFillMissing:       newFillMissingApplier,
	models.TransformNormalize:         newNormalizeApplier,
	models.TransformEncodeCategorical: newEncodeApplier,
	models.TransformRemoveOutliers:    newOutlierApplier,
	models.TransformDropDuplicates:    newDropDuplicatesApplier,
	models.TransformCastType:          newCastApplier,
}

func newApplier(t models.Transformation) (applier, error) {
	ctor, ok := applierRegistry[t.Type]
	if !ok {
		return nil, lib.ErrUnknownTransformationType(t.Type)
	}
	return ctor(t), nil
}

// numericColumn coerces a column to floats. Cells that are null or not
// convertible come back as NaN so positions stay aligned with the rows.
func numericColumn(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if models.IsNull(v) {
			out[i] = math.NaN()
			continue
		}
		f, ok := models.AsFloat(v)
		if !ok || math.IsInf(f, 0) {
			out[i] = math.NaN()
			continue
		}
		out[i] = f
	}
	return out
}

// validValues filters the NaN entries out of a coerced column
func validValues(numeric []float64) []float64 {
	out := make([]float64, 0, len(numeric))
	for _, v := range numeric {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// quantile computes the p-th quantile with linear interpolation between
// order statistics, matching the convention profiling tools default to.
func quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
