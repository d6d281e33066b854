package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// normalizeApplier rescales a numeric column. The scaling parameters
// captured during Apply make the operation invertible.
type normalizeApplier struct {
	t      models.Transformation
	method string

	// standard
	mean float64
	std  float64
	// minmax
	min float64
	max float64
	// robust
	median float64
	iqr    float64
}

func newNormalizeApplier(t models.Transformation) applier {
	return &normalizeApplier{t: t}
}

func (a *normalizeApplier) Apply(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	numeric := numericColumn(values)
	valid := validValues(numeric)

	out := ds.Clone()
	a.method = a.t.MethodParam("standard")

	// Nothing numeric to scale, leave the column untouched
	if len(valid) == 0 {
		return out, nil
	}

	scaled := make([]any, len(numeric))

	switch a.method {
	case "standard":
		a.mean = stat.Mean(valid, nil)
		a.std = 0
		if len(valid) > 1 {
			a.std = stat.StdDev(valid, nil)
		}
		for i, v := range numeric {
			switch {
			case math.IsNaN(v):
				scaled[i] = nil
			case a.std == 0 || math.IsNaN(a.std):
				scaled[i] = float64(0)
			default:
				scaled[i] = (v - a.mean) / a.std
			}
		}
	case "minmax":
		a.min, a.max = valid[0], valid[0]
		for _, v := range valid {
			if v < a.min {
				a.min = v
			}
			if v > a.max {
				a.max = v
			}
		}
		for i, v := range numeric {
			switch {
			case math.IsNaN(v):
				scaled[i] = nil
			case a.max == a.min:
				scaled[i] = float64(0.5)
			default:
				scaled[i] = (v - a.min) / (a.max - a.min)
			}
		}
	case "robust":
		a.median = quantile(valid, 0.5)
		a.iqr = quantile(valid, 0.75) - quantile(valid, 0.25)
		for i, v := range numeric {
			switch {
			case math.IsNaN(v):
				scaled[i] = nil
			case a.iqr == 0:
				scaled[i] = float64(0)
			default:
				scaled[i] = (v - a.median) / a.iqr
			}
		}
	default:
		return nil, fmt.Errorf("unknown normalization method: %s", a.method)
	}

	out.SetColumn(column, scaled)
	return out, nil
}

func (a *normalizeApplier) Reverse(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	out := ds.Clone()
	restored := make([]any, len(values))

	for i, v := range values {
		if models.IsNull(v) {
			restored[i] = nil
			continue
		}
		f, okF := models.AsFloat(v)
		if !okF {
			restored[i] = v
			continue
		}

		switch a.method {
		case "standard":
			if a.std > 0 {
				restored[i] = f*a.std + a.mean
			} else {
				restored[i] = a.mean
			}
		case "minmax":
			if a.max > a.min {
				restored[i] = f*(a.max-a.min) + a.min
			} else {
				restored[i] = a.min
			}
		case "robust":
			if a.iqr > 0 {
				restored[i] = f*a.iqr + a.median
			} else {
				restored[i] = a.median
			}
		default:
			restored[i] = v
		}
	}

	out.SetColumn(column, restored)
	return out, nil
}
