package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// outlierApplier detects outliers in a numeric column and either masks them
// to null or removes their rows. Neither action is reversible.
type outlierApplier struct {
	t            models.Transformation
	outlierCount int
}

func newOutlierApplier(t models.Transformation) applier {
	return &outlierApplier{t: t}
}

func (a *outlierApplier) Apply(ds *models.Dataset) (*models.Dataset, error) {
	column := a.t.TargetColumns[0]
	values, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %s not found", column)
	}

	numeric := numericColumn(values)
	valid := validValues(numeric)

	// No numeric data means no outliers to find
	if len(valid) == 0 {
		return ds.Clone(), nil
	}

	method := a.t.MethodParam("iqr")
	action := a.t.ActionParam()

	var outlier []bool
	switch method {
	case "iqr":
		threshold := a.t.ThresholdParam(1.5)
		q1 := quantile(valid, 0.25)
		q3 := quantile(valid, 0.75)
		iqr := q3 - q1
		lower := q1 - threshold*iqr
		upper := q3 + threshold*iqr

		outlier = make([]bool, len(numeric))
		for i, v := range numeric {
			outlier[i] = !math.IsNaN(v) && (v < lower || v > upper)
		}
	case "zscore":
		threshold := a.t.ThresholdParam(3.0)
		mean := stat.Mean(valid, nil)
		std := 0.0
		if len(valid) > 1 {
			std = stat.StdDev(valid, nil)
		}

		outlier = make([]bool, len(numeric))
		if std > 0 {
			for i, v := range numeric {
				outlier[i] = !math.IsNaN(v) && math.Abs((v-mean)/std) > threshold
			}
		}
	default:
		return nil, fmt.Errorf("unknown outlier method: %s", method)
	}

	a.outlierCount = 0
	for _, o := range outlier {
		if o {
			a.outlierCount++
		}
	}

	if action == "remove" {
		keep := make([]bool, len(outlier))
		for i, o := range outlier {
			keep[i] = !o
		}
		return ds.Filter(keep), nil
	}

	// Mask outliers to null in place
	out := ds.Clone()
	masked := make([]any, len(values))
	copy(masked, values)
	for i, o := range outlier {
		if o {
			masked[i] = nil
		}
	}
	out.SetColumn(column, masked)
	return out, nil
}

func (a *outlierApplier) Reverse(ds *models.Dataset) (*models.Dataset, error) {
	return nil, lib.ErrNotReversible(a.t, "outlier values have been permanently discarded")
}

// OutlierCount reports how many outliers the last Apply found
func (a *outlierApplier) OutlierCount() int {
	return a.outlierCount
}
