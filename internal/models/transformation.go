package models

import "time"

// TransformationType defines the closed set of transformation operations
type TransformationType string

const (
	TransformFillMissing       TransformationType = "fill_missing"
	TransformNormalize         TransformationType = "normalize"
	TransformEncodeCategorical TransformationType = "encode_categorical"
	TransformRemoveOutliers    TransformationType = "remove_outliers"
	TransformDropDuplicates    TransformationType = "drop_duplicates"
	TransformCastType          TransformationType = "cast_type"
)

// IsValidTransformationType checks if the transformation type is recognized
func IsValidTransformationType(t TransformationType) bool {
	switch t {
	case TransformFillMissing, TransformNormalize, TransformEncodeCategorical,
		TransformRemoveOutliers, TransformDropDuplicates, TransformCastType:
		return true
	default:
		return false
	}
}

// Transformation describes a single candidate data-cleaning operation.
// Immutable once created by the candidate generator.
type Transformation struct {
	ID            string             `json:"id"`
	Type          TransformationType `json:"type"`
	TargetColumns []string           `json:"target_columns"`
	Params        map[string]any     `json:"params"`
	Reversible    bool               `json:"reversible"`
	Description   string             `json:"description"`
}

// Well-known parameter keys
const (
	ParamStrategy   = "strategy"
	ParamMethod     = "method"
	ParamFillValue  = "fill_value"
	ParamThreshold  = "threshold"
	ParamAction     = "action"
	ParamTargetType = "target_type"
)

// StrategyParam returns the fill strategy, defaulting to "mean"
func (t Transformation) StrategyParam() string {
	return t.stringParam(ParamStrategy, "mean")
}

// MethodParam returns the method parameter with the given default
func (t Transformation) MethodParam(def string) string {
	return t.stringParam(ParamMethod, def)
}

// TargetTypeParam returns the cast target type, defaulting to "numeric"
func (t Transformation) TargetTypeParam() string {
	return t.stringParam(ParamTargetType, "numeric")
}

// ActionParam returns the outlier action, defaulting to "mask"
func (t Transformation) ActionParam() string {
	return t.stringParam(ParamAction, "mask")
}

// ThresholdParam returns the numeric threshold parameter with the given default
func (t Transformation) ThresholdParam(def float64) float64 {
	if v, ok := t.Params[ParamThreshold]; ok {
		if f, ok := AsFloat(v); ok {
			return f
		}
	}
	return def
}

// FillValueParam returns the constant fill value, defaulting to zero
func (t Transformation) FillValueParam() any {
	if v, ok := t.Params[ParamFillValue]; ok {
		return v
	}
	return float64(0)
}

func (t Transformation) stringParam(key, def string) string {
	if v, ok := t.Params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// TransformationResult wraps the outcome of applying a single transformation.
// On failure OutputData carries the original dataset unchanged.
type TransformationResult struct {
	Transformation Transformation `json:"transformation"`
	Success        bool           `json:"success"`
	OutputData     *Dataset       `json:"-"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	ExecutionTime  time.Duration  `json:"execution_time"`
}
