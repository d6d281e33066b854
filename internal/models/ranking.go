package models

// TransformationCandidate binds a transformation to its evaluated validation
// and quality outcome. Immutable once assembled by the orchestrator.
type TransformationCandidate struct {
	Transformation   Transformation   `json:"transformation"`
	ValidationResult ValidationResult `json:"validation_result"`
	QualityBefore    QualityMetrics   `json:"quality_before"`
	QualityAfter     QualityMetrics   `json:"quality_after"`
	QualityDelta     QualityDelta     `json:"quality_delta"`
}

// RankedTransformation is a candidate with its assigned rank, composite score
// and a human-readable explanation of the ranking. Rank 1 is the top pick;
// ranks within one ranking run are contiguous and unique.
type RankedTransformation struct {
	Rank           int                     `json:"rank"`
	Candidate      TransformationCandidate `json:"candidate"`
	CompositeScore float64                 `json:"composite_score"`
	Reasoning      string                  `json:"reasoning"`
}
