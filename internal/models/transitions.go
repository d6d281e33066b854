package models

// CompleteStep creates a new PipelineState with the given step recorded as
// completed and the current step advanced to next.
// Pure function - returns new instance, does not mutate original
func CompleteStep(state PipelineState, completed PipelineStep, next PipelineStep) PipelineState {
	steps := make([]PipelineStep, len(state.CompletedSteps))
	copy(steps, state.CompletedSteps)
	state.CompletedSteps = append(steps, completed)
	if next != "" {
		state.CurrentStep = next
	}
	return state
}

// WithProfile creates a new PipelineState carrying the data profile
// Pure function - returns new instance
func WithProfile(state PipelineState, profile *DataProfile) PipelineState {
	state.DataProfile = profile
	return state
}

// WithCandidates creates a new PipelineState carrying the evaluated candidates
// Pure function - returns new instance
func WithCandidates(state PipelineState, candidates []TransformationCandidate) PipelineState {
	state.Candidates = candidates
	return state
}

// WithRanking creates a new PipelineState carrying the ranked transformations
// Pure function - returns new instance
func WithRanking(state PipelineState, ranked []RankedTransformation) PipelineState {
	state.RankedTransformations = ranked
	return state
}

// RecordError creates a new PipelineState with the error message set
// Pure function - returns new instance
func RecordError(state PipelineState, errMsg string) PipelineState {
	state.Error = errMsg
	return state
}
