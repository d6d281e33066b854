package models

import "fmt"

// PipelineStep identifies a stage of the wrangling pipeline
type PipelineStep string

const (
	StepProfiling  PipelineStep = "profiling"
	StepGeneration PipelineStep = "generation"
	StepValidation PipelineStep = "validation"
	StepExecution  PipelineStep = "execution"
	StepScoring    PipelineStep = "scoring"
	StepRanking    PipelineStep = "ranking"
)

// pipelineStepOrder is the canonical step sequence
var pipelineStepOrder = []PipelineStep{
	StepProfiling,
	StepGeneration,
	StepValidation,
	StepExecution,
	StepScoring,
	StepRanking,
}

// IsValidPipelineStep checks if the step name is recognized
func IsValidPipelineStep(s PipelineStep) bool {
	for _, step := range pipelineStepOrder {
		if step == s {
			return true
		}
	}
	return false
}

// NextPipelineStep returns the step after the given one, or empty string at
// the end of the sequence
func NextPipelineStep(current PipelineStep) PipelineStep {
	for i, step := range pipelineStepOrder {
		if step == current && i+1 < len(pipelineStepOrder) {
			return pipelineStepOrder[i+1]
		}
	}
	return ""
}

// PipelineState is the evolving state of one pipeline run. Created at run
// start, mutated by the orchestrator after each step, and persisted as a
// checkpoint so a run can be resumed or inspected.
type PipelineState struct {
	CurrentStep           PipelineStep              `json:"current_step"`
	CompletedSteps        []PipelineStep            `json:"completed_steps"`
	DataProfile           *DataProfile              `json:"data_profile,omitempty"`
	Candidates            []TransformationCandidate `json:"candidates"`
	RankedTransformations []RankedTransformation    `json:"ranked_transformations"`
	Error                 string                    `json:"error,omitempty"`
}

// NewPipelineState creates the initial state for a fresh run
func NewPipelineState() *PipelineState {
	return &PipelineState{
		CurrentStep:           StepProfiling,
		CompletedSteps:        []PipelineStep{},
		Candidates:            []TransformationCandidate{},
		RankedTransformations: []RankedTransformation{},
	}
}

// Validate checks internal consistency of a pipeline state, used before
// persisting and after loading a checkpoint
func (s *PipelineState) Validate() error {
	if !IsValidPipelineStep(s.CurrentStep) {
		return fmt.Errorf("invalid current step: %q", s.CurrentStep)
	}
	for _, step := range s.CompletedSteps {
		if !IsValidPipelineStep(step) {
			return fmt.Errorf("invalid completed step: %q", step)
		}
	}
	for i, ranked := range s.RankedTransformations {
		if ranked.Rank != i+1 {
			return fmt.Errorf("ranked transformations out of order: rank %d at position %d", ranked.Rank, i)
		}
	}
	return nil
}

// HasCompleted reports whether a step has already completed
func (s *PipelineState) HasCompleted(step PipelineStep) bool {
	for _, done := range s.CompletedSteps {
		if done == step {
			return true
		}
	}
	return false
}
