package lib

import (
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// StepPrerequisites defines which steps must complete before a given step can run
var StepPrerequisites = map[models.PipelineStep][]models.PipelineStep{
	models.StepProfiling:  {}, // No prerequisites - can always run
	models.StepGeneration: {models.StepProfiling},
	models.StepValidation: {models.StepGeneration},
	models.StepExecution:  {models.StepGeneration},
	models.StepScoring:    {models.StepGeneration},
	models.StepRanking:    {models.StepValidation},
}

// ValidateStepPrerequisites checks if all prerequisite steps have completed.
// Returns the first missing prerequisite, or empty string if all are met.
func ValidateStepPrerequisites(state *models.PipelineState, step models.PipelineStep) (models.PipelineStep, bool) {
	prerequisites, exists := StepPrerequisites[step]
	if !exists {
		return "", true
	}

	for _, prerequisite := range prerequisites {
		if !state.HasCompleted(prerequisite) {
			return prerequisite, false
		}
	}

	return "", true
}
