package lib

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// WranglerError represents a user-friendly error with context and guidance
type WranglerError struct {
	Category    ErrorCategory
	Message     string   // Short description of what went wrong
	Cause       error    // Underlying error
	Guidance    []string // What the user can do to fix it
	IsRetryable bool     // Can this error be automatically retried?
}

// ErrorCategory classifies errors by the component that produced them
type ErrorCategory string

const (
	CategoryGeneration     ErrorCategory = "generation"
	CategoryTransformation ErrorCategory = "transformation"
	CategoryValidation     ErrorCategory = "validation"
	CategoryScoring        ErrorCategory = "scoring"
	CategoryRanking        ErrorCategory = "ranking"
	CategoryOrchestration  ErrorCategory = "orchestration"
	CategoryConfiguration  ErrorCategory = "configuration"
	CategoryState          ErrorCategory = "state"
)

// Error implements the error interface
func (e *WranglerError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] ", strings.ToUpper(string(e.Category))))
	sb.WriteString(e.Message)

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e *WranglerError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a formatted message suitable for displaying to end users
func (e *WranglerError) UserMessage() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if len(e.Guidance) > 0 {
		sb.WriteString("\nHow to fix:\n")
		for i, guide := range e.Guidance {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, guide))
		}
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("\nTechnical details: %v\n", e.Cause))
	}

	return sb.String()
}

// Generation Errors

// ErrMalformedProfile creates an error for a profile the generator cannot use
func ErrMalformedProfile(reason string) *WranglerError {
	return &WranglerError{
		Category: CategoryGeneration,
		Message:  fmt.Sprintf("Cannot generate candidates: %s", reason),
		Guidance: []string{
			"Re-run profiling on the input dataset",
			"Check that the dataset has at least one column",
		},
		IsRetryable: false,
	}
}

// Transformation Errors

// ErrUnknownTransformationType creates an error for an unregistered type tag
func ErrUnknownTransformationType(t models.TransformationType) *WranglerError {
	return &WranglerError{
		Category: CategoryTransformation,
		Message:  fmt.Sprintf("Unknown transformation type: %s", t),
		Guidance: []string{
			"Check that the transformation type is one of the supported operations",
			"Rebuild the candidate list from a fresh profile",
		},
		IsRetryable: false,
	}
}

// ErrNotReversible creates an error for a reverse attempt on an irreversible
// transformation
func ErrNotReversible(t models.Transformation, reason string) *WranglerError {
	return &WranglerError{
		Category: CategoryTransformation,
		Message:  fmt.Sprintf("Transformation %s is not reversible: %s", t.Type, reason),
		Guidance: []string{
			"Keep a copy of the input dataset before applying irreversible transformations",
			"Check reversibility with the classifier before attempting a reverse",
		},
		IsRetryable: false,
	}
}

// ErrApplierFailure wraps a failure inside a transform applier
func ErrApplierFailure(t models.Transformation, cause error) *WranglerError {
	return &WranglerError{
		Category: CategoryTransformation,
		Message:  fmt.Sprintf("Applier for %s failed on columns %v", t.Type, t.TargetColumns),
		Cause:    cause,
		Guidance: []string{
			"Check that the target columns exist and hold the expected value kinds",
			"Inspect the transformation parameters",
		},
		IsRetryable: false,
	}
}

// Scoring Errors

// ErrInvalidWeights creates an error for metric weights that do not sum to 1
func ErrInvalidWeights(cause error) *WranglerError {
	return &WranglerError{
		Category: CategoryScoring,
		Message:  "Invalid quality metric weights",
		Cause:    cause,
		Guidance: []string{
			"Adjust scoring.weights in wrangler.yaml so the four weights sum to 1.0",
		},
		IsRetryable: false,
	}
}

// Ranking Errors

// ErrNoPolicySet creates an error for ranking without an attached policy
func ErrNoPolicySet() *WranglerError {
	return &WranglerError{
		Category: CategoryRanking,
		Message:  "No ranking policy set",
		Guidance: []string{
			"Attach a policy with SetPolicy before calling Rank",
			"Set pipeline.ranking_policy in wrangler.yaml",
		},
		IsRetryable: false,
	}
}

// Orchestration Errors

// ErrCheckpointFailure wraps a checkpoint store fault
func ErrCheckpointFailure(name string, cause error) *WranglerError {
	return &WranglerError{
		Category: CategoryState,
		Message:  fmt.Sprintf("Failed to persist checkpoint %q", name),
		Cause:    cause,
		Guidance: []string{
			"Check that the checkpoint directory is writable",
			"Free up disk space if the device is full",
		},
		IsRetryable: true,
	}
}

// ErrCheckpointNotFound creates an error for a missing checkpoint
func ErrCheckpointNotFound(name string) *WranglerError {
	return &WranglerError{
		Category: CategoryState,
		Message:  fmt.Sprintf("Checkpoint %q not found", name),
		Guidance: []string{
			"Check the checkpoint name is correct",
			"Use 'wrangler checkpoint list' to see all saved checkpoints",
		},
		IsRetryable: false,
	}
}

// ErrCorruptedCheckpoint creates an error for an unreadable checkpoint document
func ErrCorruptedCheckpoint(name string, cause error) *WranglerError {
	return &WranglerError{
		Category: CategoryState,
		Message:  fmt.Sprintf("Checkpoint %q is corrupted", name),
		Cause:    cause,
		Guidance: []string{
			"The checkpoint document may have been manually edited",
			"Delete the checkpoint and start a fresh run",
		},
		IsRetryable: false,
	}
}

// ErrStepFault creates an error for an unrecoverable step failure
func ErrStepFault(step models.PipelineStep, cause error) *WranglerError {
	return &WranglerError{
		Category: CategoryOrchestration,
		Message:  fmt.Sprintf("Pipeline step %s failed", step),
		Cause:    cause,
		Guidance: []string{
			"Inspect the saved checkpoint for partial results",
			"Adjust recovery.strategy to skip or fallback to continue past this step",
		},
		IsRetryable: IsTransientError(cause),
	}
}

// Helper Functions

// ClassifyError examines an error and wraps it with appropriate guidance
func ClassifyError(err error) *WranglerError {
	if err == nil {
		return nil
	}

	var werr *WranglerError
	if errors.As(err, &werr) {
		return werr
	}

	return &WranglerError{
		Category:    CategoryOrchestration,
		Message:     "An error occurred",
		Cause:       err,
		Guidance:    []string{"Check the technical details below", "See logs for more information"},
		IsRetryable: IsTransientError(err),
	}
}

// IsTransientError checks if an error is likely transient and worth retrying.
// Checkpoint I/O faults are the main retryable class in this pipeline.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	var werr *WranglerError
	if errors.As(err, &werr) {
		return werr.IsRetryable
	}

	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"timeout",
		"temporary failure",
		"deadline exceeded",
		"resource temporarily unavailable",
		"database is locked",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
