package lib

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func TestWranglerError_ErrorFormatting(t *testing.T) {
	err := ErrCheckpointFailure("nightly", errors.New("disk full"))

	msg := err.Error()
	assert.Contains(t, msg, "[STATE]")
	assert.Contains(t, msg, `Failed to persist checkpoint "nightly"`)
	assert.Contains(t, msg, "disk full")
}

func TestWranglerError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrCheckpointFailure("nightly", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("outer: %w", err)
	var werr *WranglerError
	require.ErrorAs(t, wrapped, &werr)
	assert.Equal(t, CategoryState, werr.Category)
}

func TestWranglerError_UserMessage(t *testing.T) {
	err := ErrCheckpointNotFound("nightly")

	msg := err.UserMessage()
	assert.Contains(t, msg, "Error: ")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. ")
}

func TestErrStepFault_InheritsRetryability(t *testing.T) {
	transient := ErrCheckpointFailure("run", errors.New("disk full"))
	assert.True(t, ErrStepFault(models.StepProfiling, transient).IsRetryable)

	permanent := ErrNotReversible(models.Transformation{Type: models.TransformRemoveOutliers}, "rows were dropped")
	assert.False(t, ErrStepFault(models.StepProfiling, permanent).IsRetryable)
}

func TestClassifyError(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))

	// A WranglerError anywhere in the chain is returned as-is
	original := ErrNoPolicySet()
	wrapped := fmt.Errorf("ranking: %w", original)
	assert.Same(t, original, ClassifyError(wrapped))

	// Plain errors get a generic wrapper
	classified := ClassifyError(errors.New("boom"))
	assert.Equal(t, CategoryOrchestration, classified.Category)
	assert.NotEmpty(t, classified.Guidance)
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, IsTransientError(nil))
	assert.True(t, IsTransientError(errors.New("operation timeout")))
	assert.True(t, IsTransientError(errors.New("database is locked")))
	assert.False(t, IsTransientError(errors.New("no such column")))

	assert.True(t, IsTransientError(ErrCheckpointFailure("run", nil)))
	assert.False(t, IsTransientError(ErrCheckpointNotFound("run")))
}
