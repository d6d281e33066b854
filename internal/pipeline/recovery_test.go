package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

func TestParseFailureStrategy(t *testing.T) {
	assert.Equal(t, StrategySkip, ParseFailureStrategy("skip"))
	assert.Equal(t, StrategyRetry, ParseFailureStrategy("retry"))
	assert.Equal(t, StrategyAbort, ParseFailureStrategy("abort"))
	assert.Equal(t, StrategyFallback, ParseFailureStrategy("fallback"))
	assert.Equal(t, StrategySkip, ParseFailureStrategy(""), "unknown strategies default to skip")
	assert.Equal(t, StrategySkip, ParseFailureStrategy("panic"))
}

func TestHandleFailure_Abort(t *testing.T) {
	r := NewFailureRecovery(StrategyAbort, lib.NewNopLogger())
	state := *models.NewPipelineState()

	strategy, updated := r.HandleFailure(models.StepProfiling, errors.New("boom"), state)

	assert.Equal(t, StrategyAbort, strategy)
	require.NotNil(t, updated)
	assert.Contains(t, updated.Error, "boom")
	assert.Equal(t, models.StepProfiling, updated.CurrentStep, "abort does not advance")
}

func TestHandleFailure_SkipAdvances(t *testing.T) {
	r := NewFailureRecovery(StrategySkip, lib.NewNopLogger())
	state := *models.NewPipelineState()

	strategy, updated := r.HandleFailure(models.StepProfiling, errors.New("boom"), state)

	assert.Equal(t, StrategySkip, strategy)
	require.NotNil(t, updated)
	assert.Equal(t, models.StepGeneration, updated.CurrentStep)
}

func TestHandleFailure_SkipAtLastStep(t *testing.T) {
	r := NewFailureRecovery(StrategySkip, lib.NewNopLogger())
	state := *models.NewPipelineState()
	state.CurrentStep = models.StepRanking

	_, updated := r.HandleFailure(models.StepRanking, errors.New("boom"), state)

	require.NotNil(t, updated)
	assert.Equal(t, models.StepRanking, updated.CurrentStep, "nothing after ranking to skip to")
}

func TestHandleFailure_RetrySignalsAnotherAttempt(t *testing.T) {
	r := NewFailureRecovery(StrategyRetry, lib.NewNopLogger())
	state := *models.NewPipelineState()

	strategy, updated := r.HandleFailure(models.StepGeneration, errors.New("boom"), state)

	assert.Equal(t, StrategyRetry, strategy)
	assert.Nil(t, updated)
}

func TestHandleFailure_Fallback(t *testing.T) {
	r := NewFailureRecovery(StrategyFallback, lib.NewNopLogger())
	state := *models.NewPipelineState()

	strategy, updated := r.HandleFailure(models.StepValidation, errors.New("boom"), state)

	assert.Equal(t, StrategyFallback, strategy)
	require.NotNil(t, updated)
	assert.Contains(t, updated.Error, "boom")
}

func TestHandleFailure_DoesNotMutateInput(t *testing.T) {
	r := NewFailureRecovery(StrategySkip, lib.NewNopLogger())
	state := *models.NewPipelineState()

	_, _ = r.HandleFailure(models.StepProfiling, errors.New("boom"), state)

	assert.Empty(t, state.Error)
	assert.Equal(t, models.StepProfiling, state.CurrentStep)
}

func TestRecoveryHistory(t *testing.T) {
	r := NewFailureRecovery(StrategySkip, lib.NewNopLogger())
	state := *models.NewPipelineState()

	_, _ = r.HandleFailure(models.StepProfiling, errors.New("first"), state)
	_, _ = r.HandleFailure(models.StepGeneration, errors.New("second"), state)

	history := r.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.StepProfiling, history[0].Step)
	assert.Equal(t, "first", history[0].Err.Error())
	assert.Equal(t, models.StepGeneration, history[1].Step)

	// History is a copy
	history[0].Step = models.StepRanking
	assert.Equal(t, models.StepProfiling, r.History()[0].Step)

	r.ClearHistory()
	assert.Empty(t, r.History())
}
