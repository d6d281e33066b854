package pipeline

import (
	"time"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// FailureStrategy selects how the orchestrator reacts to a failed step
type FailureStrategy string

const (
	StrategySkip     FailureStrategy = "skip"     // Skip the failing step and continue
	StrategyRetry    FailureStrategy = "retry"    // Retry the failing step with backoff
	StrategyAbort    FailureStrategy = "abort"    // Abort the pipeline
	StrategyFallback FailureStrategy = "fallback" // Continue with the step's fallback value
)

// ParseFailureStrategy converts a config string, defaulting to skip
func ParseFailureStrategy(s string) FailureStrategy {
	switch FailureStrategy(s) {
	case StrategySkip, StrategyRetry, StrategyAbort, StrategyFallback:
		return FailureStrategy(s)
	default:
		return StrategySkip
	}
}

// RecoveryAction records one handled failure for later inspection
type RecoveryAction struct {
	Strategy FailureStrategy
	Step     models.PipelineStep
	Err      error
	At       time.Time
}

// FailureRecovery applies the configured strategy to step failures and keeps
// a history of everything it handled.
type FailureRecovery struct {
	strategy FailureStrategy
	logger   *lib.Logger
	history  []RecoveryAction
}

// NewFailureRecovery creates a recovery handler with the given strategy
func NewFailureRecovery(strategy FailureStrategy, logger *lib.Logger) *FailureRecovery {
	return &FailureRecovery{strategy: strategy, logger: logger}
}

// HandleFailure records the failure and decides what the orchestrator should
// do next. For skip, the returned state has its current step advanced past
// the failed one; for retry, the state is nil to signal another attempt.
func (r *FailureRecovery) HandleFailure(step models.PipelineStep, err error, state models.PipelineState) (FailureStrategy, *models.PipelineState) {
	r.logger.Error("Step failure",
		"step", step,
		"strategy", r.strategy,
		"error", err)

	r.history = append(r.history, RecoveryAction{
		Strategy: r.strategy,
		Step:     step,
		Err:      err,
		At:       time.Now(),
	})

	state = models.RecordError(state, err.Error())

	switch r.strategy {
	case StrategyAbort:
		return StrategyAbort, &state

	case StrategySkip:
		if next := models.NextPipelineStep(step); next != "" {
			state.CurrentStep = next
		}
		return StrategySkip, &state

	case StrategyRetry:
		return StrategyRetry, nil

	case StrategyFallback:
		return StrategyFallback, &state

	default:
		return StrategyAbort, &state
	}
}

// History returns a copy of all handled failures
func (r *FailureRecovery) History() []RecoveryAction {
	out := make([]RecoveryAction, len(r.history))
	copy(out, r.history)
	return out
}

// ClearHistory discards the recorded failures
func (r *FailureRecovery) ClearHistory() {
	r.history = nil
}
