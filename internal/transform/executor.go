package transform

import (
	"sync"
	"time"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Executor dispatches transformations to their appliers. It retains the
// applier instance per transformation id so a later Reverse sees the state
// captured during Apply. Safe for concurrent use.
type Executor struct {
	mu        sync.RWMutex
	instances map[string]applier
}

// NewExecutor creates an executor with an empty instance cache
func NewExecutor() *Executor {
	return &Executor{instances: map[string]applier{}}
}

// Execute runs a single transformation and reports the outcome. Applier
// failures never propagate as errors; they come back as a failed result
// carrying the original dataset.
func (e *Executor) Execute(ds *models.Dataset, t models.Transformation) models.TransformationResult {
	start := time.Now()

	instance, err := newApplier(t)
	if err != nil {
		return models.TransformationResult{
			Transformation: t,
			Success:        false,
			OutputData:     ds,
			ErrorMessage:   err.Error(),
			ExecutionTime:  time.Since(start),
		}
	}

	output, err := instance.Apply(ds)
	if err != nil {
		return models.TransformationResult{
			Transformation: t,
			Success:        false,
			OutputData:     ds,
			ErrorMessage:   lib.ErrApplierFailure(t, err).Error(),
			ExecutionTime:  time.Since(start),
		}
	}

	e.mu.Lock()
	e.instances[t.ID] = instance
	e.mu.Unlock()

	return models.TransformationResult{
		Transformation: t,
		Success:        true,
		OutputData:     output,
		ExecutionTime:  time.Since(start),
	}
}

// Reverse undoes a previously executed transformation. It needs the flag on
// the transformation to be set and an applier that supports reversal; the
// retained instance from Execute supplies the captured state.
func (e *Executor) Reverse(ds *models.Dataset, t models.Transformation) (*models.Dataset, error) {
	if !t.Reversible {
		return nil, lib.ErrNotReversible(t, "transformation is flagged irreversible")
	}

	e.mu.RLock()
	instance, ok := e.instances[t.ID]
	e.mu.RUnlock()

	if !ok {
		// No retained state, fall back to a fresh instance. Appliers that
		// need captured state will reject the reverse themselves.
		fresh, err := newApplier(t)
		if err != nil {
			return nil, err
		}
		instance = fresh
	}

	return instance.Reverse(ds)
}

// ExecuteSequence runs transformations in order, feeding each output into
// the next. Execution stops at the first failure; the failed result is the
// last element of the returned slice.
func (e *Executor) ExecuteSequence(ds *models.Dataset, ts []models.Transformation) []models.TransformationResult {
	results := make([]models.TransformationResult, 0, len(ts))
	current := ds

	for _, t := range ts {
		result := e.Execute(current, t)
		results = append(results, result)
		if !result.Success {
			break
		}
		current = result.OutputData
	}

	return results
}

// CanReverse reports whether the transformation is flagged reversible
func (e *Executor) CanReverse(t models.Transformation) bool {
	return t.Reversible
}
