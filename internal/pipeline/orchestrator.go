// Package pipeline orchestrates the data wrangling run: profiling the input,
// generating transformation candidates, evaluating them concurrently,
// ranking the survivors and applying the best one. State is checkpointed
// after every step so interrupted runs can resume.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/profile"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/rank"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/score"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/services"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/transform"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/validate"
)

// Result is the outcome of a full pipeline run
type Result struct {
	Success               bool
	Data                  *models.Dataset
	Profile               *models.DataProfile
	RankedTransformations []models.RankedTransformation
	ExecutionTime         time.Duration
	Error                 string
}

// ProgressFactory creates a progress sink for a phase with a known number
// of ticks. Nil disables progress reporting.
type ProgressFactory func(total int64, description string) ProgressSink

// Orchestrator wires the pipeline services together and drives a run
type Orchestrator struct {
	cfg       models.ProjectConfig
	profiler  profile.Profiler
	generator *transform.Generator
	executor  *transform.Executor
	validator validate.Validator
	scorer    score.Scorer
	ranker    *rank.Ranker
	store     services.CheckpointStore
	breaker   *gobreaker.CircuitBreaker
	recovery  *FailureRecovery
	logger    *lib.Logger
	progress  ProgressFactory
}

// NewOrchestrator assembles the pipeline from configuration
func NewOrchestrator(cfg models.ProjectConfig, store services.CheckpointStore, logger *lib.Logger) (*Orchestrator, error) {
	scorer, err := score.NewService(cfg.Scoring.Weights)
	if err != nil {
		return nil, err
	}

	policy := rank.PolicyFromConfig(cfg.Pipeline, cfg.Scoring.Weights)

	return &Orchestrator{
		cfg:       cfg,
		profiler:  profile.NewService(),
		generator: transform.NewGenerator(),
		executor:  transform.NewExecutor(),
		validator: validate.NewService(cfg.Validation),
		scorer:    scorer,
		ranker:    rank.NewRanker(policy),
		store:     store,
		breaker:   NewCheckpointBreaker(cfg.Breaker, logger),
		recovery:  NewFailureRecovery(ParseFailureStrategy(cfg.Recovery.Strategy), logger),
		logger:    logger,
	}, nil
}

// SetProgressFactory enables progress reporting during candidate evaluation
func (o *Orchestrator) SetProgressFactory(f ProgressFactory) {
	o.progress = f
}

// Run executes the full pipeline on the dataset, checkpointing under the
// given run name after every step. A panic anywhere inside the run is
// captured into the state and returned as a failed result.
func (o *Orchestrator) Run(ctx context.Context, ds *models.Dataset, name string) (result *Result, err error) {
	start := time.Now()
	state := *models.NewPipelineState()

	defer o.recoverPanic(name, &state, start, &result, &err)

	// Profiling
	dataProfile, err := o.runProfiling(ctx, ds, name, &state)
	if err != nil {
		return o.failRun(name, &state, start, err)
	}

	// Candidate generation
	transformations, err := o.runGeneration(ctx, name, &state)
	if err != nil {
		return o.failRun(name, &state, start, err)
	}

	// Concurrent evaluation: execution, validation and scoring per candidate
	candidates, err := o.runEvaluation(ctx, ds, dataProfile, transformations, name, &state)
	if err != nil {
		return o.failRun(name, &state, start, err)
	}

	// Ranking
	ranked := []models.RankedTransformation{}
	if o.cfg.Pipeline.EnableRanking {
		ranked, err = o.runRanking(ctx, candidates, name, &state)
		if err != nil {
			return o.failRun(name, &state, start, err)
		}
	}

	// Apply the best passing candidate to produce the output dataset
	finalData := o.applyBest(ds, ranked)

	return &Result{
		Success:               true,
		Data:                  finalData,
		Profile:               state.DataProfile,
		RankedTransformations: ranked,
		ExecutionTime:         time.Since(start),
	}, nil
}

// recoverPanic converts a panic inside a run into a failed result recorded
// on the checkpointed state. Deferred by Run and Resume so panics never
// cross the orchestrator boundary.
func (o *Orchestrator) recoverPanic(name string, state *models.PipelineState, start time.Time, result **Result, err *error) {
	if r := recover(); r != nil {
		msg := fmt.Sprintf("pipeline panic: %v", r)
		o.logger.Error("Pipeline panicked", "run", name, "panic", r)
		*state = models.RecordError(*state, msg)
		o.saveCheckpoint(name, state)
		*result = &Result{Success: false, Error: msg, ExecutionTime: time.Since(start)}
		*err = nil
	}
}

// Resume loads a saved checkpoint and continues the run from the step it
// stopped at, re-running evaluation from the stored profile.
func (o *Orchestrator) Resume(ctx context.Context, ds *models.Dataset, name string) (result *Result, err error) {
	state, err := o.store.Load(name)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Resuming pipeline",
		"run", name,
		"current_step", state.CurrentStep,
		"completed_steps", len(state.CompletedSteps))

	start := time.Now()

	if !state.HasCompleted(models.StepProfiling) || state.DataProfile == nil {
		// Nothing usable saved yet, start over
		return o.Run(ctx, ds, name)
	}

	s := *state
	s.Error = ""

	defer o.recoverPanic(name, &s, start, &result, &err)

	transformations := o.generator.Generate(s.DataProfile)

	candidates := s.Candidates
	if !s.HasCompleted(models.StepValidation) {
		candidates, err = o.runEvaluation(ctx, ds, s.DataProfile, transformations, name, &s)
		if err != nil {
			return o.failRun(name, &s, start, err)
		}
	}

	ranked := s.RankedTransformations
	if o.cfg.Pipeline.EnableRanking && !s.HasCompleted(models.StepRanking) {
		ranked, err = o.runRanking(ctx, candidates, name, &s)
		if err != nil {
			return o.failRun(name, &s, start, err)
		}
	}

	finalData := o.applyBest(ds, ranked)

	return &Result{
		Success:               true,
		Data:                  finalData,
		Profile:               s.DataProfile,
		RankedTransformations: ranked,
		ExecutionTime:         time.Since(start),
	}, nil
}

func (o *Orchestrator) runProfiling(ctx context.Context, ds *models.Dataset, name string, state *models.PipelineState) (*models.DataProfile, error) {
	stepStart := time.Now()
	lib.LogStepStart(o.logger, string(models.StepProfiling), name)

	var dataProfile *models.DataProfile
	operation := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := o.profiler.Profile(ds)
		if err != nil {
			return err
		}
		dataProfile = p
		return nil
	}

	if err := o.runStep(ctx, models.StepProfiling, state, operation); err != nil {
		return nil, err
	}

	*state = models.WithProfile(*state, dataProfile)
	*state = models.CompleteStep(*state, models.StepProfiling, models.StepGeneration)
	o.saveCheckpoint(name, state)

	lib.LogStepComplete(o.logger, string(models.StepProfiling), name, time.Since(stepStart))
	return dataProfile, nil
}

func (o *Orchestrator) runGeneration(ctx context.Context, name string, state *models.PipelineState) ([]models.Transformation, error) {
	stepStart := time.Now()
	lib.LogStepStart(o.logger, string(models.StepGeneration), name)

	if _, ok := lib.ValidateStepPrerequisites(state, models.StepGeneration); !ok {
		return nil, lib.ErrStepFault(models.StepGeneration, fmt.Errorf("profiling has not completed"))
	}
	if state.DataProfile == nil {
		return nil, lib.ErrMalformedProfile("no data profile in pipeline state")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	transformations := o.generator.Generate(state.DataProfile)
	o.logger.Info("Candidates generated", "run", name, "count", len(transformations))

	*state = models.CompleteStep(*state, models.StepGeneration, models.StepValidation)
	o.saveCheckpoint(name, state)

	lib.LogStepComplete(o.logger, string(models.StepGeneration), name, time.Since(stepStart))
	return transformations, nil
}

func (o *Orchestrator) runEvaluation(ctx context.Context, ds *models.Dataset, dataProfile *models.DataProfile, transformations []models.Transformation, name string, state *models.PipelineState) ([]models.TransformationCandidate, error) {
	stepStart := time.Now()
	lib.LogStepStart(o.logger, string(models.StepValidation), name)

	var progress ProgressSink
	if o.progress != nil {
		progress = o.progress(int64(len(transformations)), "Evaluating candidates")
	}

	var candidates []models.TransformationCandidate
	operation := func() error {
		var err error
		candidates, err = o.evaluateCandidates(ctx, ds, dataProfile, transformations, progress)
		return err
	}

	if err := o.runStep(ctx, models.StepValidation, state, operation); err != nil {
		return nil, err
	}

	o.logger.Info("Candidates evaluated",
		"run", name,
		"generated", len(transformations),
		"surviving", len(candidates))

	*state = models.WithCandidates(*state, candidates)
	*state = models.CompleteStep(*state, models.StepValidation, models.StepExecution)
	// Execution and scoring happen per candidate inside evaluation; their
	// step markers keep the checkpoint's step history complete
	*state = models.CompleteStep(*state, models.StepExecution, models.StepScoring)
	*state = models.CompleteStep(*state, models.StepScoring, models.StepRanking)
	o.saveCheckpoint(name, state)

	lib.LogStepComplete(o.logger, string(models.StepValidation), name, time.Since(stepStart))
	return candidates, nil
}

func (o *Orchestrator) runRanking(ctx context.Context, candidates []models.TransformationCandidate, name string, state *models.PipelineState) ([]models.RankedTransformation, error) {
	stepStart := time.Now()
	lib.LogStepStart(o.logger, string(models.StepRanking), name)

	if _, ok := lib.ValidateStepPrerequisites(state, models.StepRanking); !ok {
		return nil, lib.ErrStepFault(models.StepRanking, fmt.Errorf("validation has not completed"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		o.logger.Warn("No candidates to rank", "run", name)
		*state = models.WithRanking(*state, []models.RankedTransformation{})
		*state = models.CompleteStep(*state, models.StepRanking, "")
		o.saveCheckpoint(name, state)
		return []models.RankedTransformation{}, nil
	}

	ranked, err := o.ranker.Rank(candidates)
	if err != nil {
		return nil, lib.ErrStepFault(models.StepRanking, err)
	}

	*state = models.WithRanking(*state, ranked)
	*state = models.CompleteStep(*state, models.StepRanking, "")
	o.saveCheckpoint(name, state)

	lib.LogStepComplete(o.logger, string(models.StepRanking), name, time.Since(stepStart))
	return ranked, nil
}

// runStep executes one step operation under the configured failure strategy.
// Retry uses the retry config with transient-error classification; skip and
// fallback absorb the failure and let the caller continue with empty output.
func (o *Orchestrator) runStep(ctx context.Context, step models.PipelineStep, state *models.PipelineState, operation func() error) error {
	err := operation()
	if err == nil {
		return nil
	}

	strategy, updated := o.recovery.HandleFailure(step, err, *state)

	switch strategy {
	case StrategyRetry:
		lib.LogRetry(o.logger, string(step), 0, o.cfg.Retry.MaxAttempts, err)
		retryErr := lib.ExecuteWithRetry(ctx, operation, o.cfg.Retry, lib.IsTransientError)
		if retryErr != nil {
			return lib.ErrStepFault(step, retryErr)
		}
		return nil

	case StrategySkip, StrategyFallback:
		if updated != nil {
			*state = *updated
		}
		o.logger.Warn("Continuing past failed step", "step", step, "strategy", strategy)
		return nil

	default:
		if updated != nil {
			*state = *updated
		}
		return lib.ErrStepFault(step, err)
	}
}

// applyBest re-executes the top-ranked passing candidate on the input and
// returns its output, or the input unchanged when nothing qualifies
func (o *Orchestrator) applyBest(ds *models.Dataset, ranked []models.RankedTransformation) *models.Dataset {
	if len(ranked) == 0 {
		return ds
	}

	best := ranked[0]
	if !best.Candidate.ValidationResult.Passed {
		return ds
	}

	result := o.executor.Execute(ds, best.Candidate.Transformation)
	if !result.Success {
		o.logger.Warn("Best candidate failed on final application",
			"transformation_id", best.Candidate.Transformation.ID,
			"error", result.ErrorMessage)
		return ds
	}

	o.logger.Info("Applied best transformation",
		"transformation_id", best.Candidate.Transformation.ID,
		"type", best.Candidate.Transformation.Type,
		"score", best.CompositeScore)
	return result.OutputData
}

// Executor exposes the orchestrator's executor, which retains applier state
// for the finally applied transformation so it can be reversed
func (o *Orchestrator) Executor() *transform.Executor {
	return o.executor
}

// RecoveryHistory exposes the failures handled during the run
func (o *Orchestrator) RecoveryHistory() []RecoveryAction {
	return o.recovery.History()
}

// saveCheckpoint persists the state through the circuit breaker. Checkpoint
// failures never fail the run; with the breaker open the save is skipped
// entirely until the cooldown elapses.
func (o *Orchestrator) saveCheckpoint(name string, state *models.PipelineState) {
	_, err := o.breaker.Execute(func() (interface{}, error) {
		return nil, o.store.Save(name, state)
	})
	if err != nil {
		o.logger.Warn("Checkpoint save skipped",
			"run", name,
			"step", state.CurrentStep,
			"error", err)
		return
	}
	o.logger.Debug("Checkpoint saved", "run", name, "step", state.CurrentStep)
}

func (o *Orchestrator) failRun(name string, state *models.PipelineState, start time.Time, err error) (*Result, error) {
	lib.LogStepFailed(o.logger, string(state.CurrentStep), name, err, lib.IsTransientError(err))
	*state = models.RecordError(*state, err.Error())
	o.saveCheckpoint(name, state)

	return &Result{
		Success:       false,
		Error:         err.Error(),
		ExecutionTime: time.Since(start),
	}, nil
}
