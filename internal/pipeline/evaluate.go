package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/transform"
)

// ProgressSink receives per-candidate completion ticks during evaluation.
// The UI progress bar implements it; tests pass nil.
type ProgressSink interface {
	Add(amount int64) error
	Finish() error
}

// evaluateCandidates runs every generated transformation against the input
// dataset on a bounded worker pool. Each candidate is executed, validated and
// scored independently; candidates that fail execution or validation are
// dropped. Results keep the generation order regardless of which worker
// finished first.
func (o *Orchestrator) evaluateCandidates(
	ctx context.Context,
	ds *models.Dataset,
	profile *models.DataProfile,
	transformations []models.Transformation,
	progress ProgressSink,
) ([]models.TransformationCandidate, error) {
	// The baseline score is identical for every candidate, compute it once
	qualityBefore := o.scorer.Score(ds, profile)

	results := make([]*models.TransformationCandidate, len(transformations))

	sem := semaphore.NewWeighted(int64(o.cfg.Pipeline.Workers))
	g, gctx := errgroup.WithContext(ctx)

	for i, t := range transformations {
		i, t := i, t
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}

		g.Go(func() error {
			defer sem.Release(1)
			defer func() {
				if progress != nil {
					_ = progress.Add(1)
				}
			}()

			if err := gctx.Err(); err != nil {
				return err
			}

			// Each worker gets its own executor so retained applier state
			// never races between candidates
			executor := transform.NewExecutor()
			result := executor.Execute(ds, t)
			if !result.Success {
				lib.LogCandidateDropped(o.logger, t.ID, "execution failed: "+result.ErrorMessage)
				return nil
			}

			validation := o.validator.Validate(ds, result.OutputData, profile)
			if !validation.Passed {
				lib.LogCandidateDropped(o.logger, t.ID, "validation failed")
				return nil
			}

			qualityAfter := o.scorer.Score(result.OutputData, profile)
			delta := o.scorer.Compare(qualityBefore, qualityAfter)

			results[i] = &models.TransformationCandidate{
				Transformation:   t,
				ValidationResult: validation,
				QualityBefore:    qualityBefore,
				QualityAfter:     qualityAfter,
				QualityDelta:     delta,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if progress != nil {
		_ = progress.Finish()
	}

	candidates := make([]models.TransformationCandidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}
