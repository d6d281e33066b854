// Package rank orders evaluated transformation candidates by expected
// benefit. Scoring is delegated to a pluggable policy; the ranker itself
// only sorts and assigns contiguous ranks.
package rank

import (
	"sort"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// Ranker sorts candidates by policy score, highest first
type Ranker struct {
	policy Policy
}

// NewRanker creates a ranker. The policy may be nil; Rank then fails until
// SetPolicy is called.
func NewRanker(policy Policy) *Ranker {
	return &Ranker{policy: policy}
}

// SetPolicy swaps the scoring policy
func (r *Ranker) SetPolicy(policy Policy) {
	r.policy = policy
}

// Policy returns the current scoring policy
func (r *Ranker) Policy() Policy {
	return r.policy
}

// Rank scores every candidate and returns them sorted by descending score
// with 1-based contiguous ranks. Ties keep their input order.
func (r *Ranker) Rank(candidates []models.TransformationCandidate) ([]models.RankedTransformation, error) {
	if r.policy == nil {
		return nil, lib.ErrNoPolicySet()
	}

	if len(candidates) == 0 {
		return []models.RankedTransformation{}, nil
	}

	type scored struct {
		candidate models.TransformationCandidate
		score     float64
		reasoning string
	}

	scoredCandidates := make([]scored, len(candidates))
	for i, candidate := range candidates {
		s := r.policy.Score(candidate)
		scoredCandidates[i] = scored{
			candidate: candidate,
			score:     s,
			reasoning: r.policy.Reasoning(candidate, s),
		}
	}

	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].score > scoredCandidates[j].score
	})

	ranked := make([]models.RankedTransformation, len(scoredCandidates))
	for i, sc := range scoredCandidates {
		ranked[i] = models.RankedTransformation{
			Rank:           i + 1,
			Candidate:      sc.candidate,
			CompositeScore: sc.score,
			Reasoning:      sc.reasoning,
		}
	}

	return ranked, nil
}

// PolicyFromConfig builds the configured ranking policy
func PolicyFromConfig(cfg models.PipelineConfig, weights models.Weights) Policy {
	switch cfg.RankingPolicy {
	case "improvement":
		return NewImprovementPolicy(cfg.PrimaryMetric)
	default:
		return NewCompositeScorePolicy(weights)
	}
}
