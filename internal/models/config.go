package models

import "fmt"

// ProjectConfig is the top-level configuration for the wrangler pipeline
type ProjectConfig struct {
	Pipeline   PipelineConfig   `yaml:"pipeline" json:"pipeline"`
	Validation ValidationConfig `yaml:"validation" json:"validation"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring"`
	Retry      RetryConfig      `yaml:"retry" json:"retry"`
	Recovery   RecoveryConfig   `yaml:"recovery" json:"recovery"`
	Breaker    BreakerConfig    `yaml:"breaker" json:"breaker"`
	Checkpoint CheckpointConfig `yaml:"checkpoint" json:"checkpoint"`
}

// PipelineConfig controls pipeline execution behavior
type PipelineConfig struct {
	EnableRanking    bool    `yaml:"enable_ranking" json:"enable_ranking"`
	Workers          int     `yaml:"workers" json:"workers"` // Bounded worker pool size for candidate evaluation
	QualityThreshold float64 `yaml:"quality_threshold" json:"quality_threshold"`
	RankingPolicy    string  `yaml:"ranking_policy" json:"ranking_policy"` // "composite" | "improvement"
	PrimaryMetric    string  `yaml:"primary_metric" json:"primary_metric"` // For the improvement policy
}

// ValidationConfig holds tunable validator thresholds. The leakage thresholds
// are empirical defaults that work well on typical tabular data, kept
// configurable rather than hard-coded.
type ValidationConfig struct {
	RowCountTolerance    float64 `yaml:"row_count_tolerance" json:"row_count_tolerance"`
	LeakageOverlapRatio  float64 `yaml:"leakage_overlap_ratio" json:"leakage_overlap_ratio"`
	CorrelationThreshold float64 `yaml:"correlation_threshold" json:"correlation_threshold"`
}

// ScoringConfig holds quality metric weights
type ScoringConfig struct {
	Weights Weights `yaml:"weights" json:"weights"`
}

// RetryConfig controls retry behavior for step-level transient failures
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" json:"max_attempts"`
	InitialBackoffMs int64   `yaml:"initial_backoff_ms" json:"initial_backoff_ms"`
	BackoffFactor    float64 `yaml:"backoff_factor" json:"backoff_factor"`
	MaxBackoffMs     int64   `yaml:"max_backoff_ms" json:"max_backoff_ms"`
}

// RecoveryConfig selects the failure-handling strategy for step faults
type RecoveryConfig struct {
	Strategy string `yaml:"strategy" json:"strategy"` // "skip" | "retry" | "abort" | "fallback"
}

// BreakerConfig configures the circuit breaker guarding checkpoint writes
// and profiler invocations
type BreakerConfig struct {
	FailureThreshold uint32 `yaml:"failure_threshold" json:"failure_threshold"`
	CooldownSeconds  int    `yaml:"cooldown_seconds" json:"cooldown_seconds"`
}

// CheckpointConfig selects and locates the checkpoint store
type CheckpointConfig struct {
	Backend string `yaml:"backend" json:"backend"` // "file" | "sqlite"
	Dir     string `yaml:"dir" json:"dir"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Pipeline: PipelineConfig{
			EnableRanking:    true,
			Workers:          4,
			QualityThreshold: 0.8,
			RankingPolicy:    "composite",
			PrimaryMetric:    "overall",
		},
		Validation: ValidationConfig{
			RowCountTolerance:    0.1,
			LeakageOverlapRatio:  0.5,
			CorrelationThreshold: 0.99,
		},
		Scoring: ScoringConfig{
			Weights: DefaultWeights(),
		},
		Retry: RetryConfig{
			MaxAttempts:      3,
			InitialBackoffMs: 1000,
			BackoffFactor:    2.0,
			MaxBackoffMs:     60000,
		},
		Recovery: RecoveryConfig{
			Strategy: "skip",
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			CooldownSeconds:  60,
		},
		Checkpoint: CheckpointConfig{
			Backend: "file",
			Dir:     ".state",
		},
	}
}

// Validate checks the configuration for invalid values
func (c *ProjectConfig) Validate() error {
	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("pipeline.workers must be > 0, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.QualityThreshold < 0 || c.Pipeline.QualityThreshold > 1 {
		return fmt.Errorf("pipeline.quality_threshold must be in [0,1], got %g", c.Pipeline.QualityThreshold)
	}
	switch c.Pipeline.RankingPolicy {
	case "composite", "improvement":
	default:
		return fmt.Errorf("pipeline.ranking_policy must be composite or improvement, got %q", c.Pipeline.RankingPolicy)
	}
	if c.Validation.RowCountTolerance < 0 || c.Validation.RowCountTolerance > 1 {
		return fmt.Errorf("validation.row_count_tolerance must be in [0,1], got %g", c.Validation.RowCountTolerance)
	}
	if c.Validation.LeakageOverlapRatio <= 0 || c.Validation.LeakageOverlapRatio > 1 {
		return fmt.Errorf("validation.leakage_overlap_ratio must be in (0,1], got %g", c.Validation.LeakageOverlapRatio)
	}
	if c.Validation.CorrelationThreshold <= 0 || c.Validation.CorrelationThreshold > 1 {
		return fmt.Errorf("validation.correlation_threshold must be in (0,1], got %g", c.Validation.CorrelationThreshold)
	}
	if err := c.Scoring.Weights.Validate(); err != nil {
		return fmt.Errorf("scoring.weights: %w", err)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be > 0, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BackoffFactor < 1 {
		return fmt.Errorf("retry.backoff_factor must be >= 1, got %g", c.Retry.BackoffFactor)
	}
	switch c.Recovery.Strategy {
	case "skip", "retry", "abort", "fallback":
	default:
		return fmt.Errorf("recovery.strategy must be one of skip, retry, abort, fallback, got %q", c.Recovery.Strategy)
	}
	switch c.Checkpoint.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("checkpoint.backend must be file or sqlite, got %q", c.Checkpoint.Backend)
	}
	if c.Checkpoint.Dir == "" {
		return fmt.Errorf("checkpoint.dir is required")
	}
	return nil
}
