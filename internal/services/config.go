package services

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// LoadConfig loads configuration from file and merges with CLI flags
// Priority order (highest to lowest):
//  1. CLI flags (via viper bindings)
//  2. Environment variables
//  3. Configuration file
//  4. Default values
func LoadConfig(configFile string) (*models.ProjectConfig, error) {
	// Set config file path if provided
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		viper.SetConfigName("wrangler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/wrangler")
		viper.AddConfigPath("/etc/wrangler")
	}

	// Enable environment variable override with WRANGLER_ prefix
	viper.SetEnvPrefix("WRANGLER")
	viper.AutomaticEnv()

	setConfigDefaults()

	// Read config file (optional - don't fail if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but couldn't be read
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - defaults and env apply
	}

	// Build config manually from viper values
	// (Viper.Unmarshal has issues with nested structs in some versions)
	config := models.ProjectConfig{
		Pipeline: models.PipelineConfig{
			EnableRanking:    viper.GetBool("pipeline.enable_ranking"),
			Workers:          viper.GetInt("pipeline.workers"),
			QualityThreshold: viper.GetFloat64("pipeline.quality_threshold"),
			RankingPolicy:    viper.GetString("pipeline.ranking_policy"),
			PrimaryMetric:    viper.GetString("pipeline.primary_metric"),
		},
		Validation: models.ValidationConfig{
			RowCountTolerance:    viper.GetFloat64("validation.row_count_tolerance"),
			LeakageOverlapRatio:  viper.GetFloat64("validation.leakage_overlap_ratio"),
			CorrelationThreshold: viper.GetFloat64("validation.correlation_threshold"),
		},
		Scoring: models.ScoringConfig{
			Weights: models.Weights{
				Completeness: viper.GetFloat64("scoring.weights.completeness"),
				Consistency:  viper.GetFloat64("scoring.weights.consistency"),
				Validity:     viper.GetFloat64("scoring.weights.validity"),
				Uniqueness:   viper.GetFloat64("scoring.weights.uniqueness"),
			},
		},
		Retry: models.RetryConfig{
			MaxAttempts:      viper.GetInt("retry.max_attempts"),
			InitialBackoffMs: viper.GetInt64("retry.initial_backoff_ms"),
			BackoffFactor:    viper.GetFloat64("retry.backoff_factor"),
			MaxBackoffMs:     viper.GetInt64("retry.max_backoff_ms"),
		},
		Recovery: models.RecoveryConfig{
			Strategy: viper.GetString("recovery.strategy"),
		},
		Breaker: models.BreakerConfig{
			FailureThreshold: viper.GetUint32("breaker.failure_threshold"),
			CooldownSeconds:  viper.GetInt("breaker.cooldown_seconds"),
		},
		Checkpoint: models.CheckpointConfig{
			Backend: viper.GetString("checkpoint.backend"),
			Dir:     viper.GetString("checkpoint.dir"),
		},
	}

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setConfigDefaults registers the default value for every config key so a
// missing file or partial file still yields a complete configuration
func setConfigDefaults() {
	defaults := models.DefaultConfig()

	viper.SetDefault("pipeline.enable_ranking", defaults.Pipeline.EnableRanking)
	viper.SetDefault("pipeline.workers", defaults.Pipeline.Workers)
	viper.SetDefault("pipeline.quality_threshold", defaults.Pipeline.QualityThreshold)
	viper.SetDefault("pipeline.ranking_policy", defaults.Pipeline.RankingPolicy)
	viper.SetDefault("pipeline.primary_metric", defaults.Pipeline.PrimaryMetric)
	viper.SetDefault("validation.row_count_tolerance", defaults.Validation.RowCountTolerance)
	viper.SetDefault("validation.leakage_overlap_ratio", defaults.Validation.LeakageOverlapRatio)
	viper.SetDefault("validation.correlation_threshold", defaults.Validation.CorrelationThreshold)
	viper.SetDefault("scoring.weights.completeness", defaults.Scoring.Weights.Completeness)
	viper.SetDefault("scoring.weights.consistency", defaults.Scoring.Weights.Consistency)
	viper.SetDefault("scoring.weights.validity", defaults.Scoring.Weights.Validity)
	viper.SetDefault("scoring.weights.uniqueness", defaults.Scoring.Weights.Uniqueness)
	viper.SetDefault("retry.max_attempts", defaults.Retry.MaxAttempts)
	viper.SetDefault("retry.initial_backoff_ms", defaults.Retry.InitialBackoffMs)
	viper.SetDefault("retry.backoff_factor", defaults.Retry.BackoffFactor)
	viper.SetDefault("retry.max_backoff_ms", defaults.Retry.MaxBackoffMs)
	viper.SetDefault("recovery.strategy", defaults.Recovery.Strategy)
	viper.SetDefault("breaker.failure_threshold", defaults.Breaker.FailureThreshold)
	viper.SetDefault("breaker.cooldown_seconds", defaults.Breaker.CooldownSeconds)
	viper.SetDefault("checkpoint.backend", defaults.Checkpoint.Backend)
	viper.SetDefault("checkpoint.dir", defaults.Checkpoint.Dir)
}

// GetConfigFilePath returns the path to the config file that was loaded
func GetConfigFilePath() string {
	return viper.ConfigFileUsed()
}

// SetConfigValue allows runtime override of config values
// Useful for CLI flag overrides
func SetConfigValue(key string, value interface{}) {
	viper.Set(key, value)
}
