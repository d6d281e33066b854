package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// chdirTemp mirrors t.Chdir(t.TempDir()) for toolchains predating testing.T.Chdir.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	viper.Reset()
	chdirTemp(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	defaults := models.DefaultConfig()
	assert.Equal(t, defaults.Pipeline.Workers, config.Pipeline.Workers)
	assert.Equal(t, defaults.Pipeline.RankingPolicy, config.Pipeline.RankingPolicy)
	assert.Equal(t, defaults.Scoring.Weights, config.Scoring.Weights)
	assert.Equal(t, defaults.Checkpoint.Backend, config.Checkpoint.Backend)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	viper.Reset()

	content := `
pipeline:
  workers: 8
  ranking_policy: improvement
  primary_metric: completeness
checkpoint:
  backend: sqlite
  dir: /tmp/wrangler-state
`
	path := filepath.Join(t.TempDir(), "wrangler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, config.Pipeline.Workers)
	assert.Equal(t, "improvement", config.Pipeline.RankingPolicy)
	assert.Equal(t, "completeness", config.Pipeline.PrimaryMetric)
	assert.Equal(t, "sqlite", config.Checkpoint.Backend)

	// Untouched keys keep their defaults
	assert.Equal(t, models.DefaultWeights(), config.Scoring.Weights)
	assert.Equal(t, "skip", config.Recovery.Strategy)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	viper.Reset()

	content := `
pipeline:
  workers: 0
`
	path := filepath.Join(t.TempDir(), "wrangler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfig_RejectsMalformedFile(t *testing.T) {
	viper.Reset()

	path := filepath.Join(t.TempDir(), "wrangler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline: [not a map"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSetConfigValue(t *testing.T) {
	viper.Reset()
	chdirTemp(t)

	SetConfigValue("pipeline.workers", 16)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 16, config.Pipeline.Workers, "runtime overrides beat defaults")
}
