package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	require.NotNil(t, cfg.Analysis.SampleThreshold)
	require.NotNil(t, cfg.Analysis.MinimalThreshold)
	assert.Equal(t, 0.3, *cfg.Analysis.SampleThreshold)
	assert.Equal(t, 0.3, *cfg.Analysis.MinimalThreshold)
	assert.Equal(t, 40, cfg.Analysis.MinClassifyLength)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout())
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
analysis:
  workers: 8
llm:
  inference_model: "anthropic/claude-3.5-sonnet"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", cfg.LLM.InferenceModel)
	// vision model falls back to the inference model when unset
	assert.Equal(t, "anthropic/claude-3.5-sonnet", cfg.LLM.VisionModel)
	require.NotNil(t, cfg.Analysis.SampleThreshold)
	assert.Equal(t, 0.3, *cfg.Analysis.SampleThreshold)
	assert.Equal(t, "./uploads", cfg.Server.UploadsDir)
}

func TestLoadConfig_ExplicitZeroThresholdSurvives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
analysis:
  sample_threshold: 0
  minimal_threshold: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Analysis.SampleThreshold)
	require.NotNil(t, cfg.Analysis.MinimalThreshold)
	assert.Zero(t, *cfg.Analysis.SampleThreshold)
	assert.Zero(t, *cfg.Analysis.MinimalThreshold)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("OPENROUTER_KEY", "sk-or-test")
	t.Setenv("OPENROUTER_BASE", "http://localhost:11434/v1")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-or-test", cfg.LLM.OpenRouterKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.OpenRouterBase)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
