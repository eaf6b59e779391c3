package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 79, cfg.Style.MaxLineLength)
	assert.Equal(t, 4, cfg.Style.IndentWidth)
	assert.InDelta(t, 0.1, cfg.Style.ViolationPenalty, 1e-9)
	assert.InDelta(t, 0.15, cfg.Context.SimilarityThreshold, 1e-9)
	assert.Equal(t, 3, cfg.Context.MaxSuggestions)

	sum := cfg.Docs.ModuleWeight + cfg.Docs.FunctionWeight + cfg.Docs.ClassWeight + cfg.Docs.CommentWeight
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respvet.toml")
	content := `
[Style]
MaxLineLength = 100

[Context]
MaxSuggestions = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Style.MaxLineLength)
	assert.Equal(t, 5, cfg.Context.MaxSuggestions)
	// Untouched sections keep their defaults.
	assert.Equal(t, 4, cfg.Style.IndentWidth)
	assert.InDelta(t, 0.15, cfg.Context.SimilarityThreshold, 1e-9)
}

func TestLoadRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidatorRejectsOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Style.MaxLineLength = -1
	assert.Error(t, NewValidator().ValidateAndSetDefaults(cfg))

	cfg = Default()
	cfg.Context.SimilarityThreshold = 1.5
	assert.Error(t, NewValidator().ValidateAndSetDefaults(cfg))

	cfg = Default()
	cfg.Docs.ModuleWeight = 0.9
	assert.Error(t, NewValidator().ValidateAndSetDefaults(cfg))
}

func TestValidatorFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, NewValidator().ValidateAndSetDefaults(cfg))

	assert.Equal(t, 79, cfg.Style.MaxLineLength)
	assert.Equal(t, 3, cfg.Context.MaxSuggestions)
	assert.InDelta(t, 0.4, cfg.Docs.FunctionWeight, 1e-9)
	assert.Equal(t, 2, cfg.Docs.AttachTolerance)
}
