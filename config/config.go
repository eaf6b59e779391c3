// Package config carries the tunable thresholds of the validation checks.
// The zero configuration is never used directly; Default reproduces the
// framework's documented constants and Load layers a TOML file on top.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Style   Style
	Context Context
	Docs    Docs
	Include []string
	Exclude []string
}

// Style holds thresholds for the per-language style batteries.
type Style struct {
	// MaxLineLength is the python line-length limit (PEP 8).
	MaxLineLength int
	// IndentWidth is the required python indentation multiple.
	IndentWidth int
	// ViolationPenalty is subtracted from the style score per violation.
	ViolationPenalty float64
}

// Context holds thresholds for project-context consistency checks.
type Context struct {
	// SimilarityThreshold is the minimum bigram Jaccard similarity for a
	// known file to appear in "did you mean" suggestions.
	SimilarityThreshold float64
	// MaxSuggestions caps how many similar files a suggestion lists.
	MaxSuggestions int
}

// Docs holds the documentation score weights. They sum to 1.0.
type Docs struct {
	ModuleWeight   float64
	FunctionWeight float64
	ClassWeight    float64
	CommentWeight  float64
	// CommentDensityCap is the comment-line ratio at which the density
	// component saturates.
	CommentDensityCap float64
	// AttachTolerance is how many lines a doc comment may sit above a
	// declaration and still count as attached.
	AttachTolerance int
}

// Default returns the configuration the framework documents: PEP 8 line
// limits, the 0.15 suggestion threshold, and the 0.2/0.4/0.3/0.1 doc
// weights.
func Default() *Config {
	return &Config{
		Style: Style{
			MaxLineLength:    79,
			IndentWidth:      4,
			ViolationPenalty: 0.1,
		},
		Context: Context{
			SimilarityThreshold: 0.15,
			MaxSuggestions:      3,
		},
		Docs: Docs{
			ModuleWeight:      0.2,
			FunctionWeight:    0.4,
			ClassWeight:       0.3,
			CommentWeight:     0.1,
			CommentDensityCap: 0.1,
			AttachTolerance:   2,
		},
		Include: []string{"**/*"},
		Exclude: []string{"**/node_modules/**", "**/.git/**", "**/__pycache__/**"},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; callers get the defaults back.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
