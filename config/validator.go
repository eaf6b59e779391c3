package config

import (
	"errors"
	"fmt"

	verrors "github.com/standardbeagle/respvet/internal/errors"
)

// Validator validates configuration and fills in unset fields
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies defaults for
// zero-valued fields. Returns an error if a value is out of range.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateStyle(&cfg.Style); err != nil {
		return verrors.NewConfigError("style", "", err)
	}
	if err := v.validateContext(&cfg.Context); err != nil {
		return verrors.NewConfigError("context", "", err)
	}
	if err := v.validateDocs(&cfg.Docs); err != nil {
		return verrors.NewConfigError("docs", "", err)
	}
	return nil
}

func (v *Validator) validateStyle(style *Style) error {
	if style.MaxLineLength == 0 {
		style.MaxLineLength = Default().Style.MaxLineLength
	}
	if style.MaxLineLength < 0 {
		return fmt.Errorf("MaxLineLength must be positive, got %d", style.MaxLineLength)
	}
	if style.IndentWidth == 0 {
		style.IndentWidth = Default().Style.IndentWidth
	}
	if style.IndentWidth < 0 {
		return fmt.Errorf("IndentWidth must be positive, got %d", style.IndentWidth)
	}
	if style.ViolationPenalty == 0 {
		style.ViolationPenalty = Default().Style.ViolationPenalty
	}
	if style.ViolationPenalty < 0 || style.ViolationPenalty > 1 {
		return fmt.Errorf("ViolationPenalty must be in [0,1], got %f", style.ViolationPenalty)
	}
	return nil
}

func (v *Validator) validateContext(ctx *Context) error {
	if ctx.SimilarityThreshold == 0 {
		ctx.SimilarityThreshold = Default().Context.SimilarityThreshold
	}
	if ctx.SimilarityThreshold < 0 || ctx.SimilarityThreshold > 1 {
		return fmt.Errorf("SimilarityThreshold must be in [0,1], got %f", ctx.SimilarityThreshold)
	}
	if ctx.MaxSuggestions == 0 {
		ctx.MaxSuggestions = Default().Context.MaxSuggestions
	}
	if ctx.MaxSuggestions < 0 {
		return errors.New("MaxSuggestions cannot be negative")
	}
	return nil
}

func (v *Validator) validateDocs(docs *Docs) error {
	defaults := Default().Docs
	if docs.ModuleWeight == 0 && docs.FunctionWeight == 0 && docs.ClassWeight == 0 && docs.CommentWeight == 0 {
		docs.ModuleWeight = defaults.ModuleWeight
		docs.FunctionWeight = defaults.FunctionWeight
		docs.ClassWeight = defaults.ClassWeight
		docs.CommentWeight = defaults.CommentWeight
	}
	total := docs.ModuleWeight + docs.FunctionWeight + docs.ClassWeight + docs.CommentWeight
	if total < 0.999 || total > 1.001 {
		return fmt.Errorf("doc weights must sum to 1.0, got %f", total)
	}
	if docs.CommentDensityCap == 0 {
		docs.CommentDensityCap = defaults.CommentDensityCap
	}
	if docs.AttachTolerance == 0 {
		docs.AttachTolerance = defaults.AttachTolerance
	}
	if docs.AttachTolerance < 0 {
		return errors.New("AttachTolerance cannot be negative")
	}
	return nil
}
