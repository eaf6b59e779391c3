// Package style judges syntactic validity and style-guide compliance of a
// snippet using the structural summary plus line-level heuristics. Each
// failing check appends one human-readable, line-anchored violation; the
// score is a blunt linear penalty, not a statistical model.
package style

import (
	"github.com/standardbeagle/respvet/config"
	"github.com/standardbeagle/respvet/internal/errors"
	"github.com/standardbeagle/respvet/lang"
	"github.com/standardbeagle/respvet/parse"
)

// SyntaxResult mirrors the parser's validity flag and error list with coarse
// structural flags.
type SyntaxResult struct {
	Valid        bool
	Errors       []string
	Warnings     []string
	LineCount    int
	HasFunctions bool
	HasClasses   bool
}

// StyleResult reports the outcome of the per-language style battery.
type StyleResult struct {
	Compliant  bool
	Violations []string
	Score      float64
	// Checks maps each check name to whether it passed. The key set is
	// fixed per language.
	Checks map[string]bool
}

// Checker runs the syntax and style batteries. A nil config means defaults.
type Checker struct {
	cfg *config.Config
}

// NewChecker creates a style checker with the given configuration, or the
// documented defaults when cfg is nil.
func NewChecker(cfg *config.Config) *Checker {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Checker{cfg: cfg}
}

// Check validates source in the given language. summary may be nil, in
// which case the source is parsed here. Pure function of its inputs.
func (c *Checker) Check(source string, language lang.Language, summary *parse.Result) (SyntaxResult, StyleResult) {
	if summary == nil {
		r := parse.Parse(source, language)
		summary = &r
	}

	syntax := SyntaxResult{
		Valid:        summary.Valid,
		Errors:       append([]string(nil), summary.Errors...),
		LineCount:    summary.Summary.LineCount,
		HasFunctions: summary.Summary.HasFunctions(),
		HasClasses:   summary.Summary.HasClasses(),
	}

	var styleResult StyleResult
	switch language {
	case lang.Python:
		styleResult = c.checkPythonStyle(source, &summary.Summary)
	case lang.JavaScript, lang.TypeScript:
		styleResult = c.checkJavaScriptStyle(source, &summary.Summary)
	default:
		syntax.Valid = false
		syntax.Errors = append(syntax.Errors,
			(&errors.UnsupportedLanguageError{Language: string(language)}).Error())
		styleResult = StyleResult{Compliant: false, Score: 0, Checks: map[string]bool{}}
	}

	return syntax, styleResult
}

// finish computes the score and compliance flag from the collected
// violations: max(0, 1 − penalty × count).
func (c *Checker) finish(result *StyleResult) {
	result.Compliant = len(result.Violations) == 0
	result.Score = 1.0
	if n := len(result.Violations); n > 0 {
		result.Score = 1.0 - c.cfg.Style.ViolationPenalty*float64(n)
		if result.Score < 0 {
			result.Score = 0
		}
	}
}
