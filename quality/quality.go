// Package quality aggregates syntax, style, documentation, and context
// checks into a single graded verdict per snippet or response.
package quality

import (
	"fmt"

	"github.com/standardbeagle/respvet/classify"
	"github.com/standardbeagle/respvet/config"
	"github.com/standardbeagle/respvet/doccheck"
	"github.com/standardbeagle/respvet/lang"
	"github.com/standardbeagle/respvet/parse"
	"github.com/standardbeagle/respvet/project"
	"github.com/standardbeagle/respvet/style"
)

// Grade is a five-band letter grade over the overall score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Score weights for the overall verdict.
const (
	syntaxWeight = 0.25
	styleWeight  = 0.35
	docWeight    = 0.40

	wellDocumentedThreshold = 0.7
)

// Violations groups findings by the check that produced them. Lists are
// ordered and never deduplicated.
type Violations struct {
	Syntax         []string `json:"syntax"`
	Style          []string `json:"style"`
	Documentation  []string `json:"documentation"`
	FileReferences []string `json:"file_references"`
	Imports        []string `json:"imports"`
	Naming         []string `json:"naming"`
}

// Count returns the total number of violations across all groups.
func (v *Violations) Count() int {
	return len(v.Syntax) + len(v.Style) + len(v.Documentation) +
		len(v.FileReferences) + len(v.Imports) + len(v.Naming)
}

// Verdict is the composite assessment of one snippet. Immutable once
// returned.
type Verdict struct {
	Language       lang.Language `json:"language"`
	OverallScore   float64       `json:"overall_score"`
	Grade          Grade         `json:"grade"`
	SyntaxValid    bool          `json:"syntax_valid"`
	StyleCompliant bool          `json:"style_compliant"`
	WellDocumented bool          `json:"well_documented"`
	ContextValid   bool          `json:"context_valid"`

	SyntaxScore float64 `json:"syntax_score"`
	StyleScore  float64 `json:"style_score"`
	DocScore    float64 `json:"doc_score"`

	Violations  Violations `json:"violations"`
	Suggestions []string   `json:"suggestions"`
	Errors      []string   `json:"errors,omitempty"`

	Summary parse.Summary `json:"-"`
}

// ResponseVerdict is the assessment of a full model response: its
// classification plus one code verdict per extracted block.
type ResponseVerdict struct {
	Classification classify.Classification `json:"classification"`
	CodeVerdicts   []Verdict               `json:"code_verdicts"`
}

// Assessor runs the full validation battery. A nil config means defaults.
type Assessor struct {
	cfg *config.Config
}

// NewAssessor creates an assessor with the given configuration.
func NewAssessor(cfg *config.Config) *Assessor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Assessor{cfg: cfg}
}

// AssessCode grades a snippet without project-context checks.
func (a *Assessor) AssessCode(source string, language lang.Language) Verdict {
	return a.Assess(source, language, nil, nil)
}

// Assess grades a snippet. ctx enables file-reference and import checks;
// existingPatterns enables the naming-consistency check. Either may be
// nil.
func (a *Assessor) Assess(source string, language lang.Language, ctx *project.Context, existingPatterns map[string][]string) Verdict {
	verdict := Verdict{
		Language:     language,
		Grade:        GradeF,
		ContextValid: true,
	}

	if !lang.Supported(language) {
		verdict.Errors = append(verdict.Errors, fmt.Sprintf("Unsupported language: %s", language))
		return verdict
	}

	parsed := parse.Parse(source, language)
	verdict.Summary = parsed.Summary

	syntaxResult, styleResult := style.NewChecker(a.cfg).Check(source, language, &parsed)
	verdict.SyntaxValid = syntaxResult.Valid
	verdict.StyleCompliant = styleResult.Compliant
	verdict.Violations.Syntax = syntaxResult.Errors
	verdict.Violations.Style = styleResult.Violations
	if syntaxResult.Valid {
		verdict.SyntaxScore = 1.0
	}
	verdict.StyleScore = styleResult.Score

	docResult := doccheck.NewAnalyzer(a.cfg).Analyze(source, language, &parsed.Summary)
	verdict.DocScore = docResult.Score
	verdict.WellDocumented = docResult.Score >= wellDocumentedThreshold
	verdict.Violations.Documentation = docResult.Issues

	if ctx != nil {
		checker := project.NewChecker(ctx, a.cfg)
		refs := checker.CheckFileReferences(source, language)
		imports := checker.CheckImports(source, language)
		verdict.Violations.FileReferences = refs.Violations
		verdict.Violations.Imports = imports.Violations
		verdict.Suggestions = append(verdict.Suggestions, refs.Suggestions...)
		verdict.ContextValid = verdict.ContextValid && refs.Valid && imports.Valid
	}
	if len(existingPatterns) > 0 {
		naming := project.NewChecker(ctx, a.cfg).CheckNaming(source, language, existingPatterns)
		verdict.Violations.Naming = naming.Violations
		verdict.Suggestions = append(verdict.Suggestions, naming.Suggestions...)
		verdict.ContextValid = verdict.ContextValid && naming.Consistent
	}

	verdict.OverallScore = verdict.SyntaxScore*syntaxWeight +
		verdict.StyleScore*styleWeight +
		verdict.DocScore*docWeight
	verdict.Grade = gradeFor(verdict.OverallScore)

	a.recommend(&verdict, &styleResult, &docResult)

	return verdict
}

// AssessResponse classifies a raw response and grades every extracted
// code block. Blocks in unsupported languages yield error-carrying
// verdicts rather than aborting the batch.
func (a *Assessor) AssessResponse(response string, ctx *project.Context, existingPatterns map[string][]string) ResponseVerdict {
	result := ResponseVerdict{
		Classification: classify.Classify(response),
	}
	for _, block := range result.Classification.CodeBlocks {
		language := lang.Normalize(block.Language)
		result.CodeVerdicts = append(result.CodeVerdicts,
			a.Assess(block.Code, language, ctx, existingPatterns))
	}
	return result
}

func gradeFor(score float64) Grade {
	switch {
	case score >= 0.9:
		return GradeA
	case score >= 0.8:
		return GradeB
	case score >= 0.7:
		return GradeC
	case score >= 0.6:
		return GradeD
	default:
		return GradeF
	}
}

// recommend appends actionable follow-ups mirroring the failing checks.
func (a *Assessor) recommend(verdict *Verdict, styleResult *style.StyleResult, docResult *doccheck.Result) {
	if !verdict.SyntaxValid {
		verdict.Suggestions = append(verdict.Suggestions, "Fix syntax errors before proceeding")
	}

	if !styleResult.Compliant {
		switch verdict.Language {
		case lang.Python:
			verdict.Suggestions = append(verdict.Suggestions,
				fmt.Sprintf("Address PEP 8 violations: %d issues found", len(styleResult.Violations)),
				"Consider using autopep8 or black for automatic formatting")
		default:
			verdict.Suggestions = append(verdict.Suggestions,
				fmt.Sprintf("Address style violations: %d issues found", len(styleResult.Violations)),
				"Consider using ESLint and Prettier for automatic formatting")
		}
	}

	if docResult.Score < wellDocumentedThreshold {
		verdict.Suggestions = append(verdict.Suggestions, docResult.Suggestions...)
	}
}
