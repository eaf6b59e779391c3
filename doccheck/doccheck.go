// Package doccheck scores the documentation coverage of a snippet: module
// doc presence, per-function and per-class doc comments, and comment-line
// density. It shares the issue/suggestion list shape with the style checks
// so results compose uniformly.
package doccheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/standardbeagle/respvet/config"
	"github.com/standardbeagle/respvet/lang"
	"github.com/standardbeagle/respvet/parse"
)

// Result reports the documentation analysis of one snippet.
type Result struct {
	Score               float64
	HasModuleDoc        bool
	DocumentedFunctions int
	TotalFunctions      int
	DocumentedClasses   int
	TotalClasses        int
	CommentLines        int
	TotalLines          int
	Issues              []string
	Suggestions         []string
}

// Analyzer computes documentation scores. A nil config means defaults.
type Analyzer struct {
	cfg *config.Config
}

// NewAnalyzer creates a documentation analyzer.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{cfg: cfg}
}

var jsdocBlockPattern = regexp.MustCompile(`/\*\*[\s\S]*?\*/`)

// Analyze scores the documentation of source given its structural summary.
// Weighted sum: module doc, function doc fraction, class doc fraction, and
// comment density capped at the configured ratio of file length.
func (a *Analyzer) Analyze(source string, language lang.Language, summary *parse.Summary) Result {
	lines := strings.Split(source, "\n")
	result := Result{
		TotalFunctions: len(summary.Functions),
		TotalClasses:   len(summary.Classes),
		TotalLines:     summary.LineCount,
	}

	switch language {
	case lang.Python:
		a.analyzePython(lines, summary, &result)
	case lang.JavaScript, lang.TypeScript:
		a.analyzeJavaScript(source, lines, summary, &result)
	default:
		result.Issues = append(result.Issues,
			fmt.Sprintf("Documentation analysis not supported for %s", language))
		return result
	}

	a.score(&result)
	a.suggest(language, &result)
	return result
}

func (a *Analyzer) analyzePython(lines []string, summary *parse.Summary, result *Result) {
	result.HasModuleDoc = pythonModuleDocstring(lines)

	for _, decl := range summary.Functions {
		if pythonDocstringAfter(lines, decl.Line, a.cfg.Docs.AttachTolerance) {
			result.DocumentedFunctions++
		} else {
			result.Issues = append(result.Issues,
				fmt.Sprintf("Function '%s' missing docstring", decl.Name))
		}
	}
	for _, decl := range summary.Classes {
		if pythonDocstringAfter(lines, decl.Line, a.cfg.Docs.AttachTolerance) {
			result.DocumentedClasses++
		} else {
			result.Issues = append(result.Issues,
				fmt.Sprintf("Class '%s' missing docstring", decl.Name))
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			result.CommentLines++
		}
	}
}

func (a *Analyzer) analyzeJavaScript(source string, lines []string, summary *parse.Summary, result *Result) {
	blockEnds := jsdocBlockEndLines(source)

	// A leading JSDoc or block comment before any declaration counts as
	// the module doc.
	firstDecl := firstDeclarationLine(summary)
	for _, end := range blockEnds {
		if firstDecl == 0 || end < firstDecl {
			result.HasModuleDoc = true
			break
		}
	}

	tolerance := a.cfg.Docs.AttachTolerance
	for _, decl := range summary.Functions {
		if docBlockAttached(blockEnds, decl.Line, tolerance) {
			result.DocumentedFunctions++
		} else {
			result.Issues = append(result.Issues,
				fmt.Sprintf("Function '%s' missing JSDoc documentation", decl.Name))
		}
	}
	for _, decl := range summary.Classes {
		if docBlockAttached(blockEnds, decl.Line, tolerance) {
			result.DocumentedClasses++
		} else {
			result.Issues = append(result.Issues,
				fmt.Sprintf("Class '%s' missing JSDoc documentation", decl.Name))
		}
	}

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "//") || strings.HasPrefix(stripped, "/*") || strings.HasPrefix(stripped, "*") {
			result.CommentLines++
		}
	}
}

// score applies the configured weighted sum. Categories with nothing to
// document earn full credit.
func (a *Analyzer) score(result *Result) {
	docs := a.cfg.Docs
	score := 0.0

	if result.HasModuleDoc {
		score += docs.ModuleWeight
	}

	if result.TotalFunctions > 0 {
		score += docs.FunctionWeight * float64(result.DocumentedFunctions) / float64(result.TotalFunctions)
	} else {
		score += docs.FunctionWeight
	}

	if result.TotalClasses > 0 {
		score += docs.ClassWeight * float64(result.DocumentedClasses) / float64(result.TotalClasses)
	} else {
		score += docs.ClassWeight
	}

	if result.TotalLines > 0 {
		ratio := float64(result.CommentLines) / float64(result.TotalLines)
		density := ratio / docs.CommentDensityCap
		if density > 1.0 {
			density = 1.0
		}
		score += docs.CommentWeight * density
	}

	result.Score = score
}

func (a *Analyzer) suggest(language lang.Language, result *Result) {
	if !result.HasModuleDoc {
		if language == lang.Python {
			result.Suggestions = append(result.Suggestions, "Add module docstring to describe file purpose")
		} else {
			result.Suggestions = append(result.Suggestions, "Add a file-level comment to describe file purpose")
		}
	}
	if result.TotalFunctions > result.DocumentedFunctions {
		result.Suggestions = append(result.Suggestions, "Add doc comments to all functions")
	}
	if result.TotalClasses > result.DocumentedClasses {
		result.Suggestions = append(result.Suggestions, "Add doc comments to all classes")
	}
	totalLines := result.TotalLines
	if totalLines < 1 {
		totalLines = 1
	}
	if float64(result.CommentLines)/float64(totalLines) < 0.05 {
		result.Suggestions = append(result.Suggestions, "Consider adding more inline comments")
	}
}

// pythonModuleDocstring reports whether the first statement of the file is
// a string literal.
func pythonModuleDocstring(lines []string) bool {
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		return strings.HasPrefix(stripped, `"""`) || strings.HasPrefix(stripped, "'''") ||
			strings.HasPrefix(stripped, `"`) || strings.HasPrefix(stripped, "'")
	}
	return false
}

// pythonDocstringAfter reports whether a docstring opens within tolerance
// lines after the declaration header at declLine (1-based).
func pythonDocstringAfter(lines []string, declLine, tolerance int) bool {
	for i := declLine; i < len(lines) && i <= declLine+tolerance; i++ {
		stripped := strings.TrimSpace(lines[i])
		if stripped == "" {
			continue
		}
		return strings.HasPrefix(stripped, `"""`) || strings.HasPrefix(stripped, "'''")
	}
	return false
}

// jsdocBlockEndLines returns the 1-based line number on which each JSDoc
// block closes.
func jsdocBlockEndLines(source string) []int {
	var ends []int
	for _, loc := range jsdocBlockPattern.FindAllStringIndex(source, -1) {
		ends = append(ends, strings.Count(source[:loc[1]], "\n")+1)
	}
	return ends
}

// docBlockAttached reports whether any doc block closes within tolerance
// lines above the declaration, leaving room for blank lines or decorators.
func docBlockAttached(blockEnds []int, declLine, tolerance int) bool {
	for _, end := range blockEnds {
		if end < declLine && declLine-end <= tolerance {
			return true
		}
	}
	return false
}

// firstDeclarationLine returns the smallest declaration line in the
// summary, or 0 when the snippet declares nothing.
func firstDeclarationLine(summary *parse.Summary) int {
	first := 0
	consider := func(line int) {
		if line > 0 && (first == 0 || line < first) {
			first = line
		}
	}
	for _, d := range summary.Functions {
		consider(d.Line)
	}
	for _, d := range summary.Classes {
		consider(d.Line)
	}
	for _, d := range summary.Variables {
		consider(d.Line)
	}
	for _, d := range summary.Constants {
		consider(d.Line)
	}
	for _, imp := range summary.Imports {
		consider(imp.Line)
	}
	return first
}
