package project

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/respvet/config"
	"github.com/standardbeagle/respvet/internal/casing"
	"github.com/standardbeagle/respvet/lang"
	"github.com/standardbeagle/respvet/parse"
)

// FileReferenceReport lists the file-path string literals found in a
// snippet and which of them do not exist in the project context.
type FileReferenceReport struct {
	Valid             bool
	References        []string
	InvalidReferences []string
	Violations        []string
	Warnings          []string
	Suggestions       []string
}

// ImportReport lists the snippet's imports and which internal targets do
// not resolve to a known project module.
type ImportReport struct {
	Valid          bool
	Imports        []parse.Import
	InvalidImports []parse.Import
	Violations     []string
	Warnings       []string
	Suggestions    []string
}

// NamingIssue describes one identifier whose casing drifts from the
// dominant style of the existing codebase.
type NamingIssue struct {
	Name       string
	Kind       string
	Issue      string
	Suggestion string
}

// NamingReport describes naming-style consistency against caller-supplied
// existing identifiers.
type NamingReport struct {
	Consistent      bool
	Patterns        map[string][]string
	Inconsistencies []NamingIssue
	Violations      []string
	Suggestions     []string
}

// Report bundles the three independent consistency sub-reports.
type Report struct {
	FileReferences FileReferenceReport
	Imports        ImportReport
	Naming         NamingReport
}

// Valid reports whether every sub-report passed.
func (r *Report) Valid() bool {
	return r.FileReferences.Valid && r.Imports.Valid && r.Naming.Consistent
}

// Checker cross-references snippets against a project context. A nil
// config means defaults.
type Checker struct {
	ctx *Context
	cfg *config.Config
}

// NewChecker creates a consistency checker for the given context.
func NewChecker(ctx *Context, cfg *config.Config) *Checker {
	if ctx == nil {
		ctx = NewContext(nil)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Checker{ctx: ctx, cfg: cfg}
}

// Check runs all three sub-checks. existingPatterns maps declaration kinds
// ("functions", "classes", "variables", "constants") to sample identifier
// names from the existing codebase; nil skips the naming check.
func (c *Checker) Check(source string, language lang.Language, existingPatterns map[string][]string) Report {
	return Report{
		FileReferences: c.CheckFileReferences(source, language),
		Imports:        c.CheckImports(source, language),
		Naming:         c.CheckNaming(source, language, existingPatterns),
	}
}

// File-path string literals are recognized by extension.
var (
	pyFileRefPatterns = buildFileRefPatterns("py", "txt", "json", "csv", "yaml", "yml")
	jsFileRefPatterns = buildFileRefPatterns("js", "ts", "jsx", "tsx", "json")
)

func buildFileRefPatterns(exts ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exts))
	for _, ext := range exts {
		patterns = append(patterns, regexp.MustCompile(`["']([^"']*\.`+ext+`)["']`))
	}
	return patterns
}

// CheckFileReferences validates every file-looking string literal against
// the known paths, suggesting near matches for each miss.
func (c *Checker) CheckFileReferences(source string, language lang.Language) FileReferenceReport {
	report := FileReferenceReport{Valid: true}

	var patterns []*regexp.Regexp
	switch language {
	case lang.Python:
		patterns = pyFileRefPatterns
	case lang.JavaScript, lang.TypeScript:
		patterns = jsFileRefPatterns
	default:
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("File reference validation not supported for %s", language))
		return report
	}

	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(source, -1) {
			report.References = append(report.References, m[1])
		}
	}

	for _, ref := range report.References {
		if c.ctx.FileExists(ref) {
			continue
		}
		report.InvalidReferences = append(report.InvalidReferences, ref)
		report.Violations = append(report.Violations,
			fmt.Sprintf("File reference '%s' not found in project context", ref))
		report.Valid = false
	}

	for _, invalid := range report.InvalidReferences {
		if similar := c.similarFiles(invalid); len(similar) > 0 {
			report.Suggestions = append(report.Suggestions,
				fmt.Sprintf("'%s' not found. Did you mean: %s?", invalid, strings.Join(similar, ", ")))
		}
	}

	return report
}

// similarFiles ranks known files by character-bigram Jaccard similarity to
// the missing reference and returns the best matches above the configured
// threshold. Basename containment always qualifies.
func (c *Checker) similarFiles(target string) []string {
	targetName := strings.ToLower(path.Base(target))

	type scored struct {
		path  string
		score float64
	}
	var candidates []scored

	for _, known := range c.ctx.sorted {
		knownName := strings.ToLower(path.Base(known))
		score := float64(edlib.JaccardSimilarity(targetName, knownName, 2))
		contained := strings.Contains(knownName, targetName) || strings.Contains(targetName, knownName)
		if contained || score > c.cfg.Context.SimilarityThreshold {
			if contained && score < 1.0 {
				score += 1.0 // containment outranks plain bigram overlap
			}
			candidates = append(candidates, scored{path: known, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].path < candidates[j].path
	})

	max := c.cfg.Context.MaxSuggestions
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.path
	}
	return out
}

// Python modules that never need to resolve inside the project. A fixed
// allow-list keeps the check deterministic and offline.
var pythonExternalModules = map[string]struct{}{
	"os": {}, "sys": {}, "json": {}, "datetime": {}, "collections": {},
	"itertools": {}, "functools": {}, "operator": {}, "pathlib": {},
	"typing": {}, "re": {}, "math": {}, "random": {}, "urllib": {},
	"http": {}, "email": {}, "html": {}, "xml": {}, "csv": {},
	"sqlite3": {}, "logging": {}, "unittest": {}, "abc": {}, "asyncio": {},
	"dataclasses": {}, "enum": {}, "io": {}, "time": {}, "uuid": {},
	"pytest": {}, "numpy": {}, "pandas": {}, "requests": {},
}

// CheckImports extracts import statements and flags internal targets that
// do not resolve to a known project module.
func (c *Checker) CheckImports(source string, language lang.Language) ImportReport {
	report := ImportReport{Valid: true}

	if !lang.Supported(language) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Import validation not supported for %s", language))
		return report
	}

	parsed := parse.Parse(source, language)
	report.Imports = parsed.Summary.Imports

	for _, imp := range report.Imports {
		if isExternalModule(imp.Module, language) {
			continue
		}
		if c.moduleResolves(imp.Module, language) {
			continue
		}
		report.InvalidImports = append(report.InvalidImports, imp)
		report.Valid = false
		if imp.Line > 0 {
			report.Violations = append(report.Violations,
				fmt.Sprintf("Line %d: Import '%s' does not resolve to a known project module", imp.Line, imp.Module))
		} else {
			report.Violations = append(report.Violations,
				fmt.Sprintf("Import '%s' does not resolve to a known project module", imp.Module))
		}
	}

	return report
}

// isExternalModule classifies a target as standard-library or third-party.
// Python uses the allow-list; script languages treat bare specifiers (no
// relative prefix, no path separator) and node built-ins as external.
func isExternalModule(module string, language lang.Language) bool {
	switch language {
	case lang.Python:
		root := module
		if idx := strings.Index(root, "."); idx != -1 {
			root = root[:idx]
		}
		_, ok := pythonExternalModules[root]
		return ok
	case lang.JavaScript, lang.TypeScript:
		if strings.HasPrefix(module, "node:") {
			return true
		}
		return !strings.HasPrefix(module, ".") && !strings.Contains(module, "/")
	}
	return false
}

// moduleResolves checks an internal target against the known module set:
// exact match first, then a normalized substring match tolerating
// path-separator and dot interchange.
func (c *Checker) moduleResolves(module string, language lang.Language) bool {
	if c.ctx.hasModule(language, module) {
		return true
	}

	normalized := strings.TrimPrefix(module, "./")
	for strings.HasPrefix(normalized, "../") {
		normalized = strings.TrimPrefix(normalized, "../")
	}
	slashForm := strings.ReplaceAll(normalized, ".", "/")

	for known := range c.ctx.modules[language] {
		if strings.Contains(known, slashForm) || strings.Contains(known, normalized) {
			return true
		}
		dotted := strings.ReplaceAll(known, "/", ".")
		if strings.HasPrefix(dotted, normalized) {
			return true
		}
	}
	return false
}

// CheckNaming compares the snippet's newly declared identifiers against the
// dominant casing style of the caller-supplied existing names per kind.
// With no existing sample, or no clear dominant style, everything is
// accepted.
func (c *Checker) CheckNaming(source string, language lang.Language, existingPatterns map[string][]string) NamingReport {
	report := NamingReport{Consistent: true, Patterns: map[string][]string{}}

	if !lang.Supported(language) {
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("Naming validation not supported for %s", language))
		return report
	}

	parsed := parse.Parse(source, language)
	report.Patterns = declaredNames(&parsed.Summary)

	for _, kind := range []string{"functions", "classes", "variables", "constants"} {
		existing := existingPatterns[kind]
		if len(existing) == 0 {
			continue
		}
		dominant := casing.Dominant(existing)
		if dominant == casing.None {
			continue
		}
		for _, name := range report.Patterns[kind] {
			if casing.Matches(name, dominant) {
				continue
			}
			suggestion := casing.Convert(name, dominant)
			report.Consistent = false
			report.Inconsistencies = append(report.Inconsistencies, NamingIssue{
				Name:       name,
				Kind:       kind,
				Issue:      fmt.Sprintf("Naming style inconsistent with existing %s", kind),
				Suggestion: suggestion,
			})
			report.Violations = append(report.Violations,
				fmt.Sprintf("Name '%s' inconsistent with dominant %s style for %s", name, dominant, kind))
			report.Suggestions = append(report.Suggestions,
				fmt.Sprintf("Rename '%s' to '%s'", name, suggestion))
		}
	}

	return report
}

// declaredNames flattens a summary into the kind map the naming check
// uses.
func declaredNames(summary *parse.Summary) map[string][]string {
	patterns := map[string][]string{
		"functions": {},
		"classes":   {},
		"variables": {},
		"constants": {},
	}
	for _, d := range summary.Functions {
		patterns["functions"] = append(patterns["functions"], d.Name)
	}
	for _, d := range summary.Classes {
		patterns["classes"] = append(patterns["classes"], d.Name)
	}
	for _, d := range summary.Variables {
		patterns["variables"] = append(patterns["variables"], d.Name)
	}
	for _, d := range summary.Constants {
		patterns["constants"] = append(patterns["constants"], d.Name)
	}
	return patterns
}
