package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/standardbeagle/respvet/lang"
)

// Declaration patterns for the loose-grammar path. JavaScript and TypeScript
// get no full grammar: delimiter balancing decides validity and these
// patterns recover the declared shape.
var (
	jsFunctionPattern      = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	jsFunctionExprPattern  = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z_$][A-Za-z0-9_$]*\s*=>)`)
	jsClassPattern         = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsVariablePattern      = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=`)
	jsImportFromPattern    = regexp.MustCompile(`import\s+(.*?)\s+from\s+['"]([^'"]+)['"]`)
	jsImportBarePattern    = regexp.MustCompile(`import\s+['"]([^'"]+)['"]`)
	jsRequirePattern       = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	jsNamespaceImportAlias = regexp.MustCompile(`\*\s+as\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
)

// parseLoose analyzes a loose-grammar snippet. Syntax is declared invalid
// only when braces, brackets, or parentheses are unbalanced; everything else
// is tolerated.
func parseLoose(source string, language lang.Language) Result {
	result := Result{
		Language: language,
		Mode:     ModeHeuristic,
		Summary:  Summary{LineCount: countLines(source)},
	}

	result.Errors = append(result.Errors, balanceErrors(source)...)
	result.Valid = len(result.Errors) == 0

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNumber := i + 1

		if m := jsFunctionPattern.FindStringSubmatch(line); m != nil {
			result.Summary.Functions = append(result.Summary.Functions, Decl{Name: m[1], Line: lineNumber})
			continue
		}
		if m := jsClassPattern.FindStringSubmatch(line); m != nil {
			result.Summary.Classes = append(result.Summary.Classes, Decl{Name: m[1], Line: lineNumber})
			continue
		}
		if m := jsFunctionExprPattern.FindStringSubmatch(line); m != nil {
			result.Summary.Functions = append(result.Summary.Functions, Decl{Name: m[1], Line: lineNumber})
			continue
		}
		if m := jsVariablePattern.FindStringSubmatch(line); m != nil {
			appendAssignment(&result.Summary, m[1], lineNumber)
		}

		result.Summary.Imports = append(result.Summary.Imports, extractJSImports(line, lineNumber)...)
	}

	return result
}

// balanceErrors counts delimiter balance over the whole snippet. The count
// is raw: string literals and comments are not excluded, which keeps the
// check cheap and matches the tolerance expected of a heuristic pass.
func balanceErrors(source string) []string {
	var errs []string
	pairs := []struct {
		open, close rune
		name        string
	}{
		{'{', '}', "braces"},
		{'[', ']', "brackets"},
		{'(', ')', "parentheses"},
	}
	for _, p := range pairs {
		diff := strings.Count(source, string(p.open)) - strings.Count(source, string(p.close))
		if diff != 0 {
			errs = append(errs, fmt.Sprintf("Unbalanced %s: %d extra opening %s", p.name, diff, p.name))
		}
	}
	return errs
}

// extractJSImports pulls ES module imports and CommonJS requires from one
// line.
func extractJSImports(line string, lineNumber int) []Import {
	var imports []Import

	if m := jsImportFromPattern.FindStringSubmatch(line); m != nil {
		imp := Import{Module: m[2], Line: lineNumber}
		if alias := jsNamespaceImportAlias.FindStringSubmatch(m[1]); alias != nil {
			imp.Alias = alias[1]
		}
		imports = append(imports, imp)
		return imports
	}
	if m := jsImportBarePattern.FindStringSubmatch(line); m != nil {
		imports = append(imports, Import{Module: m[1], Line: lineNumber})
		return imports
	}
	for _, m := range jsRequirePattern.FindAllStringSubmatch(line, -1) {
		imports = append(imports, Import{Module: m[1], Line: lineNumber})
	}
	return imports
}
