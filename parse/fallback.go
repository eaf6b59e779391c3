package parse

import (
	"regexp"
	"strings"
)

// Line-oriented patterns for the python fallback extractor. These recover
// declarations from snippets the grammar rejects: everything before (and
// after) the broken region still produces summary entries.
var (
	pyFunctionPattern = regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	pyClassPattern    = regexp.MustCompile(`^\s*class\s+([A-Za-z_][A-Za-z0-9_]*)\s*[(:]`)
	pyAssignPattern   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=[^=]`)
	pyImportPattern   = regexp.MustCompile(`^import\s+(.+)$`)
	pyFromPattern     = regexp.MustCompile(`^from\s+(\S+)\s+import\s+(.+)$`)
)

// extractPythonFallback populates the summary from per-line regex matches.
func extractPythonFallback(source string, summary *Summary) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNumber := i + 1

		if m := pyFunctionPattern.FindStringSubmatch(line); m != nil {
			summary.Functions = append(summary.Functions, Decl{Name: m[1], Line: lineNumber})
			continue
		}
		if m := pyClassPattern.FindStringSubmatch(line); m != nil {
			summary.Classes = append(summary.Classes, Decl{Name: m[1], Line: lineNumber})
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if pyImportPattern.MatchString(trimmed) || pyFromPattern.MatchString(trimmed) {
			summary.Imports = append(summary.Imports, parsePythonImportStatement(trimmed, lineNumber)...)
			continue
		}
		// Only module-level assignments: indented ones are locals.
		if m := pyAssignPattern.FindStringSubmatch(line); m != nil {
			appendAssignment(summary, m[1], lineNumber)
		}
	}
}

// parsePythonImportStatement decodes a single import or from-import
// statement into Import records, handling comma lists and "as" aliases.
// Both the strict path (which feeds it statement node text) and the
// fallback path share it.
func parsePythonImportStatement(stmt string, line int) []Import {
	// Parenthesized from-imports can span lines; flatten before matching.
	stmt = strings.Join(strings.Fields(stmt), " ")
	var imports []Import

	if m := pyFromPattern.FindStringSubmatch(stmt); m != nil {
		module := m[1]
		names := strings.Trim(m[2], "()")
		for _, part := range strings.Split(names, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name, alias := splitAsAlias(part)
			imports = append(imports, Import{
				Module: module,
				Name:   name,
				Alias:  alias,
				Line:   line,
				From:   true,
			})
		}
		return imports
	}

	if m := pyImportPattern.FindStringSubmatch(stmt); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			module, alias := splitAsAlias(part)
			imports = append(imports, Import{
				Module: module,
				Alias:  alias,
				Line:   line,
			})
		}
	}
	return imports
}

func splitAsAlias(part string) (name, alias string) {
	if idx := strings.Index(part, " as "); idx != -1 {
		return strings.TrimSpace(part[:idx]), strings.TrimSpace(part[idx+4:])
	}
	return part, ""
}
