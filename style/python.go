package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/standardbeagle/respvet/internal/casing"
	"github.com/standardbeagle/respvet/parse"
)

var (
	pyDefPattern        = regexp.MustCompile(`def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	pyClassDefPattern   = regexp.MustCompile(`class\s+([A-Za-z_][A-Za-z0-9_]*)\s*[(:]`)
	pyTightAssign       = regexp.MustCompile(`[a-zA-Z0-9_]=[a-zA-Z0-9_]`)
	pySnakePattern      = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	pyPascalPattern     = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	pyStatementPrefixes = []string{"#", "import ", "from ", `"""`, "'''"}
)

// checkPythonStyle runs the PEP 8 battery: line length, indentation,
// import placement, declaration naming, and assignment whitespace.
func (c *Checker) checkPythonStyle(source string, summary *parse.Summary) StyleResult {
	result := StyleResult{
		Checks: map[string]bool{
			"line_length": true,
			"indentation": true,
			"imports":     true,
			"naming":      true,
			"whitespace":  true,
		},
	}

	lines := strings.Split(source, "\n")
	maxLen := c.cfg.Style.MaxLineLength
	indent := c.cfg.Style.IndentWidth

	for i, line := range lines {
		if len(line) > maxLen {
			result.Violations = append(result.Violations,
				fmt.Sprintf("Line %d: Line too long (%d > %d characters)", i+1, len(line), maxLen))
			result.Checks["line_length"] = false
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) != "" && strings.HasPrefix(line, " ") {
			leading := len(line) - len(strings.TrimLeft(line, " "))
			if leading%indent != 0 {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Indentation should be multiple of %d spaces", i+1, indent))
				result.Checks["indentation"] = false
			}
		}
	}

	// Imports must precede executable statements.
	codeStarted := false
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if isPythonImport(stripped) {
			if codeStarted {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Import should be at top of file", i+1))
				result.Checks["imports"] = false
			}
			continue
		}
		if !hasAnyPrefix(stripped, pyStatementPrefixes) {
			codeStarted = true
		}
	}

	for i, line := range lines {
		for _, m := range pyDefPattern.FindAllStringSubmatch(line, -1) {
			if !pySnakePattern.MatchString(m[1]) {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Function '%s' should use snake_case", i+1, m[1]))
				result.Checks["naming"] = false
			}
		}
		for _, m := range pyClassDefPattern.FindAllStringSubmatch(line, -1) {
			if !pyPascalPattern.MatchString(m[1]) {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Class '%s' should use PascalCase", i+1, m[1]))
				result.Checks["naming"] = false
			}
		}
	}

	// Module-level variable casing from the structural summary: variables
	// stay snake_case, constant-like names are already upper-snake by
	// construction.
	for _, decl := range summary.Variables {
		if !casing.Matches(decl.Name, casing.Snake) {
			result.Violations = append(result.Violations,
				fmt.Sprintf("Line %d: Variable '%s' should use snake_case", decl.Line, decl.Name))
			result.Checks["naming"] = false
		}
	}

	for i, line := range lines {
		if strings.Contains(line, "=") && !strings.HasPrefix(strings.TrimSpace(line), "#") {
			if pyTightAssign.MatchString(line) {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Missing spaces around assignment operator", i+1))
				result.Checks["whitespace"] = false
			}
		}
	}

	c.finish(&result)
	return result
}

func isPythonImport(stripped string) bool {
	return strings.HasPrefix(stripped, "import ") || strings.HasPrefix(stripped, "from ")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
