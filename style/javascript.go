package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/standardbeagle/respvet/internal/casing"
	"github.com/standardbeagle/respvet/parse"
)

var (
	jsControlPattern  = regexp.MustCompile(`^\s*(if|for|while|function|class|else|try|catch|finally|switch|do|export|import|return)\b`)
	jsWordEndPattern  = regexp.MustCompile(`[a-zA-Z0-9_$]$`)
	jsVarDeclPattern  = regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsFuncDeclPattern = regexp.MustCompile(`function\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsCamelPattern    = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

// checkJavaScriptStyle runs the javascript battery: statement terminators,
// indentation consistency, declaration naming, and quote-style consistency.
// TypeScript shares the battery.
func (c *Checker) checkJavaScriptStyle(source string, summary *parse.Summary) StyleResult {
	result := StyleResult{
		Checks: map[string]bool{
			"semicolons":  true,
			"indentation": true,
			"naming":      true,
			"quotes":      true,
			"spacing":     true,
		},
	}

	lines := strings.Split(source, "\n")

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "//") || strings.HasPrefix(stripped, "/*") || strings.HasPrefix(stripped, "*") {
			continue
		}
		endsStatement := strings.HasSuffix(stripped, ")") ||
			strings.HasSuffix(stripped, "]") ||
			jsWordEndPattern.MatchString(stripped)
		if endsStatement && !strings.HasSuffix(stripped, ";") && !jsControlPattern.MatchString(stripped) {
			result.Violations = append(result.Violations,
				fmt.Sprintf("Line %d: Missing semicolon", i+1))
			result.Checks["semicolons"] = false
		}
	}

	// Indentation is judged against the smallest indent seen rather than a
	// fixed width: 2-space and 4-space files are both fine as long as they
	// are internally consistent.
	baseIndent := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" && strings.HasPrefix(line, " ") {
			leading := len(line) - len(strings.TrimLeft(line, " "))
			if leading > 0 && (baseIndent == 0 || leading < baseIndent) {
				baseIndent = leading
			}
		}
	}
	if baseIndent > 0 {
		for i, line := range lines {
			if strings.TrimSpace(line) != "" && strings.HasPrefix(line, " ") {
				leading := len(line) - len(strings.TrimLeft(line, " "))
				if leading%baseIndent != 0 {
					result.Violations = append(result.Violations,
						fmt.Sprintf("Line %d: Inconsistent indentation", i+1))
					result.Checks["indentation"] = false
					break
				}
			}
		}
	}

	for i, line := range lines {
		for _, m := range jsVarDeclPattern.FindAllStringSubmatch(line, -1) {
			name := m[1]
			// UPPER_CASE constants are exempt from the camelCase rule.
			if !jsCamelPattern.MatchString(name) && strings.ToUpper(name) != name {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Variable '%s' should use camelCase", i+1, name))
				result.Checks["naming"] = false
			}
		}
		for _, m := range jsFuncDeclPattern.FindAllStringSubmatch(line, -1) {
			if !jsCamelPattern.MatchString(m[1]) {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Line %d: Function '%s' should use camelCase", i+1, m[1]))
				result.Checks["naming"] = false
			}
		}
	}

	// Class naming from the structural summary.
	for _, decl := range summary.Classes {
		if !casing.Matches(decl.Name, casing.Pascal) {
			result.Violations = append(result.Violations,
				fmt.Sprintf("Line %d: Class '%s' should use PascalCase", decl.Line, decl.Name))
			result.Checks["naming"] = false
		}
	}

	doubleQuotes := strings.Count(source, `"`)
	singleQuotes := strings.Count(source, "'")
	if doubleQuotes > singleQuotes && singleQuotes > 0 {
		result.Violations = append(result.Violations, "Inconsistent quote usage - prefer single quotes")
		result.Checks["quotes"] = false
	}

	c.finish(&result)
	return result
}
