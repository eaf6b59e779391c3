package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/respvet/config"
	"github.com/standardbeagle/respvet/lang"
)

const cleanPython = `"""Helpers."""
import os

MAX_RETRIES = 3


def fetch_data(url):
    """Fetch data."""
    return os.path.basename(url)
`

func TestCheckPythonClean(t *testing.T) {
	syntax, style := NewChecker(nil).Check(cleanPython, lang.Python, nil)

	assert.True(t, syntax.Valid)
	assert.True(t, syntax.HasFunctions)
	assert.False(t, syntax.HasClasses)

	assert.True(t, style.Compliant)
	assert.Empty(t, style.Violations)
	assert.Equal(t, 1.0, style.Score)
	for name, passed := range style.Checks {
		assert.True(t, passed, "check %s", name)
	}
}

func TestCheckPythonViolations(t *testing.T) {
	source := strings.Join([]string{
		"x = 1",
		"import os",
		"def BadName():",
		"    y=2",
		"   return y",
	}, "\n")

	_, style := NewChecker(nil).Check(source, lang.Python, nil)

	assert.False(t, style.Compliant)
	assert.Contains(t, style.Violations, "Line 2: Import should be at top of file")
	assert.Contains(t, style.Violations, "Line 3: Function 'BadName' should use snake_case")
	assert.Contains(t, style.Violations, "Line 4: Missing spaces around assignment operator")
	assert.Contains(t, style.Violations, "Line 5: Indentation should be multiple of 4 spaces")
	assert.False(t, style.Checks["imports"])
	assert.False(t, style.Checks["naming"])
	assert.False(t, style.Checks["whitespace"])
	assert.False(t, style.Checks["indentation"])
}

func TestCheckPythonLineLength(t *testing.T) {
	source := "x = '" + strings.Repeat("a", 100) + "'"
	_, style := NewChecker(nil).Check(source, lang.Python, nil)

	require.NotEmpty(t, style.Violations)
	assert.Contains(t, style.Violations[0], "Line too long")
	assert.False(t, style.Checks["line_length"])
}

func TestStyleScoreMonotonic(t *testing.T) {
	// Each extra violation lowers the score by the configured penalty,
	// floored at zero.
	checker := NewChecker(nil)

	prev := 1.0
	source := ""
	for i := 0; i < 12; i++ {
		source += "VeryBad_name=1\n"
		_, style := checker.Check(source, lang.Python, nil)
		assert.LessOrEqual(t, style.Score, prev)
		prev = style.Score
	}
	assert.Equal(t, 0.0, prev)
}

func TestCheckJavaScriptClean(t *testing.T) {
	source := strings.Join([]string{
		"const maxSize = 1024;",
		"",
		"function processData(input) {",
		"  return input;",
		"}",
	}, "\n")

	syntax, style := NewChecker(nil).Check(source, lang.JavaScript, nil)

	assert.True(t, syntax.Valid)
	assert.True(t, style.Compliant, "violations: %v", style.Violations)
	assert.Equal(t, 1.0, style.Score)
}

func TestCheckJavaScriptViolations(t *testing.T) {
	source := strings.Join([]string{
		`const the_value = "mixed";`,
		"let other = 5",
		"function Bad_Function() {",
		"  return other;",
		"}",
	}, "\n")

	_, style := NewChecker(nil).Check(source, lang.JavaScript, nil)

	assert.False(t, style.Compliant)
	assert.Contains(t, style.Violations, "Line 1: Variable 'the_value' should use camelCase")
	assert.Contains(t, style.Violations, "Line 2: Missing semicolon")
	assert.Contains(t, style.Violations, "Line 3: Function 'Bad_Function' should use camelCase")
	assert.False(t, style.Checks["semicolons"])
	assert.False(t, style.Checks["naming"])
}

func TestCheckJavaScriptQuoteConsistency(t *testing.T) {
	source := "const a = \"x\";\nconst b = \"y\";\nconst c = 'z';\n"
	_, style := NewChecker(nil).Check(source, lang.JavaScript, nil)

	assert.Contains(t, style.Violations, "Inconsistent quote usage - prefer single quotes")
	assert.False(t, style.Checks["quotes"])
}

func TestCheckUnsupportedLanguage(t *testing.T) {
	syntax, style := NewChecker(nil).Check("fn main() {}", lang.Unknown, nil)

	assert.False(t, syntax.Valid)
	assert.Contains(t, syntax.Errors, "Unsupported language: unknown")
	assert.False(t, style.Compliant)
	assert.Equal(t, 0.0, style.Score)
}

func TestCheckCustomConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Style.MaxLineLength = 10

	_, style := NewChecker(cfg).Check("x = 'aaaaaaaaaa'\n", lang.Python, nil)
	require.NotEmpty(t, style.Violations)
	assert.Contains(t, style.Violations[0], "(16 > 10 characters)")
}
