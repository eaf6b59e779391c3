package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/respvet/classify"
	"github.com/standardbeagle/respvet/lang"
	"github.com/standardbeagle/respvet/project"
)

const goodPython = `"""Order helpers."""
import os

MAX_ITEMS = 10


def count_items(path):
    """Count entries under a path."""
    return len(os.listdir(path))
`

func TestAssessCodeGoodPython(t *testing.T) {
	verdict := NewAssessor(nil).AssessCode(goodPython, lang.Python)

	assert.True(t, verdict.SyntaxValid)
	assert.True(t, verdict.StyleCompliant)
	assert.True(t, verdict.WellDocumented)
	assert.Equal(t, 1.0, verdict.SyntaxScore)
	assert.Equal(t, 1.0, verdict.StyleScore)
	// 0.25 + 0.35 + 0.40*doc; doc is 0.9 with no comment lines.
	assert.InDelta(t, 0.96, verdict.OverallScore, 1e-9)
	assert.Equal(t, GradeA, verdict.Grade)
	assert.Empty(t, verdict.Errors)
}

func TestAssessCodeBrokenPython(t *testing.T) {
	verdict := NewAssessor(nil).AssessCode("def broken(:\n    pass\n", lang.Python)

	assert.False(t, verdict.SyntaxValid)
	assert.Equal(t, 0.0, verdict.SyntaxScore)
	assert.NotEmpty(t, verdict.Violations.Syntax)
	assert.Contains(t, verdict.Suggestions, "Fix syntax errors before proceeding")
	assert.NotEqual(t, GradeA, verdict.Grade)
}

func TestAssessCodeUnsupportedLanguage(t *testing.T) {
	verdict := NewAssessor(nil).AssessCode("fn main() {}", lang.Unknown)

	assert.Equal(t, GradeF, verdict.Grade)
	assert.Equal(t, 0.0, verdict.OverallScore)
	require.Len(t, verdict.Errors, 1)
	assert.Equal(t, "Unsupported language: unknown", verdict.Errors[0])
	assert.Contains(t, verdict.Report(), "Unsupported language")
}

func TestAssessGradeBands(t *testing.T) {
	tests := []struct {
		score float64
		want  Grade
	}{
		{0.95, GradeA},
		{0.9, GradeA},
		{0.85, GradeB},
		{0.75, GradeC},
		{0.65, GradeD},
		{0.59, GradeF},
		{0.0, GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gradeFor(tt.score), "score %v", tt.score)
	}
}

func TestAssessWithProjectContext(t *testing.T) {
	ctx := project.NewContext([]string{"config/settings.json", "utils/helpers.py"})

	source := strings.Join([]string{
		`"""Loader."""`,
		"from utils.helpers import parse_config",
		"",
		"",
		"def load_settings():",
		`    """Load settings from disk."""`,
		`    return parse_config("config/setting.json")`,
	}, "\n")

	verdict := NewAssessor(nil).Assess(source, lang.Python, ctx, nil)

	assert.False(t, verdict.ContextValid)
	require.Len(t, verdict.Violations.FileReferences, 1)
	assert.Contains(t, verdict.Violations.FileReferences[0], "config/setting.json")
	assert.Empty(t, verdict.Violations.Imports)

	var found bool
	for _, s := range verdict.Suggestions {
		if strings.Contains(s, "config/settings.json") {
			found = true
		}
	}
	assert.True(t, found, "expected a did-you-mean suggestion, got %v", verdict.Suggestions)
}

func TestAssessNamingPatterns(t *testing.T) {
	patterns := map[string][]string{
		"functions": {"get_user", "set_password", "validate_email"},
	}

	verdict := NewAssessor(nil).Assess("def processData(x):\n    return x\n", lang.Python, nil, patterns)

	assert.False(t, verdict.ContextValid)
	require.NotEmpty(t, verdict.Violations.Naming)
	assert.Contains(t, verdict.Suggestions, "Rename 'processData' to 'process_data'")
}

func TestAssessIdempotent(t *testing.T) {
	assessor := NewAssessor(nil)
	ctx := project.NewContext([]string{"a.py", "b.py"})

	first := assessor.Assess(goodPython, lang.Python, ctx, nil)
	second := assessor.Assess(goodPython, lang.Python, ctx, nil)
	assert.Equal(t, first, second)
}

func TestAssessResponse(t *testing.T) {
	response := "Here you go:\n```python\n" + goodPython + "```\n"

	result := NewAssessor(nil).AssessResponse(response, nil, nil)

	assert.Equal(t, classify.KindCode, result.Classification.Kind)
	require.Len(t, result.CodeVerdicts, 1)
	assert.True(t, result.CodeVerdicts[0].SyntaxValid)
	assert.Equal(t, lang.Python, result.CodeVerdicts[0].Language)
}

func TestAssessResponseUnknownBlockLanguage(t *testing.T) {
	response := "```brainfuck\n+++\n```"

	result := NewAssessor(nil).AssessResponse(response, nil, nil)

	require.Len(t, result.CodeVerdicts, 1)
	assert.Equal(t, GradeF, result.CodeVerdicts[0].Grade)
	assert.NotEmpty(t, result.CodeVerdicts[0].Errors)
}

func TestVerdictReport(t *testing.T) {
	verdict := NewAssessor(nil).AssessCode(goodPython, lang.Python)
	report := verdict.Report()

	assert.Contains(t, report, "Code Quality Assessment Report (Python)")
	assert.Contains(t, report, "Overall Grade: A")
	assert.Contains(t, report, "✓ Valid")
	assert.Contains(t, report, "✓ Compliant")
}

func TestViolationsCount(t *testing.T) {
	v := Violations{
		Syntax: []string{"a"},
		Style:  []string{"b", "c"},
		Naming: []string{"d"},
	}
	assert.Equal(t, 4, v.Count())
}
