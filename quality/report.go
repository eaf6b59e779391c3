package quality

import (
	"fmt"
	"strings"
)

// Report renders a human-readable quality report for the verdict.
func (v *Verdict) Report() string {
	if len(v.Errors) > 0 {
		return fmt.Sprintf("Error: %s", strings.Join(v.Errors, "; "))
	}

	var b strings.Builder

	title := titleCase(string(v.Language))
	fmt.Fprintf(&b, "\nCode Quality Assessment Report (%s)\n", title)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Overall Grade: %s (%.1f%%)\n\n", v.Grade, v.OverallScore*100)

	fmt.Fprintf(&b, "Syntax: %s\n", passFail(v.SyntaxValid, "Valid", "Invalid"))
	fmt.Fprintf(&b, "Style: %s\n", passFail(v.StyleCompliant, "Compliant", "Non-compliant"))
	fmt.Fprintf(&b, "Documentation: %s\n", passFail(v.WellDocumented, "Well documented", "Needs improvement"))
	if !v.ContextValid {
		b.WriteString("Context: ✗ Inconsistent\n")
	}
	b.WriteString("\n")

	writeViolationGroup(&b, "Syntax errors", v.Violations.Syntax)
	writeViolationGroup(&b, "Style violations", v.Violations.Style)
	writeViolationGroup(&b, "Documentation issues", v.Violations.Documentation)
	writeViolationGroup(&b, "File reference issues", v.Violations.FileReferences)
	writeViolationGroup(&b, "Import issues", v.Violations.Imports)
	writeViolationGroup(&b, "Naming issues", v.Violations.Naming)

	if len(v.Suggestions) > 0 {
		b.WriteString("Recommendations:\n")
		for i, rec := range v.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	return b.String()
}

// Report renders the classification header plus each code block's report.
func (rv *ResponseVerdict) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Response type: %s\n", rv.Classification.Kind)
	for _, warning := range rv.Classification.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}
	for _, errMsg := range rv.Classification.Errors {
		fmt.Fprintf(&b, "Error: %s\n", errMsg)
	}
	for _, req := range rv.Classification.ToolRequests {
		fmt.Fprintf(&b, "Tool request: %s (%d parameters, confidence %.1f)\n",
			req.ToolName, len(req.Parameters), req.Confidence)
	}
	for i, verdict := range rv.CodeVerdicts {
		fmt.Fprintf(&b, "\n--- Code block %d ---\n", i+1)
		b.WriteString(verdict.Report())
	}

	return b.String()
}

func passFail(ok bool, pass, fail string) string {
	if ok {
		return "✓ " + pass
	}
	return "✗ " + fail
}

func writeViolationGroup(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	b.WriteString("\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
