// Package parse extracts a minimal structural summary from a source snippet:
// declared functions, classes, top-level assignments, and import statements.
// It is tolerant of broken input; a partial summary is always preferred over
// total failure.
package parse

import "github.com/standardbeagle/respvet/lang"

// Mode tags how a summary was produced, keeping the strict-grammar path and
// the regex fallback explicitly separate instead of silently mixing partial
// and full parses.
type Mode int

const (
	// ModeParsed means a real grammar parse succeeded.
	ModeParsed Mode = iota
	// ModeFallback means the grammar parse failed and the summary came from
	// line-oriented regex extraction.
	ModeFallback
	// ModeHeuristic means the language has no strict grammar here and was
	// analyzed with delimiter balancing plus declaration patterns.
	ModeHeuristic
)

func (m Mode) String() string {
	switch m {
	case ModeParsed:
		return "parsed"
	case ModeFallback:
		return "fallback"
	case ModeHeuristic:
		return "heuristic"
	}
	return "unknown"
}

// Decl records one declared name and the line it was declared on.
type Decl struct {
	Name string
	Line int
}

// Import records one import or require statement.
type Import struct {
	// Module is the imported module path or specifier.
	Module string
	// Name is the member imported from Module ("from x import name"),
	// empty for whole-module imports.
	Name string
	// Alias is the local binding name when the import is aliased.
	Alias string
	// Line is the 1-based source line of the statement, 0 when the
	// fallback extractor could not anchor it.
	Line int
	// From marks python "from x import y" statements.
	From bool
}

// Summary is the structural shape of a snippet. Order follows source order
// within each declaration kind. The caller owns the summary; nothing is
// retained between calls.
type Summary struct {
	Functions []Decl
	Classes   []Decl
	Variables []Decl
	Constants []Decl
	Imports   []Import
	LineCount int
}

// HasFunctions reports whether any function declarations were found.
func (s *Summary) HasFunctions() bool { return len(s.Functions) > 0 }

// HasClasses reports whether any class declarations were found.
func (s *Summary) HasClasses() bool { return len(s.Classes) > 0 }

// Result is a structural parse outcome. Valid=false never means the summary
// is empty: the fallback extractor still populates whatever declarations it
// can recognize before (and after) the break.
type Result struct {
	Language lang.Language
	Mode     Mode
	Valid    bool
	Errors   []string
	Summary  Summary
}
