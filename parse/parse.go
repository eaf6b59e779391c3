package parse

import (
	"strings"

	"github.com/standardbeagle/respvet/internal/errors"
	"github.com/standardbeagle/respvet/lang"
)

// Parse extracts a structural summary from source in the given language.
// It is a pure function of its inputs and safe for concurrent use.
//
// Python takes the strict path: a real grammar parse when possible, with
// line-oriented regex extraction as the fallback when the parse reports
// errors. JavaScript and TypeScript take the heuristic path: delimiter
// balance counting plus declaration patterns.
//
// Unsupported languages yield an invalid result carrying an explicit error
// string rather than an error return, so mixed-language batches keep going.
func Parse(source string, language lang.Language) Result {
	switch language {
	case lang.Python:
		return parsePython(source)
	case lang.JavaScript, lang.TypeScript:
		return parseLoose(source, language)
	default:
		return Result{
			Language: language,
			Mode:     ModeHeuristic,
			Valid:    false,
			Errors:   []string{(&errors.UnsupportedLanguageError{Language: string(language)}).Error()},
			Summary:  Summary{LineCount: countLines(source)},
		}
	}
}

func countLines(source string) int {
	if source == "" {
		return 0
	}
	n := strings.Count(source, "\n")
	if !strings.HasSuffix(source, "\n") {
		n++
	}
	return n
}
