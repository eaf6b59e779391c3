// Package lang defines the set of languages the validation framework
// understands and the normalization rules for caller-supplied language tags.
package lang

import "strings"

// Language identifies a programming language supported by the framework.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Unknown    Language = "unknown"
)

// aliases maps the language tags that appear in fenced code blocks and
// caller input onto canonical languages.
var aliases = map[string]Language{
	"python":     Python,
	"py":         Python,
	"python3":    Python,
	"javascript": JavaScript,
	"js":         JavaScript,
	"jsx":        JavaScript,
	"node":       JavaScript,
	"typescript": TypeScript,
	"ts":         TypeScript,
	"tsx":        TypeScript,
}

// Normalize resolves a raw language tag to a canonical Language.
// Unrecognized tags normalize to Unknown rather than failing, so batch
// validation of mixed corpora never aborts on an exotic tag.
func Normalize(tag string) Language {
	if l, ok := aliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return l
	}
	return Unknown
}

// Supported reports whether the framework can validate the language.
func Supported(l Language) bool {
	switch l {
	case Python, JavaScript, TypeScript:
		return true
	}
	return false
}

// Strict reports whether the language has a real grammar parse available.
// Only Python takes the strict path; the rest use delimiter-balance
// heuristics.
func Strict(l Language) bool {
	return l == Python
}

// Extensions returns the file extensions conventionally associated with the
// language, used when deriving module sets from a project snapshot.
func Extensions(l Language) []string {
	switch l {
	case Python:
		return []string{".py"}
	case JavaScript:
		return []string{".js", ".jsx"}
	case TypeScript:
		return []string{".ts", ".tsx"}
	}
	return nil
}

func (l Language) String() string { return string(l) }
