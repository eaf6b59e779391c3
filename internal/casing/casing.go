// Package casing classifies and converts identifier casing styles. It backs
// both the per-language style checks and the project-level naming
// consistency checks.
package casing

import (
	"regexp"
	"strings"
)

// Style labels one of the four casing conventions the framework recognizes.
type Style string

const (
	Snake  Style = "snake_case"
	Camel  Style = "camelCase"
	Pascal Style = "PascalCase"
	Upper  Style = "UPPER_CASE"
	None   Style = "" // no recognized style
)

// Classification order matters: patterns overlap (a single all-caps word
// satisfies both PascalCase and UPPER_CASE), so names are tested in a fixed
// order and assigned to the first match.
var (
	snakePattern  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	camelPattern  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	pascalPattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	upperPattern  = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

	boundaryPattern = regexp.MustCompile(`([A-Z])`)
	separatorSplit  = regexp.MustCompile(`[_\s]+`)
)

// Matches reports whether name conforms to the given style.
func Matches(name string, style Style) bool {
	switch style {
	case Snake:
		return snakePattern.MatchString(name)
	case Camel:
		return camelPattern.MatchString(name)
	case Pascal:
		return pascalPattern.MatchString(name)
	case Upper:
		return upperPattern.MatchString(name)
	}
	// No recognized style means no constraint.
	return true
}

// Count tallies how many names match each casing style. A name is assigned
// to the first style it satisfies in classification order, so overlapping
// patterns (an all-lowercase word is both snake and camel) do not double
// count.
func Count(names []string) map[Style]int {
	counts := map[Style]int{Snake: 0, Camel: 0, Pascal: 0, Upper: 0}
	for _, name := range names {
		switch {
		case snakePattern.MatchString(name):
			counts[Snake]++
		case camelPattern.MatchString(name):
			counts[Camel]++
		case pascalPattern.MatchString(name):
			counts[Pascal]++
		case upperPattern.MatchString(name):
			counts[Upper]++
		}
	}
	return counts
}

// Dominant returns the casing style with the highest count, or None when the
// sample is empty or nothing matched. Ties resolve in a fixed order
// (snake, camel, pascal, upper) so repeated calls are deterministic.
func Dominant(names []string) Style {
	counts := Count(names)
	order := []Style{Snake, Camel, Pascal, Upper}
	best := None
	bestCount := 0
	for _, s := range order {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}

// Convert rewrites name into the target style. Conversion is best-effort:
// word boundaries are taken from underscores, whitespace, and upper-case
// letters.
func Convert(name string, style Style) string {
	switch style {
	case Snake:
		return strings.Trim(strings.ToLower(boundaryPattern.ReplaceAllString(name, "_$1")), "_")
	case Upper:
		return strings.Trim(strings.ToUpper(boundaryPattern.ReplaceAllString(name, "_$1")), "_")
	case Camel:
		words := splitWords(name)
		if len(words) == 0 {
			return name
		}
		out := words[0]
		for _, w := range words[1:] {
			out += capitalize(w)
		}
		return out
	case Pascal:
		words := splitWords(name)
		out := ""
		for _, w := range words {
			out += capitalize(w)
		}
		if out == "" {
			return name
		}
		return out
	}
	return name
}

func splitWords(name string) []string {
	parts := separatorSplit.Split(strings.ToLower(name), -1)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
