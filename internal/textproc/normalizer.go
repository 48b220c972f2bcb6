// Package textproc cleans raw text extracted from uploaded documents
// before it is handed to the portfolio classifier.
package textproc

import (
	"regexp"
	"strings"
)

var (
	newlineRuns = regexp.MustCompile(`\n+`)
	// Horizontal whitespace only; newlines are the classifier's line boundaries.
	spaceRuns = regexp.MustCompile(`[^\S\n]+`)
	// Keep word characters, Hangul, basic punctuation and whitespace.
	disallowed = regexp.MustCompile(`[^\w\s가-힣.,!?():-]`)
)

// Normalize strips extraction noise from raw document text: newline runs
// collapse to a single newline, other whitespace runs to a single space,
// and non-linguistic symbols are removed.
func Normalize(raw string) string {
	text := newlineRuns.ReplaceAllString(raw, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
