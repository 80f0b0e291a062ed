package nlu

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// punctReplacer folds full-width punctuation into its ASCII form so the rule
// tables only have to match one variant.
var punctReplacer = strings.NewReplacer(
	"？", "?",
	"！", "!",
	"，", ",",
)

// Normalize canonicalises raw user text: collapsed whitespace, trimmed,
// lower-cased, full-width punctuation folded. It is total and never fails.
func Normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = strings.ToLower(text)
	return punctReplacer.Replace(text)
}
