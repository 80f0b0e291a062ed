package nlu

import (
	"regexp"
	"strings"
)

// pattern is a rule-table entry. Patterns are written as regular expressions;
// one that fails to compile degrades to a literal substring match instead of
// propagating an error, so a malformed rule can never break classification or
// extraction.
type pattern struct {
	raw  string
	re   *regexp.Regexp
	fold bool
}

func newPattern(raw string) pattern {
	re, err := regexp.Compile(raw)
	if err != nil {
		return pattern{raw: raw}
	}
	return pattern{raw: raw, re: re}
}

// newFoldPattern compiles a case-insensitive pattern, used for app names that
// mix Latin and Han script.
func newFoldPattern(raw string) pattern {
	re, err := regexp.Compile("(?i)" + raw)
	if err != nil {
		return pattern{raw: raw, fold: true}
	}
	return pattern{raw: raw, re: re, fold: true}
}

func patterns(raws ...string) []pattern {
	ps := make([]pattern, 0, len(raws))
	for _, raw := range raws {
		ps = append(ps, newPattern(raw))
	}
	return ps
}

func foldPatterns(raws ...string) []pattern {
	ps := make([]pattern, 0, len(raws))
	for _, raw := range raws {
		ps = append(ps, newFoldPattern(raw))
	}
	return ps
}

// matches reports whether the pattern occurs anywhere in text.
func (p pattern) matches(text string) bool {
	if p.re != nil {
		return p.re.MatchString(text)
	}
	if p.fold {
		return strings.Contains(strings.ToLower(text), strings.ToLower(p.raw))
	}
	return strings.Contains(text, p.raw)
}

// findAll returns every non-overlapping occurrence of the pattern in text.
// The literal fallback reports the pattern itself when it is present.
func (p pattern) findAll(text string) []string {
	if p.re != nil {
		return p.re.FindAllString(text, -1)
	}
	if p.matches(text) {
		return []string{p.raw}
	}
	return nil
}
