// Package rules implements the ordered, first-match-wins rule engine that
// decides whether an environment variable is kept, redacted or unset based
// on its name alone.
package rules

import (
	"regexp"
)

// Pattern is a compiled, case-insensitive regular expression over variable
// names. The zero value matches nothing.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// CompilePattern compiles src as a case-insensitive pattern. Matching is an
// unanchored search unless src anchors itself with ^ and/or $.
func CompilePattern(src string) (Pattern, error) {
	re, err := regexp.Compile("(?i)" + src)
	if err != nil {
		return Pattern{}, &InvalidPatternError{Pattern: src, Err: err}
	}
	return Pattern{source: src, re: re}, nil
}

// ExactPattern returns a pattern matching name exactly, ignoring case.
// Regex metacharacters in name are quoted, so this never fails.
func ExactPattern(name string) Pattern {
	src := "^" + regexp.QuoteMeta(name) + "$"
	return Pattern{source: src, re: regexp.MustCompile("(?i)" + src)}
}

// String returns the pattern as written, without the case-insensitive flag.
func (p Pattern) String() string {
	return p.source
}

// Matches reports whether name matches the pattern.
func (p Pattern) Matches(name string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(name)
}
