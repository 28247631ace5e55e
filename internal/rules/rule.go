package rules

import (
	"fmt"
	"strings"
)

// Action is what happens to a variable whose name matches a rule.
type Action int

const (
	// Keep shows the value and passes it to a child unchanged.
	Keep Action = iota
	// Redact hides the value behind a marker and withholds it from a child.
	Redact
	// Unset drops the variable entirely.
	Unset
)

// String returns the display name used by --show-rules.
func (a Action) String() string {
	switch a {
	case Keep:
		return "Keep"
	case Redact:
		return "Redact"
	case Unset:
		return "Unset"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction parses "keep", "redact" or "unset", ignoring case and
// surrounding whitespace.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep":
		return Keep, nil
	case "redact":
		return Redact, nil
	case "unset":
		return Unset, nil
	}
	return Keep, fmt.Errorf("unknown action %q: valid values are keep, redact, unset", s)
}

// Origin labels where a rule came from.
type Origin string

const (
	OriginKeep    Origin = "cli_explicit_keep"
	OriginUnset   Origin = "cli_explicit_unset"
	OriginConfig  Origin = "config"
	OriginDefault Origin = "default"
)

// Rule pairs a pattern with the action taken on a match. ID is the rule's
// 1-based position in its RuleSet; lower IDs take precedence.
type Rule struct {
	ID      int
	Origin  Origin
	Pattern Pattern
	Action  Action
}

// PatternAction is an uncompiled (pattern, action) pair, as read from a
// config file.
type PatternAction struct {
	Pattern string
	Action  Action
}
