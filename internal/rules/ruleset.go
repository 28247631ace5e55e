package rules

import (
	"fmt"
	"io"
)

// RuleSet is an immutable, ordered list of rules. Position is precedence.
type RuleSet struct {
	rules []Rule
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns a copy of the rules in precedence order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Match returns the first rule whose pattern matches name.
func (rs *RuleSet) Match(name string) (Rule, bool) {
	if rs == nil {
		return Rule{}, false
	}
	for _, r := range rs.rules {
		if r.Pattern.Matches(name) {
			return r, true
		}
	}
	return Rule{}, false
}

// Resolve returns the action of the first matching rule, or Keep when no
// rule matches. It is defined for every string, including "".
func (rs *RuleSet) Resolve(name string) Action {
	if r, ok := rs.Match(name); ok {
		return r.Action
	}
	return Keep
}

// WriteTo prints every rule in build order:
//
//	Rule <n>: <origin>
//	    pattern: "<pattern>"
//	    action: <Action>
func (rs *RuleSet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range rs.Rules() {
		n, err := fmt.Fprintf(w, "Rule %d: %s\n    pattern: \"%s\"\n    action: %s\n",
			r.ID, r.Origin, r.Pattern, r.Action)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
