package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is matched by every InvalidPatternError via errors.Is.
var ErrInvalidPattern = errors.New("invalid pattern")

// InvalidPatternError reports a pattern that does not compile.
type InvalidPatternError struct {
	Pattern string
	Origin  Origin
	// Index is the 1-based position of the pattern within its source, 0 if unknown.
	Index int
	Err   error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	where := ""
	if e.Origin != "" && e.Index > 0 {
		where = fmt.Sprintf(" (%s rule %d)", e.Origin, e.Index)
	} else if e.Origin != "" {
		where = fmt.Sprintf(" (%s)", e.Origin)
	}
	return fmt.Sprintf("invalid pattern %q%s: %v", e.Pattern, where, e.Err)
}

// Unwrap returns the underlying regexp error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidPattern.
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}
