package environ

import (
	"fmt"
	"io"

	"github.com/saferenv/saferenv/internal/logging"
	"github.com/saferenv/saferenv/internal/rules"
	"go.uber.org/zap"
)

// DefaultRedactValue replaces the value of redacted variables in output.
const DefaultRedactValue = "[REDACTED]"

// Decision records how one variable resolved.
type Decision struct {
	Entry
	Action rules.Action
	// Rule is the rule that decided, nil when no rule matched.
	Rule *rules.Rule
}

// Option configures Materialize.
type Option func(*materializeOptions)

type materializeOptions struct {
	redactValue string
	log         *zap.Logger
}

// WithRedactValue sets the marker shown in place of redacted values.
func WithRedactValue(v string) Option {
	return func(o *materializeOptions) { o.redactValue = v }
}

// WithLogger sets the logger that receives per-variable decisions.
func WithLogger(log *zap.Logger) Option {
	return func(o *materializeOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// Result is a snapshot resolved against a rule set. The snapshot itself is
// not modified.
type Result struct {
	decisions   []Decision
	redactValue string
}

// Materialize resolves every variable in snap.
func Materialize(rs *rules.RuleSet, snap *Snapshot, opts ...Option) *Result {
	o := materializeOptions{redactValue: DefaultRedactValue, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	entries := snap.Entries()
	res := &Result{
		decisions:   make([]Decision, 0, len(entries)),
		redactValue: o.redactValue,
	}
	for _, e := range entries {
		d := Decision{Entry: e, Action: rules.Keep}
		if r, ok := rs.Match(e.Name); ok {
			d.Action = r.Action
			d.Rule = &r
			o.log.Info("variable matched rule",
				zap.String("name", e.Name),
				zap.Int("rule", r.ID),
				zap.String("origin", string(r.Origin)),
				zap.Stringer("action", r.Action))
		} else if ce := o.log.Check(logging.TraceLevel, "no rule matched"); ce != nil {
			ce.Write(zap.String("name", e.Name))
		}
		res.decisions = append(res.decisions, d)
	}
	return res
}

// Decisions returns every resolved variable in snapshot order.
func (r *Result) Decisions() []Decision {
	out := make([]Decision, len(r.decisions))
	copy(out, r.decisions)
	return out
}

// Display returns the variables as they should be shown: Keep values
// unchanged, Redact values replaced by the marker, Unset variables omitted.
func (r *Result) Display() []Entry {
	out := make([]Entry, 0, len(r.decisions))
	for _, d := range r.decisions {
		switch d.Action {
		case rules.Keep:
			out = append(out, d.Entry)
		case rules.Redact:
			out = append(out, Entry{Name: d.Name, Value: r.redactValue})
		}
	}
	return out
}

// ChildEnv returns the environment for a launched command. Only Keep
// variables are passed, with their original values; neither redacted values
// nor the marker ever reach the child.
func (r *Result) ChildEnv() []string {
	out := make([]string, 0, len(r.decisions))
	for _, d := range r.decisions {
		if d.Action == rules.Keep {
			out = append(out, d.Entry.String())
		}
	}
	return out
}

// WriteTo prints the Display entries as NAME=value lines.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range r.Display() {
		n, err := fmt.Fprintln(w, e.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Isolate returns a snapshot holding only those variables of parent that a
// Keep rule matches explicitly. Variables that fall through to the implicit
// Keep are dropped.
func Isolate(rs *rules.RuleSet, parent *Snapshot) *Snapshot {
	out := Empty()
	for _, e := range parent.entries {
		if r, ok := rs.Match(e.Name); ok && r.Action == rules.Keep {
			out.Set(e.Name, e.Value)
		}
	}
	return out
}
