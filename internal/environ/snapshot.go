// Package environ captures an environment snapshot and materializes it
// through a rule set into printable lines or a child process environment.
package environ

import (
	"strings"
)

// Entry is one NAME=VALUE pair.
type Entry struct {
	Name  string
	Value string
}

// String renders the entry as NAME=VALUE.
func (e Entry) String() string {
	return e.Name + "=" + e.Value
}

// Snapshot is an ordered set of variables. Setting an existing name replaces
// its value in place, so the original ordering is preserved.
type Snapshot struct {
	entries []Entry
	index   map[string]int
}

// Empty returns a snapshot with no variables.
func Empty() *Snapshot {
	return &Snapshot{index: make(map[string]int)}
}

// FromEnviron builds a snapshot from KEY=VALUE strings such as os.Environ().
// Entries without '=' are skipped. A later duplicate overrides an earlier one.
func FromEnviron(environ []string) *Snapshot {
	s := &Snapshot{
		entries: make([]Entry, 0, len(environ)),
		index:   make(map[string]int, len(environ)),
	}
	for _, kv := range environ {
		name, value, ok := splitEnvVar(kv)
		if !ok {
			continue
		}
		s.Set(name, value)
	}
	return s
}

// Set adds or replaces a variable.
func (s *Snapshot) Set(name, value string) {
	if i, ok := s.index[name]; ok {
		s.entries[i].Value = value
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Value: value})
}

// Lookup returns the value for name.
func (s *Snapshot) Lookup(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.entries[i].Value, true
}

// Len returns the number of variables.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the variables in order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// IsAssignment reports whether arg has the NAME=VALUE form accepted before
// the command on the command line.
func IsAssignment(arg string) bool {
	name, _, ok := splitEnvVar(arg)
	return ok && name != ""
}

// ApplyAssignments sets each NAME=VALUE argument on s.
func (s *Snapshot) ApplyAssignments(args []string) {
	for _, a := range args {
		if name, value, ok := splitEnvVar(a); ok {
			s.Set(name, value)
		}
	}
}

// splitEnvVar splits "KEY=VALUE". The search for '=' starts after the first
// byte so Windows drive entries like "=C:=C:\" keep their leading '='.
func splitEnvVar(kv string) (key, value string, ok bool) {
	if kv == "" {
		return "", "", false
	}
	idx := strings.IndexByte(kv[1:], '=')
	if idx < 0 {
		return "", "", false
	}
	idx++
	return kv[:idx], kv[idx+1:], true
}
