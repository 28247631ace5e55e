package runner

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrSpawn is matched by every SpawnError via errors.Is.
var ErrSpawn = errors.New("failed to start command")

// SpawnError reports a command that could not be launched.
type SpawnError struct {
	Argv []string
	Err  error
}

func (e *SpawnError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf("failed to start %q: %v", name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSpawn.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawn
}

// ExitCode returns 126 or 127 depending on why the start failed.
func (e *SpawnError) ExitCode() int {
	return ExitCodeForStartError(e.Err)
}

// colorMode controls ANSI color output in error messages.
type colorMode int

const (
	colorOn colorMode = iota
	colorOff
)

// resolveColor determines whether to emit ANSI color codes.
// Priority: SAFERENV_COLOR env > NO_COLOR env > auto-detect stderr TTY.
func resolveColor() colorMode {
	if v := os.Getenv("SAFERENV_COLOR"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return colorOn
		case "0", "false", "no", "off":
			return colorOff
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return colorOff
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return colorOn
	}
	return colorOff
}

func red(s string, c colorMode) string {
	if c == colorOn {
		return "\033[31m" + s + "\033[0m"
	}
	return s
}

func bold(s string, c colorMode) string {
	if c == colorOn {
		return "\033[1m" + s + "\033[0m"
	}
	return s
}

// FormatError renders err as a one-line "saferenv: ..." message for stderr.
func FormatError(err error) string {
	color := resolveColor()
	return bold("saferenv: ", color) + red(err.Error(), color) + "\n"
}
