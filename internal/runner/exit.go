// Package runner launches the requested command in a filtered environment
// and translates its outcome into saferenv's exit codes.
package runner

import (
	"errors"
	"io/fs"
	"os/exec"
	"syscall"
)

// Exit codes, following env(1).
const (
	ExitOK          = 0
	ExitFailure     = 125 // saferenv itself failed: usage, config, invalid pattern
	ExitCannotRun   = 126 // command found but not executable
	ExitNotFound    = 127 // command not found
	exitSignalBase  = 128
	exitUnknownWait = 1
)

// ExitCodeFromError extracts the exit code from an exec.Cmd.Wait() error.
//
// Returns:
//   - 0 if err is nil (child exited successfully)
//   - The child's exit code if it exited normally with non-zero status
//   - 128+signum if the child was killed by a signal (POSIX convention)
//   - 1 for any other error
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return exitUnknownWait
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if ws.Signaled() {
			return exitSignalBase + int(ws.Signal())
		}
		return ws.ExitStatus()
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return exitUnknownWait
}

// ExitCodeForStartError returns the conventional exit code for a process
// start failure: 127 for "not found", 126 for "not executable", 125 otherwise.
func ExitCodeForStartError(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return ExitNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, exec.ErrDot):
		return ExitCannotRun
	}
	return ExitFailure
}
