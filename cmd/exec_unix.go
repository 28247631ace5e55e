//go:build !windows

package cmd

import (
	"os"
	"os/exec"
	"os/signal"

	"golang.org/x/sys/unix"
)

// forwardedSignals are relayed to the child instead of terminating saferenv.
var forwardedSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}

// setupSignalForwarding relays forwardedSignals to the child while it runs.
// The child stays in saferenv's process group so it keeps the terminal; a
// Ctrl+C from the terminal therefore reaches it directly as well.
//
// Returns a cleanup function that stops the relay.
func setupSignalForwarding(childCmd *exec.Cmd) (cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, forwardedSignals...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range sigCh {
			if childCmd.Process == nil {
				continue
			}
			sysSig, ok := sig.(unix.Signal)
			if !ok {
				continue
			}
			_ = unix.Kill(childCmd.Process.Pid, sysSig) // ESRCH if already gone
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done
	}
}
