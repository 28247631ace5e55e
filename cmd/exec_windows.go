//go:build windows

package cmd

import (
	"os"
	"os/exec"
	"os/signal"
)

// setupSignalForwarding stops Ctrl+C from killing saferenv while the child
// runs. The console delivers Ctrl+C to the child as well; saferenv then
// kills the child so the interrupt cannot be ignored.
func setupSignalForwarding(childCmd *exec.Cmd) (cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range sigCh {
			if childCmd.Process != nil {
				_ = childCmd.Process.Kill()
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done
	}
}
