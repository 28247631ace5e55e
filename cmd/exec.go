package cmd

import (
	"os/exec"

	"github.com/saferenv/saferenv/internal/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCommand spawns argv with env as its complete environment, forwards
// interrupting signals to it, waits, and records its exit code in opts.
// A failed start is returned as a *runner.SpawnError with exit code 126/127.
func runCommand(cmd *cobra.Command, opts *rootOptions, argv []string, env []string, log *zap.Logger) error {
	log.Info("executing command", zap.String("command", argv[0]), zap.Int("args", len(argv)-1), zap.Int("env", len(env)))

	childCmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // user-specified command
	childCmd.Env = env
	childCmd.Stdin = cmd.InOrStdin()
	childCmd.Stdout = cmd.OutOrStdout()
	childCmd.Stderr = cmd.ErrOrStderr()

	// Platform-specific: see exec_unix.go / exec_windows.go
	cleanupSignals := setupSignalForwarding(childCmd)

	if err := childCmd.Start(); err != nil {
		cleanupSignals()
		spawnErr := &runner.SpawnError{Argv: argv, Err: err}
		opts.exitCode = spawnErr.ExitCode()
		return spawnErr
	}

	waitErr := childCmd.Wait()
	cleanupSignals()

	opts.exitCode = runner.ExitCodeFromError(waitErr)
	log.Debug("command exited", zap.Int("code", opts.exitCode))
	return nil
}
