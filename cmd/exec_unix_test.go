//go:build !windows

package cmd

import (
	"bufio"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestSignalForwarding_RelaysTermToChild sends SIGTERM to the test process
// while the relay is active and verifies the child's trap sees it.
func TestSignalForwarding_RelaysTermToChild(t *testing.T) {
	child := exec.Command("sh", "-c",
		`trap 'echo got-term; exit 3' TERM; echo ready; while :; do sleep 0.1; done`)
	out, err := child.StdoutPipe()
	require.NoError(t, err)

	cleanup := setupSignalForwarding(child)
	defer cleanup()

	require.NoError(t, child.Start())
	lines := bufio.NewScanner(out)
	require.True(t, lines.Scan(), "child never became ready")
	require.Equal(t, "ready", lines.Text())

	require.NoError(t, unix.Kill(os.Getpid(), unix.SIGTERM))

	var got []string
	for lines.Scan() {
		got = append(got, lines.Text())
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- child.Wait() }()
	select {
	case err = <-waitErr:
	case <-time.After(5 * time.Second):
		_ = child.Process.Kill()
		t.Fatal("child did not exit after SIGTERM")
	}

	assert.Equal(t, []string{"got-term"}, got)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestSignalForwarding_CleanupWithoutStart(t *testing.T) {
	cleanup := setupSignalForwarding(exec.Command("true"))
	assert.NotPanics(t, cleanup)
}
