package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultWaitDelay is how long a cancelled child may take to exit after the
// interrupt before it is killed.
const DefaultWaitDelay = 5 * time.Second

// Command describes one child process.
type Command struct {
	Path   string
	Args   []string
	Env    []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessRunner starts a command and waits for it. It returns the exit code
// of a process that ran, and an error only if the process could not be run.
type ProcessRunner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands with os/exec. Cancelling the context sends an
// interrupt to the child, then kills it after WaitDelay.
type ExecRunner struct {
	WaitDelay time.Duration
}

// Run implements ProcessRunner.
func (r ExecRunner) Run(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Env
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
