package testutil

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/specialistvlad/burstrun/internal/executor"
)

// Invocation is one call recorded by StubRunner.
type Invocation struct {
	Command executor.Command
	// Script is the content of the file passed as the last argument, read
	// while the call was in flight.
	Script string
}

// StubRunner records commands instead of spawning processes.
type StubRunner struct {
	// ExitCodes holds the exit code of the n-th call; missing entries are 0.
	ExitCodes []int
	// OnRun, if set, runs before the call returns, e.g. to cancel a context.
	OnRun func(ctx context.Context, cmd executor.Command)

	mu    sync.Mutex
	calls []Invocation
}

// Run implements executor.ProcessRunner.
func (s *StubRunner) Run(ctx context.Context, cmd executor.Command) (int, error) {
	inv := Invocation{Command: cmd}
	if n := len(cmd.Args); n > 0 {
		if b, err := os.ReadFile(cmd.Args[n-1]); err == nil {
			inv.Script = string(b)
		}
	}

	s.mu.Lock()
	idx := len(s.calls)
	s.calls = append(s.calls, inv)
	s.mu.Unlock()

	if s.OnRun != nil {
		s.OnRun(ctx, cmd)
	}
	if idx < len(s.ExitCodes) {
		return s.ExitCodes[idx], nil
	}
	return 0, nil
}

// Calls returns a copy of the recorded invocations.
func (s *StubRunner) Calls() []Invocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Invocation, len(s.calls))
	copy(out, s.calls)
	return out
}

// Commands returns the commands of a line-mode script, one per brace
// group, without the echo lines and the group wrappers.
func (i Invocation) Commands() []string {
	var (
		out     []string
		current []string
		inGroup bool
	)
	for _, line := range strings.Split(i.Script, "\n") {
		switch {
		case !inGroup && strings.HasPrefix(line, "{ "):
			inGroup = true
			current = []string{strings.TrimPrefix(line, "{ ")}
		case inGroup && line == "} || exit $?":
			inGroup = false
			out = append(out, strings.Join(current, "\n"))
		case inGroup:
			current = append(current, line)
		}
	}
	return out
}

// Commands returns the commands of every recorded call, flattened in call
// order.
func (s *StubRunner) Commands() []string {
	var out []string
	for _, inv := range s.Calls() {
		out = append(out, inv.Commands()...)
	}
	return out
}
