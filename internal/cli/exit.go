package cli

import (
	"errors"

	"github.com/specialistvlad/burstrun/internal/app"
	"github.com/specialistvlad/burstrun/internal/executor"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitCode maps an error returned by Parse or the app to a process exit
// code. A failed recipe passes its child's exit code through.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, executor.ErrInterrupted) {
		return ExitInterrupted
	}
	var failed *executor.RecipeFailedError
	if errors.As(err, &failed) {
		if failed.ExitCode > 0 {
			return failed.ExitCode
		}
		return ExitFailure
	}
	if errors.Is(err, app.ErrInvalidConfig) {
		return ExitUsage
	}
	return ExitFailure
}
