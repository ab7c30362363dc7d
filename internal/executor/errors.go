package executor

import (
	"errors"
	"fmt"
)

// ErrInterrupted reports that the run was cancelled, usually by a signal.
var ErrInterrupted = errors.New("interrupted")

// RecipeFailedError reports a recipe whose process exited with a nonzero
// status. ExitCode is -1 when the process did not report one.
type RecipeFailedError struct {
	Recipe   string
	ExitCode int
}

func (e *RecipeFailedError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("recipe %q failed", e.Recipe)
	}
	return fmt.Sprintf("recipe %q failed with exit code %d", e.Recipe, e.ExitCode)
}
