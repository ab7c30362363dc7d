package plan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingArgument   = errors.New("missing argument")
	ErrTooManyArguments  = errors.New("too many arguments")
	ErrDependencyCycle   = errors.New("dependency cycle")
	ErrInvalidAssignment = errors.New("invalid assignment")
)

// ArgumentError describes a recipe invoked with an unacceptable number of
// values. Kind is ErrMissingArgument or ErrTooManyArguments.
type ArgumentError struct {
	Kind      error
	Recipe    string
	Parameter string
	Got       int
	Max       int
}

func (e *ArgumentError) Error() string {
	if e.Kind == ErrTooManyArguments {
		return fmt.Sprintf("%s: recipe %q takes at most %d, got %d", e.Kind, e.Recipe, e.Max, e.Got)
	}
	return fmt.Sprintf("%s: recipe %q requires a value for parameter %q", e.Kind, e.Recipe, e.Parameter)
}

func (e *ArgumentError) Unwrap() error { return e.Kind }

// CycleError names the invocations that form a cycle, first and last equal.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDependencyCycle, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrDependencyCycle }
