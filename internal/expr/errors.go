package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundParameter is returned when an expression references a name
	// that is neither a parameter of the recipe nor a top-level assignment.
	ErrUnboundParameter = errors.New("unbound parameter")
	// ErrUnsupportedExpression is returned for syntax outside the
	// literal | reference | built-in call grammar.
	ErrUnsupportedExpression = errors.New("unsupported expression")
	// ErrUnknownFunction is returned for calls to functions that are not built-ins.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrInvalidTemplate is returned for malformed `{{...}}` markers.
	ErrInvalidTemplate = errors.New("invalid template")
)

// UnboundError names the reference that could not be resolved.
type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnboundParameter, e.Name)
}

func (e *UnboundError) Unwrap() error { return ErrUnboundParameter }
