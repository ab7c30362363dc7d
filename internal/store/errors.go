package store

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName = errors.New("duplicate recipe name")
	ErrUnknownRecipe = errors.New("unknown recipe")
	ErrNoDefault     = errors.New("no default recipe")
	ErrInvalidRecipe = errors.New("invalid recipe")
)

// LookupError is returned by Lookup for a name that is not defined.
type LookupError struct {
	Name       string
	Suggestion string
}

func (e *LookupError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q (did you mean %q?)", ErrUnknownRecipe, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("%s %q", ErrUnknownRecipe, e.Name)
}

func (e *LookupError) Unwrap() error { return ErrUnknownRecipe }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecipe, fmt.Sprintf(format, args...))
}
