package recipefile

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a malformed recipe file, with its location.
type SyntaxError struct {
	File string
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.File != "" {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", loc, ErrSyntax, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", loc, ErrSyntax, e.Msg)
}

// Unwrap exposes both ErrSyntax and the underlying cause, if any.
func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSyntax, e.Err}
	}
	return []error{ErrSyntax}
}

var errUnclosedDependency = errors.New("missing ')' after dependency arguments")
