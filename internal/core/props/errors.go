package props

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax      = errors.New("syntax error")
	ErrUnbalanced  = errors.New("unbalanced braces")
	ErrDuplicate   = errors.New("duplicate property")
	ErrInvalidName = errors.New("invalid property name")
	ErrDecode      = errors.New("cannot decode property")
)

// ParseError reports where in the text a table failed to parse.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("props: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
