package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax wraps every *SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrDisallowed wraps every *DisallowedError.
	ErrDisallowed = errors.New("disallowed expression")
	// ErrDivisionByZero is returned for x / 0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotFinite is returned when a result overflows or is not a number.
	ErrNotFinite = errors.New("result is not a finite number")
)

// SyntaxError reports input that is not valid arithmetic.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// DisallowedError reports a syntax node outside the evaluator's whitelist.
type DisallowedError struct {
	Node Node
}

func (e *DisallowedError) Error() string {
	return fmt.Sprintf("%s %q at offset %d is not allowed", kindName(e.Node), e.Node.String(), e.Node.Pos())
}

func (e *DisallowedError) Unwrap() error { return ErrDisallowed }
