package script

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a malformed script with its source position.
// A SyntaxError is fatal to loading the script it occurred in; state
// built from previously loaded scripts is unaffected.
type SyntaxError struct {
	// Source names the script, usually a file path.
	Source string

	// Line and Col locate the error, 1-based.
	Line int
	Col  int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Col, e.Msg)
}

// Unwrap lets errors.Is(err, ErrSyntax) succeed.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// syntaxErrorf builds a SyntaxError at the given position.
func syntaxErrorf(source string, pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Source: source,
		Line:   pos.Line,
		Col:    pos.Col,
		Msg:    fmt.Sprintf(format, args...),
	}
}
