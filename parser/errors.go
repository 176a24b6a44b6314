package parser

import (
	"errors"
	"fmt"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/lexer"
)

var (
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrExpectedOperator   = errors.New("expected an operator name")
	ErrUnexpectedOperator = errors.New("unexpected operator/directive")
	ErrTooManyClosing     = errors.New("too many closing parentheses")
	ErrNoOperator         = errors.New("no operator to close")
	ErrUnclosed           = errors.New("unclosed parentheses")
	ErrIO                 = errors.New("I/O error")

	// ErrArity is reported when an operator is closed with a number of
	// operands that its arity does not allow.
	ErrArity = ast.ErrArity

	// ErrEncoding is reported when the input holds bytes that cannot be
	// decoded as source text.
	ErrEncoding = lexer.ErrEncoding
)

// SyntaxError is returned when the input does not match the syntax of the
// language. It always aborts the parse; no partial result is returned.
type SyntaxError struct {
	Source string
	Line   int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
}

// Unwrap returns the error that classifies e. For I/O failures it also
// matches the reader's error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
