package eval

import (
	"errors"
	"fmt"
)

var (
	ErrNoValue            = errors.New("no value")
	ErrUnexpectedExpr     = errors.New("unexpected expression")
	ErrUnexpectedOperator = errors.New("unexpected operator")
	ErrMalformed          = errors.New("malformed expression")
)

// EvalError is returned when an expression can't be evaluated.
type EvalError struct {
	Msg string
	Err error
}

func (e *EvalError) Error() string {
	return e.Msg
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

func errorf(sentinel error, format string, args ...any) *EvalError {
	return &EvalError{
		Msg: fmt.Sprintf(format, args...),
		Err: sentinel,
	}
}
