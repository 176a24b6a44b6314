package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/xiam/minitla/cli/cmd"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 100
	ExitSyntax  = 101
	ExitIO      = 102
	ExitEval    = 103
)

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	var parseErr *kong.ParseError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &parseErr):
		return ExitUsage
	case errors.Is(err, cmd.ErrIO):
		return ExitIO
	case errors.Is(err, cmd.ErrSyntax):
		return ExitSyntax
	case errors.Is(err, cmd.ErrEval):
		return ExitEval
	}

	return ExitFailure
}

// Report writes a one line description of err to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	var parseErr *kong.ParseError
	if errors.As(err, &parseErr) {
		fmt.Fprintf(w, "Usage error: %v\n", err)
		return
	}

	fmt.Fprintln(w, err)
}
