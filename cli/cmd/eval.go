package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xiam/minitla/eval"
	"github.com/xiam/minitla/log"
)

// Eval evaluates every expression of a source file in order, printing one
// result per line.
type Eval struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"path"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, stdio *Stdio) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	exprs, err := parseSource(ctx, stdio, "eval", e.Source)
	if err != nil {
		return err
	}

	ev := eval.New(eval.WithLogger(log.Default()))

	for i, expr := range exprs {
		value, err := ev.Eval(expr)
		if err != nil {
			return WrapError(err).
				With(
					slog.String("command", "eval"),
					slog.String("path", e.Source),
					slog.Int("expression", i+1),
				)
		}

		if _, err := fmt.Fprintln(stdio.Out, value); err != nil {
			return ErrIO.Wrap(err)
		}
	}

	return nil
}
