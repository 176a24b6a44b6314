package cmd

import (
	"context"
)

// Parse checks the syntax of a source file.
type Parse struct {
	Source string `arg:"" help:"Source input file or '-' for stdin." name:"path"`
}

// Run executes the parse command. The parsed expressions are discarded.
func (p *Parse) Run(ctx context.Context, stdio *Stdio) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	_, err = parseSource(ctx, stdio, "parse", p.Source)

	return err
}
