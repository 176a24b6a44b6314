package cmd

import (
	"context"

	"github.com/xiam/minitla/cli/cmd/repl"
	"github.com/xiam/minitla/log"
)

// Repl starts an interactive session. When stdin is not a terminal the whole
// input is evaluated as a single source instead.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, stdio *Stdio) error {
	if !stdio.IsTerminal() {
		log.DebugContext(ctx, "stdin is not a terminal, evaluating it as a source")

		return (&Eval{Source: stdinSource}).Run(ctx, stdio)
	}

	return repl.Run(ctx, stdio.In, stdio.Out, log.Default())
}
