package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/xiam/minitla/cli/cmd"
)

const (
	Name        = "minitla"
	Description = "Parse and evaluate minitla boolean logic sources."
)

// CLI is the top-level command-line interface for minitla.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Parse cmd.Parse `cmd:"" help:"Check the syntax of a source file"`
	Eval  cmd.Eval  `cmd:"" help:"Evaluate a source file"`
	Fmt   cmd.Fmt   `cmd:"" help:"Format a source file"`
	Repl  cmd.Repl  `cmd:"" help:"Start an interactive session"`
}

// Run executes the minitla CLI with the given context, streams and
// arguments. The exit function is only called by kong itself, e.g. after
// printing help; callers map the returned error with ExitCode.
func Run(
	ctx context.Context,
	stdio *cmd.Stdio,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vars := kong.Vars{}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description(Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdio.Out, stdio.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Bind(stdio),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx, stdio.Err)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run()
}
