package cmd

import (
	"context"
	"log/slog"

	"github.com/xiam/minitla/ast"
)

// Fmt parses a source file and prints it in the chosen format.
type Fmt struct {
	Format string `default:"sexpr" enum:"sexpr,tree,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                                 help:"Indent width for JSON and YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"path"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context, stdio *Stdio) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	exprs, err := parseSource(ctx, stdio, "fmt", f.Source)
	if err != nil {
		return err
	}

	switch f.Format {
	case "json":
		if err := ast.FormatJSON(ctx, stdio.Out, exprs, f.Indent); err != nil {
			return ErrJSONMarshal.Wrap(err).
				With(slog.String("format", f.Format))
		}

	case "yaml":
		if err := ast.FormatYAML(ctx, stdio.Out, exprs, f.Indent); err != nil {
			return ErrYAMLMarshal.Wrap(err).
				With(slog.String("format", f.Format))
		}

	case "tree":
		for _, e := range exprs {
			ast.Fprint(stdio.Out, e)
		}

	default:
		if _, err := stdio.Out.Write(ast.EncodeAll(exprs)); err != nil {
			return ErrIO.Wrap(err)
		}
	}

	return nil
}
