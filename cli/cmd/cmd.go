package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/xiam/minitla"
	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/log"
	"github.com/xiam/minitla/parser"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Stdio holds the streams commands read from and write to.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Std returns the process standard streams.
func Std() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// IsTerminal reports whether In is an interactive terminal.
func (s *Stdio) IsTerminal() bool {
	f, ok := s.In.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *Stdio) open(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(s.In), nil
	}
	return os.Open(path)
}

func sourceName(path string) string {
	if path == stdinSource {
		return "<stdin>"
	}
	return path
}

// parseSource reads every expression from path, or from stdin when path is
// "-".
func parseSource(
	ctx context.Context,
	stdio *Stdio,
	command string,
	path string,
) ([]ast.Expr, error) {
	file, err := stdio.open(path)
	if err != nil {
		return nil, ErrIO.Wrap(err).
			With(slog.String("command", command), slog.String("path", path))
	}
	defer file.Close()

	logger := log.Default()

	exprs, err := minitla.NewReader(
		sourceName(path),
		bufio.NewReader(file),
		parser.WithLogger(logger),
	).Parse()
	if err != nil {
		return nil, WrapError(err).
			With(slog.String("command", command), slog.String("path", path))
	}

	logger.DebugContext(ctx, "source parsed",
		slog.String("path", path),
		slog.Int("expressions", len(exprs)),
	)

	return exprs, nil
}
