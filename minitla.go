// Package minitla reads and evaluates minitla sources: a small boolean logic
// language written as S-expressions.
//
//	(:const x Bool)
//	(:set-const x true)
//	(or false x)
package minitla

import (
	"bytes"
	"io"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/eval"
	"github.com/xiam/minitla/parser"
)

// Reader reads expressions from a named source.
type Reader struct {
	name string
	r    io.Reader
	opts []parser.Option
}

// Parse reads every top-level expression from r.
func Parse(name string, r io.Reader) ([]ast.Expr, error) {
	return NewReader(name, r).Parse()
}

// ParseString reads every top-level expression from text.
func ParseString(name string, text string) ([]ast.Expr, error) {
	return Parse(name, bytes.NewBufferString(text))
}

// NewReader creates a Reader for r. The name is only used to report errors.
func NewReader(name string, r io.Reader, opts ...parser.Option) *Reader {
	return &Reader{name: name, r: r, opts: opts}
}

func (r *Reader) Parse() ([]ast.Expr, error) {
	return parser.Parse(r.name, r.r, r.opts...)
}

// Run parses r and evaluates its expressions in order on a fresh evaluator.
// It returns one value per expression.
func Run(name string, r io.Reader, opts ...eval.Option) ([]ast.BoolLit, error) {
	exprs, err := Parse(name, r)
	if err != nil {
		return nil, err
	}
	return eval.New(opts...).EvalAll(exprs)
}
