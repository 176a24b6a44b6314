package ast

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Print displays a human-readable representation of an expression tree
func Print(e Expr) {
	Fprint(os.Stdout, e)
}

// Fprint writes a human-readable, indented representation of an expression
// tree to w.
func Fprint(w io.Writer, e Expr) {
	printLevel(w, e, 0)
}

func printLevel(w io.Writer, e Expr, level int) {
	indent := strings.Repeat("    ", level)
	if e == nil {
		fmt.Fprintf(w, "%s:nil\n", indent)
		return
	}
	fmt.Fprintf(w, "%s(%s): ", indent, e.Kind())
	switch v := e.(type) {
	case *OperatorExpr:
		fmt.Fprintf(w, "%v [%d]\n", v.Op(), v.Len())
		for i := 0; i < v.Len(); i++ {
			printLevel(w, v.Child(i), level+1)
		}

	case BoolLit, Name:
		fmt.Fprintf(w, "%v\n", v)

	default:
		panic("unknown expression type")
	}
}

// Encode transforms an expression into its canonical text representation
func Encode(e Expr) []byte {
	var b strings.Builder
	encodeExpr(&b, e)
	return []byte(b.String())
}

// EncodeAll encodes a sequence of top-level expressions, one per line
func EncodeAll(exprs []Expr) []byte {
	var b strings.Builder
	for i := range exprs {
		encodeExpr(&b, exprs[i])
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func encodeExpr(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case nil:
		b.WriteString(":nil")

	case *OperatorExpr:
		b.WriteByte('(')
		b.WriteString(v.Op().String())
		for i := 0; i < v.Len(); i++ {
			b.WriteByte(' ')
			encodeExpr(b, v.Child(i))
		}
		b.WriteByte(')')

	case BoolLit:
		b.WriteString(v.String())

	case Name:
		b.WriteString(string(v))

	default:
		panic("unknown expression type")
	}
}
