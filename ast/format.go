package ast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToNative converts an expression to plain Go values: literals become bool,
// names become string and operator nodes become a map holding the operator
// name under "op" and the converted children under "args".
func ToNative(e Expr) any {
	switch v := e.(type) {
	case BoolLit:
		return bool(v)
	case Name:
		return string(v)
	case *OperatorExpr:
		args := make([]any, v.Len())
		for i := range args {
			args[i] = ToNative(v.Child(i))
		}
		return map[string]any{
			"op":   v.Op().String(),
			"args": args,
		}
	}
	return nil
}

func toNativeAll(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i := range exprs {
		out[i] = ToNative(exprs[i])
	}
	return out
}

// FormatJSON writes the expressions as a JSON array to the writer.
func FormatJSON(_ context.Context, w io.Writer, exprs []Expr, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(toNativeAll(exprs), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(toNativeAll(exprs))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the expressions as a YAML sequence to the writer.
func FormatYAML(ctx context.Context, w io.Writer, exprs []Expr, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, toNativeAll(exprs), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
