package eval

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/log"
	"github.com/xiam/minitla/parser"
)

func mustParse(t *testing.T, in string) []ast.Expr {
	t.Helper()

	exprs, err := parser.ParseString("string", in)
	require.NoError(t, err)
	return exprs
}

func TestEvalOperators(t *testing.T) {
	testCases := []struct {
		In  ast.Expr
		Out ast.BoolLit
	}{
		{ast.True, true},
		{ast.False, false},
		{ast.Apply(ast.OpNot, ast.False), true},
		{ast.Apply(ast.OpNot, ast.True), false},
		{ast.Apply(ast.OpAnd), true},
		{ast.Apply(ast.OpAnd, ast.True, ast.False, ast.True), false},
		{ast.Apply(ast.OpAnd, ast.True, ast.True), true},
		{ast.Apply(ast.OpOr), false},
		{ast.Apply(ast.OpOr, ast.True, ast.False, ast.True), true},
		{ast.Apply(ast.OpOr, ast.False, ast.False), false},
		{ast.Apply(ast.OpImplies, ast.False, ast.True), true},
		{ast.Apply(ast.OpImplies, ast.False, ast.False), true},
		{ast.Apply(ast.OpImplies, ast.True, ast.False), false},
		{ast.Apply(ast.OpImplies, ast.True, ast.True), true},
		{ast.Apply(ast.OpIff, ast.False, ast.True), false},
		{ast.Apply(ast.OpIff, ast.False, ast.False), true},
		{ast.Apply(ast.OpIff, ast.True, ast.True), true},
		{ast.Apply(ast.OpConst, ast.Name("x"), ast.Name("Bool")), true},
		{
			ast.Apply(ast.OpOr,
				ast.Apply(ast.OpAnd, ast.True, ast.Apply(ast.OpNot, ast.True)),
				ast.Apply(ast.OpIff, ast.False, ast.Apply(ast.OpOr)),
			),
			true,
		},
	}

	for i := range testCases {
		ev := New()
		out, err := ev.Eval(testCases[i].In)
		require.NoError(t, err, testCases[i].In.String())
		assert.Equal(t, testCases[i].Out, out, testCases[i].In.String())
		assert.Zero(t, ev.Env().Len())
	}
}

func TestEvalSequence(t *testing.T) {
	ev := New()

	out, err := ev.Eval(ast.Apply(ast.OpConst, ast.Name("x"), ast.Name("Bool")))
	require.NoError(t, err)
	assert.Equal(t, ast.True, out)
	assert.Zero(t, ev.Env().Len(), ":const does not bind")

	out, err = ev.Eval(ast.Apply(ast.OpSetConst, ast.Name("x"), ast.True))
	require.NoError(t, err)
	assert.Equal(t, ast.True, out)

	out, err = ev.Eval(ast.Apply(ast.OpOr, ast.False, ast.Name("x")))
	require.NoError(t, err)
	assert.Equal(t, ast.True, out)

	// overwrite
	out, err = ev.Eval(ast.Apply(ast.OpSetConst, ast.Name("x"), ast.Apply(ast.OpNot, ast.Name("x"))))
	require.NoError(t, err)
	assert.Equal(t, ast.True, out)

	value, ok := ev.Env().Get("x")
	assert.True(t, ok)
	assert.Equal(t, ast.False, value)
	assert.Equal(t, []string{"x"}, ev.Env().Names())
}

func TestEvalAll(t *testing.T) {
	exprs := mustParse(t, `
		(:const a Bool)
		(:const b Bool)
		(:set-const b true)
		(:set-const a (not b))
		(implies a b)
		(iff a b)
		a
	`)

	ev := New()
	values, err := ev.EvalAll(exprs)
	require.NoError(t, err)
	assert.Equal(t, []ast.BoolLit{true, true, true, true, true, false, false}, values)
	assert.Equal(t, []string{"a", "b"}, ev.Env().Names())

	values, err = ev.EvalAll(mustParse(t, `true (and a missing) false`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValue)
	assert.Equal(t, []ast.BoolLit{true}, values)
}

func TestEvalUnboundName(t *testing.T) {
	ev := New()

	_, err := ev.Eval(ast.Name("x"))
	require.Error(t, err)

	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "no value for x", evalErr.Error())
	assert.ErrorIs(t, err, ErrNoValue)

	// A declaration is not a binding.
	_, err = ev.Eval(ast.Apply(ast.OpConst, ast.Name("x"), ast.Name("Bool")))
	require.NoError(t, err)

	_, err = ev.Eval(ast.Name("x"))
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestEvalEnvironmentIsPerEvaluator(t *testing.T) {
	a, b := New(), New()

	_, err := a.Eval(ast.Apply(ast.OpSetConst, ast.Name("x"), ast.True))
	require.NoError(t, err)

	out, err := a.Eval(ast.Name("x"))
	require.NoError(t, err)
	assert.Equal(t, ast.True, out)

	_, err = b.Eval(ast.Name("x"))
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestEvalNoShortCircuit(t *testing.T) {
	testCases := []string{
		`(and false missing)`,
		`(or true missing)`,
		`(implies false missing)`,
	}

	for _, in := range testCases {
		_, err := New().Eval(mustParse(t, in)[0])
		assert.ErrorIs(t, err, ErrNoValue, in)
	}
}

func TestEvalNoRollback(t *testing.T) {
	ev := New()

	// The first binding is committed before the second operand fails.
	_, err := ev.Eval(mustParse(t, `(and (:set-const x true) (:set-const y missing))`)[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValue)

	value, ok := ev.Env().Get("x")
	assert.True(t, ok)
	assert.Equal(t, ast.True, value)

	_, ok = ev.Env().Get("y")
	assert.False(t, ok)
}

func TestEvalMalformed(t *testing.T) {
	testCases := []struct {
		In  ast.Expr
		Err error
	}{
		{ast.Apply(ast.OpNot, ast.False, ast.True), ErrMalformed},
		{ast.Apply(ast.OpNot), ErrMalformed},
		{ast.Apply(ast.OpImplies, ast.True), ErrMalformed},
		{ast.Apply(ast.OpSetConst, ast.True, ast.True), ErrMalformed},
		{ast.Apply(ast.OpSetConst, ast.Apply(ast.OpAnd), ast.True), ErrMalformed},
		{ast.Apply(ast.OpInvalid), ErrUnexpectedOperator},
		{ast.Apply(ast.Operator(200), ast.True), ErrUnexpectedOperator},
		{nil, ErrUnexpectedExpr},
		{(*ast.OperatorExpr)(nil), ErrUnexpectedExpr},
		{ast.Apply(ast.OpAnd, ast.True, nil), ErrUnexpectedExpr},
	}

	for i := range testCases {
		_, err := New().Eval(testCases[i].In)
		require.Error(t, err, "case %d", i)
		assert.ErrorIs(t, err, testCases[i].Err, "case %d", i)

		var evalErr *EvalError
		assert.True(t, errors.As(err, &evalErr), "case %d", i)
	}
}

func TestEvalLiteralIdentity(t *testing.T) {
	for _, lit := range []ast.BoolLit{ast.True, ast.False} {
		out, err := New().Eval(lit)
		require.NoError(t, err)
		assert.Equal(t, lit, out)
	}
}

func TestEvalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatText))

	ev := New(WithLogger(logger))
	_, err := ev.Eval(mustParse(t, `(:set-const flag (not false))`)[0])
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=bind")
	assert.Contains(t, out, "name=flag")
	assert.Contains(t, out, "value=true")
}

// toExprLang translates a tree into an equivalent expr-lang program.
func toExprLang(e ast.Expr) string {
	switch v := e.(type) {
	case ast.BoolLit:
		return v.String()
	case ast.Name:
		return string(v)
	case *ast.OperatorExpr:
		args := make([]string, v.Len())
		for i := range args {
			args[i] = toExprLang(v.Child(i))
		}
		switch v.Op() {
		case ast.OpNot:
			return fmt.Sprintf("!%s", args[0])
		case ast.OpAnd:
			if len(args) == 0 {
				return "true"
			}
			return "(" + strings.Join(args, " && ") + ")"
		case ast.OpOr:
			if len(args) == 0 {
				return "false"
			}
			return "(" + strings.Join(args, " || ") + ")"
		case ast.OpImplies:
			return fmt.Sprintf("(!%s || %s)", args[0], args[1])
		case ast.OpIff:
			return fmt.Sprintf("(%s == %s)", args[0], args[1])
		}
	}
	panic(fmt.Sprintf("cannot translate %v", e))
}

func TestEvalMatchesExprLang(t *testing.T) {
	formulas := []string{
		`(not p)`,
		`(and p q r)`,
		`(or p q r)`,
		`(and)`,
		`(or)`,
		`(implies p q)`,
		`(iff p q)`,
		`(implies (and p q) (or q r))`,
		`(iff (implies p q) (or (not p) q))`,
		`(and (or p (not q)) (iff r (implies q p)) (not (and)))`,
		`(or (iff p (iff q r)) (and (not p) (not q) (not r)))`,
	}

	names := []string{"p", "q", "r"}

	for _, formula := range formulas {
		tree := mustParse(t, formula)[0]
		source := toExprLang(tree)

		for mask := 0; mask < 1<<len(names); mask++ {
			env := map[string]any{}
			ev := New()
			for i, name := range names {
				value := mask&(1<<i) != 0
				env[name] = value
				ev.Env().Set(name, ast.BoolLit(value))
			}

			program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
			require.NoError(t, err, source)

			want, err := expr.Run(program, env)
			require.NoError(t, err, source)

			got, err := ev.Eval(tree)
			require.NoError(t, err, formula)

			assert.Equal(t, want, got.Value(), "%s with %v", formula, env)
		}
	}
}
