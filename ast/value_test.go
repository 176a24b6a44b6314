package ast

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolLit(t *testing.T) {
	assert.True(t, True.Value())
	assert.False(t, False.Value())
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
	assert.Equal(t, True, BoolLit(true))
}

func TestLookupOperator(t *testing.T) {
	testCases := []struct {
		Name  string
		Op    Operator
		Arity Arity
	}{
		{"not", OpNot, Arity{Exactly, 1}},
		{"and", OpAnd, Arity{AtLeast, 0}},
		{"or", OpOr, Arity{AtLeast, 0}},
		{"implies", OpImplies, Arity{Exactly, 2}},
		{"iff", OpIff, Arity{Exactly, 2}},
		{":const", OpConst, Arity{Exactly, 2}},
		{":set-const", OpSetConst, Arity{Exactly, 2}},
	}

	for i := range testCases {
		op, ok := LookupOperator(testCases[i].Name)
		require.True(t, ok, testCases[i].Name)
		assert.Equal(t, testCases[i].Op, op)
		assert.Equal(t, testCases[i].Arity, op.Arity())
		assert.Equal(t, testCases[i].Name, op.String())
	}

	for _, name := range []string{"", "AND", "x", ":unexpected", "set-const", "true"} {
		_, ok := LookupOperator(name)
		assert.False(t, ok, name)
	}

	assert.Equal(t, []string{"not", "and", "or", "implies", "iff", ":const", ":set-const"}, OperatorNames())
}

func TestArity(t *testing.T) {
	assert.True(t, Arity{AtLeast, 0}.Accepts(0))
	assert.True(t, Arity{AtLeast, 0}.Accepts(7))
	assert.True(t, Arity{Exactly, 2}.Accepts(2))
	assert.False(t, Arity{Exactly, 2}.Accepts(1))
	assert.False(t, Arity{Exactly, 2}.Accepts(3))

	assert.Equal(t, "exactly 1", OpNot.Arity().String())
	assert.Equal(t, "at least 0", OpAnd.Arity().String())

	assert.Equal(t, "exactly 1 argument", OpNot.Arity().Arguments())
	assert.Equal(t, "exactly 2 arguments", OpIff.Arity().Arguments())
	assert.Equal(t, "at least 0 arguments", OpOr.Arity().Arguments())

	assert.False(t, OpInvalid.Valid())
	assert.False(t, Operator(200).Valid())
	assert.Equal(t, "operator(200)", Operator(200).String())

	assert.True(t, OpConst.IsDirective())
	assert.True(t, OpSetConst.IsDirective())
	assert.False(t, OpIff.IsDirective())
}

func TestFormatJSON(t *testing.T) {
	exprs := []Expr{
		True,
		Name("x"),
		Apply(OpAnd, False, Name("y")),
	}

	var buf bytes.Buffer
	err := FormatJSON(context.Background(), &buf, exprs, 0)
	require.NoError(t, err)
	assert.Equal(t, `[true,"x",{"args":[false,"y"],"op":"and"}]`+"\n", buf.String())
}

func TestFormatYAML(t *testing.T) {
	exprs := []Expr{
		Apply(OpSetConst, Name("x"), True),
	}

	var buf bytes.Buffer
	err := FormatYAML(context.Background(), &buf, exprs, 2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "op:")
	assert.Contains(t, out, ":set-const")
	assert.Contains(t, out, "- x")
	assert.Contains(t, out, "- true")
}
