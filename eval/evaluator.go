package eval

import (
	"log/slog"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/log"
)

// Evaluator reduces expression trees to boolean values. Bindings made by
// :set-const persist across calls on the same Evaluator.
type Evaluator struct {
	env    *Environment
	logger log.Logger
}

// New creates an evaluator with an empty environment.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{
		env: newEnvironment(),
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Env returns the environment owned by ev.
func (ev *Evaluator) Env() *Environment {
	return ev.env
}

// Eval evaluates e. Every operand is evaluated, left to right, before its
// operator is applied. Bindings made before a failure are kept.
func (ev *Evaluator) Eval(e ast.Expr) (ast.BoolLit, error) {
	value, err := ev.eval(e)
	if err != nil {
		ev.logger.Debug("eval failed",
			slog.Any("expr", e),
			slog.Any("error", err),
		)
		return false, err
	}
	return value, nil
}

// EvalAll evaluates exprs in order and stops at the first error, returning
// the values computed so far along with it.
func (ev *Evaluator) EvalAll(exprs []ast.Expr) ([]ast.BoolLit, error) {
	values := make([]ast.BoolLit, 0, len(exprs))
	for i := range exprs {
		value, err := ev.Eval(exprs[i])
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (ev *Evaluator) eval(e ast.Expr) (ast.BoolLit, error) {
	switch node := e.(type) {
	case ast.BoolLit:
		return node, nil

	case ast.Name:
		value, ok := ev.env.Get(string(node))
		if !ok {
			return false, errorf(ErrNoValue, "no value for %s", node)
		}
		return value, nil

	case *ast.OperatorExpr:
		if node == nil {
			return false, errorf(ErrUnexpectedExpr, "unexpected expression: <nil>")
		}
		return ev.evalOperator(node)
	}

	return false, errorf(ErrUnexpectedExpr, "unexpected expression: %T", e)
}

func (ev *Evaluator) evalOperator(node *ast.OperatorExpr) (ast.BoolLit, error) {
	op := node.Op()
	if !op.Valid() {
		return false, errorf(ErrUnexpectedOperator, "unexpected operator: %v", op)
	}
	if !op.Arity().Accepts(node.Len()) {
		return false, errorf(ErrMalformed, "malformed expression: %v expects %v, got %d", op, op.Arity().Arguments(), node.Len())
	}

	ev.logger.Trace("eval",
		slog.String("op", op.String()),
		slog.Int("operands", node.Len()),
	)

	switch op {
	case ast.OpConst:
		// Declares intent only, the type name is not interpreted.
		return true, nil

	case ast.OpSetConst:
		name, ok := node.Child(0).(ast.Name)
		if !ok {
			return false, errorf(ErrMalformed, "malformed expression: %v expects a name, got %v", op, node.Child(0))
		}
		value, err := ev.eval(node.Child(1))
		if err != nil {
			return false, err
		}
		ev.env.Set(string(name), value)
		ev.logger.Debug("bind",
			slog.String("name", string(name)),
			slog.Bool("value", bool(value)),
		)
		return true, nil
	}

	operands := make([]ast.BoolLit, node.Len())
	for i := range operands {
		value, err := ev.eval(node.Child(i))
		if err != nil {
			return false, err
		}
		operands[i] = value
	}

	switch op {
	case ast.OpNot:
		return !operands[0], nil

	case ast.OpAnd:
		result := ast.True
		for _, v := range operands {
			result = result && v
		}
		return result, nil

	case ast.OpOr:
		result := ast.False
		for _, v := range operands {
			result = result || v
		}
		return result, nil

	case ast.OpImplies:
		return !operands[0] || operands[1], nil

	case ast.OpIff:
		return operands[0] == operands[1], nil
	}

	return false, errorf(ErrUnexpectedOperator, "unexpected operator: %v", op)
}
