package ast

import (
	"errors"
	"fmt"
	"slices"
)

// ErrArity is returned when an operator is built with a number of children
// that its arity contract does not allow.
var ErrArity = errors.New("arity mismatch")

// Expr is an immutable expression tree. The set of implementations is closed:
// BoolLit, Name and *OperatorExpr.
type Expr interface {
	Kind() Kind
	String() string

	expr()
}

// OperatorExpr is an operator or directive applied to an ordered list of
// children.
type OperatorExpr struct {
	op       Operator
	children []Expr
}

// NewOperatorExpr creates an operator node, checking that the number of
// children satisfies the arity of op.
func NewOperatorExpr(op Operator, children ...Expr) (*OperatorExpr, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("unknown operator %v", op)
	}
	if arity := op.Arity(); !arity.Accepts(len(children)) {
		return nil, fmt.Errorf("%w: operator %v expects %v, got %d", ErrArity, op, arity.Arguments(), len(children))
	}
	return Apply(op, children...), nil
}

// Apply creates an operator node without validating it. Consumers of the
// resulting tree may reject it.
func Apply(op Operator, children ...Expr) *OperatorExpr {
	node := &OperatorExpr{
		op:       op,
		children: make([]Expr, len(children)),
	}
	copy(node.children, children)
	return node
}

// Kind returns KindOperator
func (o *OperatorExpr) Kind() Kind {
	return KindOperator
}

// Op returns the operator code of the node
func (o *OperatorExpr) Op() Operator {
	return o.op
}

// Len returns the number of children
func (o *OperatorExpr) Len() int {
	return len(o.children)
}

// Child returns the i-th child
func (o *OperatorExpr) Child(i int) Expr {
	return o.children[i]
}

// Children returns a copy of the children of the node
func (o *OperatorExpr) Children() []Expr {
	return slices.Clone(o.children)
}

func (o *OperatorExpr) String() string {
	return string(Encode(o))
}

func (*OperatorExpr) expr() {}

var _ = Expr(&OperatorExpr{})
