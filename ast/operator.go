package ast

import (
	"fmt"
)

// Operator identifies a logical connective or a directive
type Operator uint8

// Operators and directives known to the language
const (
	OpInvalid Operator = iota
	OpNot
	OpAnd
	OpOr
	OpImplies
	OpIff
	OpConst
	OpSetConst
)

// ArityKind tells whether an arity is fixed or variadic
type ArityKind uint8

// Arity kinds
const (
	Exactly ArityKind = iota
	AtLeast
)

// Arity is the number of children an operator accepts
type Arity struct {
	Kind ArityKind
	N    int
}

// Accepts reports whether an operator with this arity may have n children.
func (a Arity) Accepts(n int) bool {
	if a.Kind == AtLeast {
		return n >= a.N
	}
	return n == a.N
}

func (a Arity) String() string {
	if a.Kind == AtLeast {
		return fmt.Sprintf("at least %d", a.N)
	}
	return fmt.Sprintf("exactly %d", a.N)
}

// Arguments describes the arity as a count of arguments, e.g. "exactly 1
// argument" or "at least 0 arguments".
func (a Arity) Arguments() string {
	if a.Kind == Exactly && a.N == 1 {
		return a.String() + " argument"
	}
	return a.String() + " arguments"
}

type operatorInfo struct {
	name  string
	arity Arity
}

var operators = [...]operatorInfo{
	OpInvalid:  {"", Arity{Exactly, 0}},
	OpNot:      {"not", Arity{Exactly, 1}},
	OpAnd:      {"and", Arity{AtLeast, 0}},
	OpOr:       {"or", Arity{AtLeast, 0}},
	OpImplies:  {"implies", Arity{Exactly, 2}},
	OpIff:      {"iff", Arity{Exactly, 2}},
	OpConst:    {":const", Arity{Exactly, 2}},
	OpSetConst: {":set-const", Arity{Exactly, 2}},
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operators))
	for op := OpNot; int(op) < len(operators); op++ {
		m[operators[op].name] = op
	}
	return m
}()

// LookupOperator returns the operator or directive called name. Words that
// are not in the registry are plain names.
func LookupOperator(name string) (Operator, bool) {
	op, ok := operatorsByName[name]
	return op, ok
}

// OperatorNames returns the surface names of all operators and directives in
// registry order.
func OperatorNames() []string {
	names := make([]string, 0, len(operators)-1)
	for op := OpNot; int(op) < len(operators); op++ {
		names = append(names, operators[op].name)
	}
	return names
}

// Valid reports whether op is a registered operator.
func (op Operator) Valid() bool {
	return op > OpInvalid && int(op) < len(operators)
}

// Arity returns the arity contract of op.
func (op Operator) Arity() Arity {
	if !op.Valid() {
		return operators[OpInvalid].arity
	}
	return operators[op].arity
}

// IsDirective reports whether op has an environment side effect rather than
// being a logical connective.
func (op Operator) IsDirective() bool {
	return op == OpConst || op == OpSetConst
}

func (op Operator) String() string {
	if !op.Valid() {
		return fmt.Sprintf("operator(%d)", uint8(op))
	}
	return operators[op].name
}
