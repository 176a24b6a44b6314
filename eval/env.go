package eval

import (
	"maps"
	"slices"

	"github.com/xiam/minitla/ast"
)

// Environment maps constant names to the values bound by :set-const. It
// belongs to exactly one Evaluator.
type Environment struct {
	n map[string]ast.BoolLit
}

func newEnvironment() *Environment {
	return &Environment{
		n: make(map[string]ast.BoolLit),
	}
}

// Set binds name to value, replacing any previous binding.
func (env *Environment) Set(name string, value ast.BoolLit) {
	env.n[name] = value
}

// Get returns the value bound to name.
func (env *Environment) Get(name string) (ast.BoolLit, bool) {
	value, ok := env.n[name]
	return value, ok
}

// Names returns the bound names in lexical order.
func (env *Environment) Names() []string {
	return slices.Sorted(maps.Keys(env.n))
}

func (env *Environment) Len() int {
	return len(env.n)
}
