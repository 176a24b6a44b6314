package ast

// BoolLit is a literal truth value
type BoolLit bool

// Canonical literals
const (
	True  BoolLit = true
	False BoolLit = false
)

// Kind returns KindBool
func (b BoolLit) Kind() Kind {
	return KindBool
}

// Value returns the literal as a Go bool
func (b BoolLit) Value() bool {
	return bool(b)
}

func (b BoolLit) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (BoolLit) expr() {}

// Name is an identifier. The parser never resolves names, the evaluator looks
// them up in its environment.
type Name string

// Kind returns KindName
func (n Name) Kind() Kind {
	return KindName
}

func (n Name) String() string {
	return string(n)
}

func (Name) expr() {}

var (
	_ = Expr(True)
	_ = Expr(Name(""))
)
