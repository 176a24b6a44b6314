package ast

// Kind represents the shape of an expression node
type Kind uint8

// Expression kinds
const (
	KindInvalid Kind = iota
	KindBool
	KindName
	KindOperator
)

func (k Kind) String() string {
	s, ok := kindName[k]
	if ok {
		return s
	}
	return kindName[KindInvalid]
}

var kindName = map[Kind]string{
	KindInvalid:  "invalid",
	KindBool:     "bool",
	KindName:     "name",
	KindOperator: "operator",
}
