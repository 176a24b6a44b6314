package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/parser"
)

func printTree(e ast.Expr) {
	printIndentedTree(e, 0)
}

func printIndentedTree(e ast.Expr, indentationLevel int) {
	indent := strings.Repeat("  ", indentationLevel)
	if node, ok := e.(*ast.OperatorExpr); ok {
		fmt.Printf("%s<%s>\n", indent, node.Op())
		children := node.Children()
		for i := range children {
			printIndentedTree(children[i], indentationLevel+1)
		}
		fmt.Printf("%s</%s>\n", indent, node.Op())
		return
	}
	fmt.Printf("%s<%s>%v</%s>\n", indent, e.Kind(), e, e.Kind())
}

func main() {
	input := `(iff (implies a b) (or (not a) b))`

	exprs, err := parser.ParseString("example", input)
	if err != nil {
		log.Fatal("parser.ParseString:", err)
	}

	for _, e := range exprs {
		printTree(e)
	}
}
