package main

import (
	"fmt"
	"log"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/eval"
	"github.com/xiam/minitla/parser"
)

func main() {
	input := `(:set-const p true) (implies (and p (not q)) (or p q))`

	exprs, err := parser.ParseString("example", input)
	if err != nil {
		log.Fatal("parser.ParseString:", err)
	}

	for _, e := range exprs {
		ast.Print(e)
	}

	ev := eval.New()
	ev.Env().Set("q", ast.False)

	values, err := ev.EvalAll(exprs)
	if err != nil {
		log.Fatal("eval.EvalAll:", err)
	}
	fmt.Println(values)
}
