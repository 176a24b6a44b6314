package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/lexer"
	"github.com/xiam/minitla/log"
)

const maxSuggestions = 2

type parserState func(p *Parser) parserState

// Parser turns a stream of tokens into a forest of expression trees. It is a
// single pass stack machine: one stack holds the operators whose parenthesis
// is still open, the other holds the operand list being collected for each of
// them, plus a bottom list that collects the top-level expressions.
type Parser struct {
	source string
	lx     *lexer.Lexer

	logger  log.Logger
	suggest bool

	// Invariants, after every token:
	//   len(operandStack) == len(operatorStack)+1
	//   len(operatorStack) <= openParens
	//   openParens >= 0
	openParens    int
	operatorStack []ast.Operator
	operandStack  [][]ast.Expr

	lastTok lexer.Token
	lastErr error

	// observe is called after every token that was processed without error.
	observe func(*Parser)
}

// New creates a parser that reads r until EOF or until the first syntax
// error. The caller owns r and is responsible for closing it.
func New(source string, r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		source:  source,
		lx:      lexer.New(r),
		suggest: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the whole input and returns the top-level expressions in the
// order in which they appear.
func (p *Parser) Parse() ([]ast.Expr, error) {
	p.openParens = 0
	p.operatorStack = []ast.Operator{}
	p.operandStack = [][]ast.Expr{{}}
	p.lastErr = nil

	defer func() {
		p.operatorStack, p.operandStack = nil, nil
	}()

	for state := parserDefaultState; state != nil; {
		state = state(p)
	}

	if p.lastErr != nil {
		p.logger.Debug("parse failed",
			slog.String("source", p.source),
			slog.Any("error", p.lastErr),
		)
		return nil, p.lastErr
	}

	exprs := p.operandStack[0]
	p.logger.Debug("parsed",
		slog.String("source", p.source),
		slog.Int("expressions", len(exprs)),
	)
	return exprs, nil
}

// Parse reads all expressions from r. The source name is used in error
// messages only.
func Parse(source string, r io.Reader, opts ...Option) ([]ast.Expr, error) {
	return New(source, r, opts...).Parse()
}

// ParseString is like Parse but reads from a string.
func ParseString(source string, text string, opts ...Option) ([]ast.Expr, error) {
	return Parse(source, strings.NewReader(text), opts...)
}

func (p *Parser) curr() lexer.Token {
	return p.lastTok
}

func (p *Parser) next() (lexer.Token, error) {
	if !p.lx.Next() {
		if err := p.lx.Err(); err != nil {
			if errors.Is(err, lexer.ErrEncoding) {
				return lexer.Token{}, &SyntaxError{
					Source: p.source,
					Line:   p.lx.Line(),
					Msg:    err.Error(),
					Err:    err,
				}
			}
			return lexer.Token{}, &SyntaxError{
				Source: p.source,
				Line:   p.lx.Line(),
				Msg:    err.Error(),
				Err:    fmt.Errorf("%w: %w", ErrIO, err),
			}
		}
		return lexer.NewToken(lexer.TokenEOF, "", p.lx.Line(), 0), nil
	}
	p.lastTok = p.lx.Token()
	return p.lastTok, nil
}

func (p *Parser) errorf(sentinel error, format string, args ...any) parserState {
	return parserErrorState(&SyntaxError{
		Source: p.source,
		Line:   p.curr().Line(),
		Msg:    fmt.Sprintf(format, args...),
		Err:    sentinel,
	})
}

func (p *Parser) push(e ast.Expr) {
	top := len(p.operandStack) - 1
	p.operandStack[top] = append(p.operandStack[top], e)
}

func (p *Parser) checkInvariants() error {
	switch {
	case len(p.operandStack) != len(p.operatorStack)+1:
		return fmt.Errorf("%d operand scopes for %d operators", len(p.operandStack), len(p.operatorStack))
	case len(p.operatorStack) > p.openParens:
		return fmt.Errorf("%d operators for %d open parentheses", len(p.operatorStack), p.openParens)
	case p.openParens < 0:
		return fmt.Errorf("negative parenthesis count %d", p.openParens)
	}
	return nil
}

func parserDefaultState(p *Parser) parserState {
	tok, err := p.next()
	if err != nil {
		return parserErrorState(err)
	}

	var state parserState

	switch tok.Type() {
	case lexer.TokenEOF:
		return parserStateEOF

	case lexer.TokenWord:
		state = parserStateWord(p)

	case lexer.TokenOpenExpression:
		state = parserStateOpenExpression(p)

	case lexer.TokenCloseExpression:
		state = parserStateCloseExpression(p)

	default:
		return p.errorf(ErrUnexpectedToken, "unexpected token: %q", tok.Text())
	}

	if state != nil {
		return state
	}
	if p.observe != nil {
		p.observe(p)
	}
	return parserDefaultState
}

func parserErrorState(err error) parserState {
	return func(p *Parser) parserState {
		p.lastErr = err
		return nil
	}
}

// parserStateWord handles a word that is not in operator position: a boolean
// literal or a name.
func parserStateWord(p *Parser) parserState {
	text := p.curr().Text()

	switch text {
	case "true":
		p.push(ast.True)
	case "false":
		p.push(ast.False)
	default:
		p.push(ast.Name(text))
	}
	return nil
}

// parserStateOpenExpression consumes "(" and the operator head that must
// follow it.
func parserStateOpenExpression(p *Parser) parserState {
	p.openParens++

	tok, err := p.next()
	if err != nil {
		return parserErrorState(err)
	}
	if !tok.Is(lexer.TokenWord) {
		return p.errorf(ErrExpectedOperator, "expected an operator/directive name, found %s", describe(tok))
	}

	name := tok.Text()
	op, ok := ast.LookupOperator(name)
	if !ok || len(p.operatorStack) >= p.openParens {
		return p.errorf(ErrUnexpectedOperator, "unexpected operator/directive: %s%s", name, p.hint(name))
	}

	p.operatorStack = append(p.operatorStack, op)
	p.operandStack = append(p.operandStack, []ast.Expr{})

	p.logger.Trace("open",
		slog.String("op", op.String()),
		slog.Int("line", tok.Line()),
		slog.Int("depth", len(p.operatorStack)),
	)
	return nil
}

func parserStateCloseExpression(p *Parser) parserState {
	if p.openParens == 0 {
		return p.errorf(ErrTooManyClosing, "too many closing parentheses ')'")
	}
	if len(p.operatorStack) == 0 {
		// e.g. "()" or "(true)"
		return p.errorf(ErrNoOperator, "no operator to end with ')'")
	}

	top := len(p.operatorStack) - 1
	op, operands := p.operatorStack[top], p.operandStack[top+1]
	p.operatorStack = p.operatorStack[:top]
	p.operandStack = p.operandStack[:top+1]

	node, err := ast.NewOperatorExpr(op, operands...)
	if err != nil {
		return p.errorf(ErrArity, "operator %v expects %v, got %d", op, op.Arity().Arguments(), len(operands))
	}

	p.push(node)
	p.openParens--

	p.logger.Trace("close",
		slog.String("op", op.String()),
		slog.Int("line", p.curr().Line()),
		slog.Int("operands", len(operands)),
		slog.Int("depth", len(p.operatorStack)),
	)
	return nil
}

func parserStateEOF(p *Parser) parserState {
	if p.openParens > 0 {
		return p.errorf(ErrUnclosed, "%d unclosed parentheses remain", p.openParens)
	}
	return nil
}

func (p *Parser) hint(name string) string {
	if !p.suggest || name == "" {
		return ""
	}

	matches := fuzzy.Find(name, ast.OperatorNames())
	if len(matches) == 0 {
		return ""
	}

	candidates := make([]string, 0, maxSuggestions)
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		if matches[i].Str == name {
			continue
		}
		candidates = append(candidates, fmt.Sprintf("%q", matches[i].Str))
	}
	if len(candidates) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(candidates, " or "))
}

func describe(tok lexer.Token) string {
	if tok.Is(lexer.TokenEOF) {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Text())
}
