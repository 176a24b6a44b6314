package lexer

import (
	"unicode"
)

// TokenType represents all the possible types of a lexical unit
type TokenType uint8

// List of types of lexical units
const (
	TokenInvalid         TokenType = iota
	TokenOpenExpression            // Open parenthesis: "("
	TokenCloseExpression           // Close parenthesis: ")"
	TokenWord                      // Letters, digits, colon and hyphen
	TokenEOF                       // End of file
)

// Character classes that never reach the parser.
const (
	classNewLine = iota + 1
	classWhitespace
	classHash
)

var tokenValues = map[TokenType][]rune{
	TokenOpenExpression:  {'('},
	TokenCloseExpression: {')'},
}

var classValues = map[int][]rune{
	classNewLine:    {'\n'},
	classWhitespace: []rune(" \f\t\r\v"),
	classHash:       {'#'},
}

var tokenNames = map[TokenType]string{
	TokenInvalid:         "invalid",
	TokenOpenExpression:  "open_expression",
	TokenCloseExpression: "close_expression",
	TokenWord:            "word",
	TokenEOF:             "EOF",
}

func (tt TokenType) String() string {
	if v, ok := tokenNames[tt]; ok {
		return v
	}
	return tokenNames[TokenInvalid]
}

func isOneOf(values []rune) func(r rune) bool {
	return func(r rune) bool {
		for _, v := range values {
			if v == r {
				return true
			}
		}
		return false
	}
}

func isTokenType(tt TokenType) func(r rune) bool {
	return isOneOf(tokenValues[tt])
}

func isClass(class int) func(r rune) bool {
	return isOneOf(classValues[class])
}

// isWordRune reports whether r may appear in a word. Colons and hyphens are
// word characters so that directives like ":set-const" lex as one unit.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ':' || r == '-'
}
