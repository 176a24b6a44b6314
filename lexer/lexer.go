package lexer

import (
	"bytes"
	"errors"
	"io"
	"text/scanner"
)

// ErrEncoding classifies input that text/scanner refuses to decode: invalid
// UTF-8, NUL bytes and misplaced byte order marks.
var ErrEncoding = errors.New("invalid encoding")

// EncodingError carries the scanner's description of an undecodable input.
type EncodingError struct {
	Msg string
}

func (e *EncodingError) Error() string {
	return e.Msg
}

// Is reports whether target is ErrEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

type lexState func(*Lexer) lexState

var (
	isOpenExpression  = isTokenType(TokenOpenExpression)
	isCloseExpression = isTokenType(TokenCloseExpression)

	isNewLine    = isClass(classNewLine)
	isWhitespace = isClass(classWhitespace)
	isHash       = isClass(classHash)
)

// New initializes a Lexer object. The lexer reads r lazily, one token at a
// time, and never closes it.
func New(r io.Reader) *Lexer {
	lx := &Lexer{
		buf:   []rune{},
		line:  1,
		state: lexDefaultState,
	}

	s := &scanner.Scanner{}
	s.Init(&recordingReader{r: r, err: &lx.lastErr})
	s.Error = func(_ *scanner.Scanner, msg string) {
		if lx.lastErr == nil {
			lx.lastErr = &EncodingError{Msg: msg}
		}
	}
	lx.in = s

	return lx
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in *scanner.Scanner

	state lexState
	tok   Token
	ready bool

	lastErr error

	buf []rune

	start int
	col   int
	line  int
}

// recordingReader keeps the first error returned by the underlying reader,
// text/scanner only reports it as a string.
type recordingReader struct {
	r   io.Reader
	err *error
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF && *rr.err == nil {
		*rr.err = err
	}
	return n, err
}

// Next advances the lexer to the next token, which is then available through
// Token. It returns false once the EOF token has been consumed or after a
// read error, in which case Err reports the cause.
func (lx *Lexer) Next() bool {
	lx.ready = false
	for !lx.ready && lx.state != nil {
		lx.state = lx.state(lx)
	}
	return lx.ready
}

// Token returns the most recent token produced by Next.
func (lx *Lexer) Token() Token {
	return lx.tok
}

// Err returns the first read or encoding error found, if any.
func (lx *Lexer) Err() error {
	return lx.lastErr
}

// Line returns the current 1-based line number.
func (lx *Lexer) Line() int {
	return lx.line
}

func (lx *Lexer) emit(tt TokenType) {
	lx.tok = Token{
		tt:     tt,
		lexeme: string(lx.buf),

		col:  lx.start,
		line: lx.line,
	}
	lx.ready = true
	lx.discard()
}

func (lx *Lexer) discard() {
	lx.buf = lx.buf[0:0]
	lx.start = lx.col + 1
}

func (lx *Lexer) peek() rune {
	return lx.in.Peek()
}

func (lx *Lexer) next() (rune, error) {
	r := lx.in.Next()
	if lx.lastErr != nil {
		return rune(0), lx.lastErr
	}
	if r == scanner.EOF {
		return rune(0), io.EOF
	}

	if isNewLine(r) {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}

	lx.buf = append(lx.buf, r)
	return r, nil
}

func lexDefaultState(lx *Lexer) lexState {
	lx.discard()

	r, err := lx.next()
	if err != nil {
		return lexStateError(err)
	}

	switch {
	case isOpenExpression(r):
		return lexEmit(TokenOpenExpression)
	case isCloseExpression(r):
		return lexEmit(TokenCloseExpression)

	case isNewLine(r):
		return lexDefaultState
	case isWhitespace(r):
		return lexSkip(isWhitespace)
	case isHash(r):
		return lexSkip(func(r rune) bool {
			return r != scanner.EOF && !isNewLine(r)
		})

	case isWordRune(r):
		return lexCollectWord

	default:
		return lexEmit(TokenInvalid)
	}
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt)
		return lexDefaultState
	}
}

func lexSkip(accept func(rune) bool) lexState {
	return func(lx *Lexer) lexState {
		for accept(lx.peek()) {
			if _, err := lx.next(); err != nil {
				return lexStateError(err)
			}
		}
		return lexDefaultState
	}
}

func lexCollectWord(lx *Lexer) lexState {
	for isWordRune(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return lexStateError(err)
		}
	}
	return lexEmit(TokenWord)
}

func lexStateError(err error) lexState {
	if err == io.EOF {
		return lexStateEOF
	}
	return nil
}

func lexStateEOF(lx *Lexer) lexState {
	lx.discard()
	lx.emit(TokenEOF)
	return nil
}

// Tokenize takes an array of bytes and returns all the tokens within it,
// including the final EOF token, or an error if the input can't be read.
func Tokenize(in []byte) ([]Token, error) {
	tokens := []Token{}

	lx := New(bytes.NewReader(in))
	for lx.Next() {
		tokens = append(tokens, lx.Token())
	}

	if err := lx.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}
