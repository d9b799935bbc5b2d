// Package lexer turns simpl source text into tokens.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// LexError is a malformed character or literal. Scanning continues past it.
type LexError struct {
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

type Lexer struct {
	source  string
	tokens  []Token
	start   int
	current int
	line    int
	err     error
}

func New(source string) *Lexer {
	return &Lexer{
		source: source,
		tokens: make([]Token, 0, len(source)/2+1),
		line:   1,
	}
}

// Scan is a shorthand for New(source).Scan().
func Scan(source string) ([]Token, error) {
	return New(source).Scan()
}

// Scan returns every token of the source followed by a single EOF token. The
// returned error combines all lexical errors found; the tokens are complete
// even when it is non-nil.
func (l *Lexer) Scan() ([]Token, error) {
	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, NewToken(EOF, "", l.line))
	return l.tokens, l.err
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '+':
		l.add(PLUS)
	case '-':
		l.add(MINUS)
	case '*':
		l.add(STAR)
	case ';':
		l.add(SEMICOLON)
	case '(':
		l.add(LEFT_PAREN)
	case ')':
		l.add(RIGHT_PAREN)
	case '=':
		l.add(EQUAL)
	case '>':
		l.add(GREATER)
	case '!':
		l.add(NOT)
	case ':':
		l.pair('=', WALRUS)
	case '<':
		l.pair('=', LESS_EQUAL)
	case '|':
		l.pair('|', OR)
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	default:
		switch {
		case isDigit(c):
			l.number()
		case isAlpha(c):
			l.identifier()
		default:
			l.unexpected()
		}
	}
}

// pair emits typ when the previous character is followed by second; a lone
// first character is not a token of the language.
func (l *Lexer) pair(second byte, typ TokenType) {
	if l.match(second) {
		l.add(typ)
		return
	}
	l.errorf("unexpected character '%c', expected '%c%c'", l.source[l.start], l.source[l.start], second)
}

func (l *Lexer) unexpected() {
	r, size := utf8.DecodeRuneInString(l.source[l.start:])
	if size > 1 {
		l.current = l.start + size
	}
	l.errorf("unexpected character '%c'", r)
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		l.errorf("fractional number '%s' is not supported", l.text())
		return
	}
	n, err := strconv.ParseInt(l.text(), 10, 32)
	if err != nil {
		l.errorf("number '%s' is out of range", l.text())
		return
	}
	l.tokens = append(l.tokens, NewNumber(l.text(), int32(n), l.line))
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	typ, ok := keywords[l.text()]
	if !ok {
		typ = IDENTIFIER
	}
	l.add(typ)
}

func (l *Lexer) errorf(format string, args ...interface{}) {
	l.err = multierr.Append(l.err, &LexError{Line: l.line, Message: fmt.Sprintf(format, args...)})
}

func (l *Lexer) add(typ TokenType) {
	l.tokens = append(l.tokens, NewToken(typ, l.text(), l.line))
}

func (l *Lexer) text() string {
	return l.source[l.start:l.current]
}

func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
