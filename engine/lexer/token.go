package lexer

import (
	"fmt"

	"github.com/samber/mo"
)

type TokenType uint8

const (
	NUMBER TokenType = iota
	IDENTIFIER
	PLUS
	MINUS
	STAR
	TRUE
	FALSE
	EQUAL
	LESS_EQUAL
	GREATER
	NOT
	OR
	SKIP
	WALRUS
	SEMICOLON
	IF
	THEN
	ELSE
	WHILE
	DO
	END
	LEFT_PAREN
	RIGHT_PAREN
	EOF
)

var typeNames = [...]string{
	NUMBER:      "NUMBER",
	IDENTIFIER:  "IDENTIFIER",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	TRUE:        "TRUE",
	FALSE:       "FALSE",
	EQUAL:       "EQUAL",
	LESS_EQUAL:  "LESS_EQUAL",
	GREATER:     "GREATER",
	NOT:         "NOT",
	OR:          "OR",
	SKIP:        "SKIP",
	WALRUS:      "WALRUS",
	SEMICOLON:   "SEMICOLON",
	IF:          "IF",
	THEN:        "THEN",
	ELSE:        "ELSE",
	WHILE:       "WHILE",
	DO:          "DO",
	END:         "END",
	LEFT_PAREN:  "LEFT_PAREN",
	RIGHT_PAREN: "RIGHT_PAREN",
	EOF:         "EOF",
}

func (t TokenType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("unknown:%d", t)
}

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"skip":  SKIP,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"while": WHILE,
	"do":    DO,
	"end":   END,
}

// Token is compared structurally, so two scans of the same source produce
// equal token slices.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal mo.Option[int32]
	Line    int
}

func NewToken(typ TokenType, lexeme string, line int) Token {
	return Token{Type: typ, Lexeme: lexeme, Literal: mo.None[int32](), Line: line}
}

func NewNumber(lexeme string, n int32, line int) Token {
	return Token{Type: NUMBER, Lexeme: lexeme, Literal: mo.Some(n), Line: line}
}

func (t Token) String() string {
	literal := "null"
	if n, ok := t.Literal.Get(); ok {
		literal = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("Token{type=%s, lexeme='%s', literal=%s, line=%d}", t.Type, t.Lexeme, literal, t.Line)
}
