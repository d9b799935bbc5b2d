package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestScan_AllTokens(t *testing.T) {
	source := "123 abc + - * true false " +
		"= <= > ! || skip := ; if then else " +
		"while do end ( )"
	tokens, err := Scan(source)
	require.NoError(t, err)

	expected := []Token{
		NewNumber("123", 123, 1),
		NewToken(IDENTIFIER, "abc", 1),
		NewToken(PLUS, "+", 1),
		NewToken(MINUS, "-", 1),
		NewToken(STAR, "*", 1),
		NewToken(TRUE, "true", 1),
		NewToken(FALSE, "false", 1),
		NewToken(EQUAL, "=", 1),
		NewToken(LESS_EQUAL, "<=", 1),
		NewToken(GREATER, ">", 1),
		NewToken(NOT, "!", 1),
		NewToken(OR, "||", 1),
		NewToken(SKIP, "skip", 1),
		NewToken(WALRUS, ":=", 1),
		NewToken(SEMICOLON, ";", 1),
		NewToken(IF, "if", 1),
		NewToken(THEN, "then", 1),
		NewToken(ELSE, "else", 1),
		NewToken(WHILE, "while", 1),
		NewToken(DO, "do", 1),
		NewToken(END, "end", 1),
		NewToken(LEFT_PAREN, "(", 1),
		NewToken(RIGHT_PAREN, ")", 1),
		NewToken(EOF, "", 1),
	}
	assert.Equal(t, expected, tokens)
}

func TestScan_Empty(t *testing.T) {
	tokens, err := Scan("")
	assert.NoError(t, err)
	assert.Equal(t, []Token{NewToken(EOF, "", 1)}, tokens)
}

func TestScan_Lines(t *testing.T) {
	tokens, err := Scan("x := 1;\n\ny := x\r\n")
	require.NoError(t, err)
	lines := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		lines = append(lines, tok.Line)
	}
	assert.Equal(t, []int{1, 1, 1, 1, 3, 3, 3, 4}, lines)
}

func TestScan_Identifiers(t *testing.T) {
	tokens, err := Scan("_tmp x1 iffy whiles End")
	require.NoError(t, err)
	for _, tok := range tokens[:5] {
		assert.Equal(t, IDENTIFIER, tok.Type, tok.Lexeme)
	}
	// a digit never starts an identifier
	tokens, err = Scan("1x")
	require.NoError(t, err)
	assert.Equal(t, NewNumber("1", 1, 1), tokens[0])
	assert.Equal(t, NewToken(IDENTIFIER, "x", 1), tokens[1])
}

func TestScan_ChainedNot(t *testing.T) {
	tokens, err := Scan("!!!false")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{NOT, NOT, NOT, FALSE, EOF}, types(tokens))
}

func TestScan_UnexpectedCharacterContinues(t *testing.T) {
	tokens, err := Scan("a $ b")
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 1)

	var lexErr *LexError
	require.True(t, errors.As(errs[0], &lexErr))
	assert.Equal(t, 1, lexErr.Line)
	assert.Contains(t, lexErr.Error(), "[line 1]")

	assert.Equal(t, []Token{
		NewToken(IDENTIFIER, "a", 1),
		NewToken(IDENTIFIER, "b", 1),
		NewToken(EOF, "", 1),
	}, tokens)
}

func TestScan_ReportsEveryError(t *testing.T) {
	tokens, err := Scan("x := 1 $\ny < 2 | 3 : é")
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 5)
	var lines []int
	for _, e := range errs {
		var lexErr *LexError
		require.True(t, errors.As(e, &lexErr))
		lines = append(lines, lexErr.Line)
	}
	assert.Equal(t, []int{1, 2, 2, 2, 2}, lines)
	assert.Equal(t, []TokenType{IDENTIFIER, WALRUS, NUMBER, IDENTIFIER, NUMBER, NUMBER, EOF}, types(tokens))
}

func TestScan_Numbers(t *testing.T) {
	tokens, err := Scan("0 007 2147483647")
	require.NoError(t, err)
	assert.Equal(t, NewNumber("0", 0, 1), tokens[0])
	assert.Equal(t, NewNumber("007", 7, 1), tokens[1])
	assert.Equal(t, NewNumber("2147483647", 2147483647, 1), tokens[2])

	// fractional literals are rejected and produce no token
	tokens, err = Scan("x := 12.5")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fractional")
	assert.Equal(t, []TokenType{IDENTIFIER, WALRUS, EOF}, types(tokens))

	// a dot not followed by a digit is just an unexpected character
	tokens, err = Scan("12.")
	assert.Error(t, err)
	assert.Equal(t, []TokenType{NUMBER, EOF}, types(tokens))

	_, err = Scan("2147483648")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "Token{type=NUMBER, lexeme='42', literal=42, line=3}", NewNumber("42", 42, 3).String())
	assert.Equal(t, "Token{type=WALRUS, lexeme=':=', literal=null, line=1}", NewToken(WALRUS, ":=", 1).String())
}

func types(tokens []Token) []TokenType {
	ret := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		ret[i] = tok.Type
	}
	return ret
}
