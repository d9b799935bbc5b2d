// Package parser builds a simpl AST from a token slice by recursive descent.
//
// The grammar has no operator precedence: arithmetic operators share a single
// level and associate to the right (`a - b - c` is `a - (b - c)`), and `||`
// is the lowest-precedence boolean operator, also right-associative.
package parser

import (
	"fmt"

	"simpl/engine/ast"
	"simpl/engine/lexer"
)

type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

type Parser struct {
	tokens  []lexer.Token
	current int
}

func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, lexer.NewToken(lexer.EOF, "", line))
	}
	return &Parser{tokens: tokens}
}

// Parse is a shorthand for New(tokens).Parse().
func Parse(tokens []lexer.Token) (ast.Stmt, error) {
	return New(tokens).Parse()
}

// Parse returns the whole program as a single statement. The first
// structural error aborts parsing; there is never a partial tree.
func (p *Parser) Parse() (ast.Stmt, error) {
	program, err := p.statement()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf("unexpected '%s' after end of program", p.peek().Lexeme)
	}
	return program, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	first, err := p.simple()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.SEMICOLON) {
		return first, nil
	}
	second, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.Seq{First: first, Second: second}, nil
}

// simple parses one statement without a trailing sequence. A token that can
// not start a statement yields the empty statement and is left for the caller.
func (p *Parser) simple() (ast.Stmt, error) {
	switch {
	case p.match(lexer.SKIP):
		return ast.Skip{}, nil
	case p.match(lexer.IDENTIFIER):
		return p.assignment()
	case p.match(lexer.IF):
		return p.ifElse()
	case p.match(lexer.WHILE):
		return p.while()
	case p.match(lexer.LEFT_PAREN):
		return p.group()
	default:
		return ast.Skip{}, nil
	}
}

func (p *Parser) assignment() (ast.Stmt, error) {
	name := p.previous().Lexeme
	if err := p.consume(lexer.WALRUS, "expected ':=' after '%s'", name); err != nil {
		return nil, err
	}
	value, err := p.arith()
	if err != nil {
		return nil, err
	}
	return ast.Assign{Name: name, Value: value}, nil
}

func (p *Parser) ifElse() (ast.Stmt, error) {
	condition, err := p.boolean()
	if err != nil {
		return nil, err
	}
	if err = p.consume(lexer.THEN, "expected 'then' after if condition"); err != nil {
		return nil, err
	}
	thenDo, err := p.body()
	if err != nil {
		return nil, err
	}
	if err = p.consume(lexer.ELSE, "expected 'else' after then branch"); err != nil {
		return nil, err
	}
	elseDo, err := p.body()
	if err != nil {
		return nil, err
	}
	p.match(lexer.END)
	return ast.IfElse{Condition: condition, ThenDo: thenDo, ElseDo: elseDo}, nil
}

func (p *Parser) while() (ast.Stmt, error) {
	condition, err := p.boolean()
	if err != nil {
		return nil, err
	}
	if err = p.consume(lexer.DO, "expected 'do' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.body()
	if err != nil {
		return nil, err
	}
	p.match(lexer.END)
	return ast.While{Condition: condition, Body: body}, nil
}

// body parses the branch of an if or the body of a while. A parenthesized
// body ends at its ')'; otherwise it extends over every following ';'.
func (p *Parser) body() (ast.Stmt, error) {
	if p.match(lexer.LEFT_PAREN) {
		return p.group()
	}
	return p.statement()
}

// group parses `( statement )`. The parentheses only delimit the sequence
// and leave no trace in the tree.
func (p *Parser) group() (ast.Stmt, error) {
	inner, err := p.statement()
	if err != nil {
		return nil, err
	}
	if err = p.consume(lexer.RIGHT_PAREN, "expected ')' to close '('"); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) boolean() (ast.Bool, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.OR) {
		return left, nil
	}
	right, err := p.boolean()
	if err != nil {
		return nil, err
	}
	return ast.Or{Left: left, Right: right}, nil
}

func (p *Parser) unary() (ast.Bool, error) {
	switch {
	case p.match(lexer.TRUE):
		return ast.True{}, nil
	case p.match(lexer.FALSE):
		return ast.False{}, nil
	case p.match(lexer.NOT):
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Not{Operand: operand}, nil
	}
	if !p.check(lexer.NUMBER) && !p.check(lexer.IDENTIFIER) {
		return nil, p.errorf("expected boolean expression but found %s", p.describe())
	}
	left, err := p.arith()
	if err != nil {
		return nil, err
	}
	switch {
	case p.match(lexer.EQUAL):
		right, err := p.arith()
		if err != nil {
			return nil, err
		}
		return ast.Equal{Left: left, Right: right}, nil
	case p.match(lexer.LESS_EQUAL):
		right, err := p.arith()
		if err != nil {
			return nil, err
		}
		return ast.LessEq{Left: left, Right: right}, nil
	case p.match(lexer.GREATER):
		right, err := p.arith()
		if err != nil {
			return nil, err
		}
		return ast.Greater{Left: left, Right: right}, nil
	default:
		return nil, p.errorf("expected '=', '<=' or '>' but found %s", p.describe())
	}
}

func (p *Parser) arith() (ast.Arith, error) {
	var left ast.Arith
	switch {
	case p.match(lexer.NUMBER):
		n, _ := p.previous().Literal.Get()
		left = ast.Num{Value: n}
	case p.match(lexer.IDENTIFIER):
		left = ast.Var{Name: p.previous().Lexeme}
	default:
		return nil, p.errorf("expected arithmetic expression but found %s", p.describe())
	}
	if !p.match(lexer.PLUS, lexer.MINUS, lexer.STAR) {
		return left, nil
	}
	op := p.previous().Type
	right, err := p.arith()
	if err != nil {
		return nil, err
	}
	switch op {
	case lexer.PLUS:
		return ast.Add{Left: left, Right: right}, nil
	case lexer.MINUS:
		return ast.Sub{Left: left, Right: right}, nil
	default:
		return ast.Mul{Left: left, Right: right}, nil
	}
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(typ lexer.TokenType, format string, args ...interface{}) error {
	if p.check(typ) {
		p.advance()
		return nil
	}
	return p.errorf("%s but found %s", fmt.Sprintf(format, args...), p.describe())
}

func (p *Parser) check(typ lexer.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() {
	if !p.atEnd() {
		p.current++
	}
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) describe() string {
	if p.atEnd() {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", p.peek().Lexeme)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: p.peek().Line, Message: fmt.Sprintf(format, args...)}
}
