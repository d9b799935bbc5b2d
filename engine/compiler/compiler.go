// Package compiler translates a simpl AST into an equivalent C program.
//
// Every sub-expression is parenthesized in the output, so the grouping the
// parser chose survives C's own operator precedence. No optimization is done.
package compiler

import (
	"fmt"
	"strings"

	"simpl/engine/ast"
	"simpl/engine/interpreter"
)

// ResultVariable is the variable whose final value a program reports.
const ResultVariable = "result"

// namePrefix is prepended to every variable in the generated C, so that
// simpl names such as `int`, `main` or `printf` never clash with C keywords
// or with identifiers declared by <stdio.h>.
const namePrefix = "v_"

func cName(name string) string {
	return namePrefix + name
}

type Compiler struct {
	names *Names
}

var _ ast.VisitorString = Compiler{}

// Compile returns the C statements for program and registers every assigned
// name in names. Reading a variable that no earlier assignment (in program
// text order) has registered is an *interpreter.UndefinedVariableError.
//
// The check follows the text, not the paths a run can take: in
// `if false then x := 1 else skip; result := x` the read of x compiles, and
// the C program prints 0 where evaluation fails with an undefined variable.
func Compile(program ast.Stmt, names *Names) (string, error) {
	return program.AcceptString(Compiler{names: names})
}

// Program compiles program into a complete C translation unit that declares
// every assigned variable, runs the body and prints the result variable.
func Program(program ast.Stmt) (string, error) {
	names := NewNames()
	body, err := Compile(program, names)
	if err != nil {
		return "", err
	}
	if !names.Contains(ResultVariable) {
		return "", fmt.Errorf("program never assigns '%s': %w", ResultVariable, &interpreter.UndefinedVariableError{Name: ResultVariable})
	}
	var sb strings.Builder
	sb.WriteString("#include <stdio.h>\n")
	sb.WriteString("int main() {")
	for _, name := range names.Sorted() {
		sb.WriteString(fmt.Sprintf("int %s = 0;", cName(name)))
	}
	sb.WriteString(body)
	sb.WriteString(fmt.Sprintf(" printf(\"%s := %%d\\n\", %s);", ResultVariable, cName(ResultVariable)))
	sb.WriteString("}")
	return sb.String(), nil
}

func (c Compiler) binary(left ast.Node, op string, right ast.Node) (string, error) {
	l, err := left.AcceptString(c)
	if err != nil {
		return "", err
	}
	r, err := right.AcceptString(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s) %s (%s)", l, op, r), nil
}

func (c Compiler) VisitVar(name string) (string, error) {
	if !c.names.Contains(name) {
		return "", &interpreter.UndefinedVariableError{Name: name}
	}
	return cName(name), nil
}

func (c Compiler) VisitNum(n int32) (string, error) {
	return fmt.Sprintf("%d", n), nil
}

func (c Compiler) VisitAdd(left, right ast.Arith) (string, error) { return c.binary(left, "+", right) }
func (c Compiler) VisitSub(left, right ast.Arith) (string, error) { return c.binary(left, "-", right) }
func (c Compiler) VisitMul(left, right ast.Arith) (string, error) { return c.binary(left, "*", right) }

func (c Compiler) VisitTrue() (string, error)  { return "1", nil }
func (c Compiler) VisitFalse() (string, error) { return "0", nil }

func (c Compiler) VisitEqual(left, right ast.Arith) (string, error) {
	return c.binary(left, "==", right)
}

func (c Compiler) VisitLessEq(left, right ast.Arith) (string, error) {
	return c.binary(left, "<=", right)
}

func (c Compiler) VisitGreater(left, right ast.Arith) (string, error) {
	return c.binary(left, ">", right)
}

func (c Compiler) VisitNot(operand ast.Bool) (string, error) {
	b, err := operand.AcceptString(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("!(%s)", b), nil
}

// VisitOr relies on C's || which short-circuits like the interpreter does.
func (c Compiler) VisitOr(left, right ast.Bool) (string, error) {
	return c.binary(left, "||", right)
}

func (c Compiler) VisitSkip() (string, error) {
	return "", nil
}

func (c Compiler) VisitAssign(name string, value ast.Arith) (string, error) {
	v, err := value.AcceptString(c)
	if err != nil {
		return "", err
	}
	c.names.Add(name)
	return fmt.Sprintf("%s = %s;", cName(name), v), nil
}

func (c Compiler) VisitSeq(first, second ast.Stmt) (string, error) {
	f, err := first.AcceptString(c)
	if err != nil {
		return "", err
	}
	s, err := second.AcceptString(c)
	if err != nil {
		return "", err
	}
	return f + " " + s, nil
}

func (c Compiler) VisitIfElse(condition ast.Bool, thenDo, elseDo ast.Stmt) (string, error) {
	cond, err := condition.AcceptString(c)
	if err != nil {
		return "", err
	}
	t, err := thenDo.AcceptString(c)
	if err != nil {
		return "", err
	}
	e, err := elseDo.AcceptString(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("if (%s) {%s} else {%s}", cond, t, e), nil
}

func (c Compiler) VisitWhile(condition ast.Bool, body ast.Stmt) (string, error) {
	cond, err := condition.AcceptString(c)
	if err != nil {
		return "", err
	}
	b, err := body.AcceptString(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("while (%s) {%s}", cond, b), nil
}
