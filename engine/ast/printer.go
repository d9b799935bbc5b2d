package ast

import (
	"fmt"
)

// Printer renders a tree in the prefix notation used by debug output, e.g.
// `(seq: (assign: x, (num: 1)), (skip))`.
type Printer struct{}

var _ VisitorString = Printer{}

// Print never fails: Printer itself returns no errors.
func Print(n Node) string {
	s, _ := n.AcceptString(Printer{})
	return s
}

func (p Printer) binary(tag string, left, right Node) (string, error) {
	return fmt.Sprintf("(%s: %s, %s)", tag, Print(left), Print(right)), nil
}

func (p Printer) VisitVar(name string) (string, error) {
	return fmt.Sprintf("(var: %s)", name), nil
}

func (p Printer) VisitNum(n int32) (string, error) {
	return fmt.Sprintf("(num: %d)", n), nil
}

func (p Printer) VisitAdd(left, right Arith) (string, error) { return p.binary("add", left, right) }
func (p Printer) VisitSub(left, right Arith) (string, error) { return p.binary("sub", left, right) }
func (p Printer) VisitMul(left, right Arith) (string, error) { return p.binary("mul", left, right) }

func (p Printer) VisitTrue() (string, error)  { return "(true)", nil }
func (p Printer) VisitFalse() (string, error) { return "(false)", nil }

func (p Printer) VisitEqual(left, right Arith) (string, error) {
	return p.binary("equal", left, right)
}

func (p Printer) VisitLessEq(left, right Arith) (string, error) {
	return p.binary("leq", left, right)
}

func (p Printer) VisitGreater(left, right Arith) (string, error) {
	return p.binary("greater", left, right)
}

func (p Printer) VisitNot(operand Bool) (string, error) {
	return fmt.Sprintf("(not: %s)", Print(operand)), nil
}

func (p Printer) VisitOr(left, right Bool) (string, error) { return p.binary("or", left, right) }

func (p Printer) VisitSkip() (string, error) { return "(skip)", nil }

func (p Printer) VisitAssign(name string, value Arith) (string, error) {
	return fmt.Sprintf("(assign: %s, %s)", name, Print(value)), nil
}

func (p Printer) VisitSeq(first, second Stmt) (string, error) {
	return p.binary("seq", first, second)
}

func (p Printer) VisitIfElse(condition Bool, thenDo, elseDo Stmt) (string, error) {
	return fmt.Sprintf("(if: %s, %s, %s)", Print(condition), Print(thenDo), Print(elseDo)), nil
}

func (p Printer) VisitWhile(condition Bool, body Stmt) (string, error) {
	return fmt.Sprintf("(while: %s, %s)", Print(condition), Print(body)), nil
}
