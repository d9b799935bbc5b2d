// Package ast defines the three node families of a simpl program: arithmetic
// expressions, boolean expressions and statements. Each family is closed:
// only the types in this package implement it, and every traversal is a
// visitor with one method per variant.
package ast

type VisitorInt interface {
	VisitVar(name string) (int32, error)
	VisitNum(n int32) (int32, error)
	VisitAdd(left, right Arith) (int32, error)
	VisitSub(left, right Arith) (int32, error)
	VisitMul(left, right Arith) (int32, error)
}

type VisitorBool interface {
	VisitTrue() (bool, error)
	VisitFalse() (bool, error)
	VisitEqual(left, right Arith) (bool, error)
	VisitLessEq(left, right Arith) (bool, error)
	VisitGreater(left, right Arith) (bool, error)
	VisitNot(operand Bool) (bool, error)
	VisitOr(left, right Bool) (bool, error)
}

type VisitorStmt interface {
	VisitSkip() error
	VisitAssign(name string, value Arith) error
	VisitSeq(first, second Stmt) error
	VisitIfElse(condition Bool, thenDo, elseDo Stmt) error
	VisitWhile(condition Bool, body Stmt) error
}

type VisitorString interface {
	VisitVar(name string) (string, error)
	VisitNum(n int32) (string, error)
	VisitAdd(left, right Arith) (string, error)
	VisitSub(left, right Arith) (string, error)
	VisitMul(left, right Arith) (string, error)

	VisitTrue() (string, error)
	VisitFalse() (string, error)
	VisitEqual(left, right Arith) (string, error)
	VisitLessEq(left, right Arith) (string, error)
	VisitGreater(left, right Arith) (string, error)
	VisitNot(operand Bool) (string, error)
	VisitOr(left, right Bool) (string, error)

	VisitSkip() (string, error)
	VisitAssign(name string, value Arith) (string, error)
	VisitSeq(first, second Stmt) (string, error)
	VisitIfElse(condition Bool, thenDo, elseDo Stmt) (string, error)
	VisitWhile(condition Bool, body Stmt) (string, error)
}

type Node interface {
	AcceptString(v VisitorString) (string, error)
}

type Arith interface {
	Node
	AcceptInt(v VisitorInt) (int32, error)
	arith()
}

type Bool interface {
	Node
	AcceptBool(v VisitorBool) (bool, error)
	boolean()
}

type Stmt interface {
	Node
	AcceptStmt(v VisitorStmt) error
	stmt()
}

var _ Arith = Var{}
var _ Arith = Num{}
var _ Arith = Add{}
var _ Arith = Sub{}
var _ Arith = Mul{}

var _ Bool = True{}
var _ Bool = False{}
var _ Bool = Equal{}
var _ Bool = LessEq{}
var _ Bool = Greater{}
var _ Bool = Not{}
var _ Bool = Or{}

var _ Stmt = Skip{}
var _ Stmt = Assign{}
var _ Stmt = Seq{}
var _ Stmt = IfElse{}
var _ Stmt = While{}

//
// Arithmetic expressions
//

type Var struct {
	Name string
}

type Num struct {
	Value int32
}

type Add struct {
	Left  Arith
	Right Arith
}

type Sub struct {
	Left  Arith
	Right Arith
}

type Mul struct {
	Left  Arith
	Right Arith
}

func (Var) arith() {}
func (Num) arith() {}
func (Add) arith() {}
func (Sub) arith() {}
func (Mul) arith() {}

func (a Var) AcceptInt(v VisitorInt) (int32, error) { return v.VisitVar(a.Name) }
func (a Num) AcceptInt(v VisitorInt) (int32, error) { return v.VisitNum(a.Value) }
func (a Add) AcceptInt(v VisitorInt) (int32, error) { return v.VisitAdd(a.Left, a.Right) }
func (a Sub) AcceptInt(v VisitorInt) (int32, error) { return v.VisitSub(a.Left, a.Right) }
func (a Mul) AcceptInt(v VisitorInt) (int32, error) { return v.VisitMul(a.Left, a.Right) }

func (a Var) AcceptString(v VisitorString) (string, error) { return v.VisitVar(a.Name) }
func (a Num) AcceptString(v VisitorString) (string, error) { return v.VisitNum(a.Value) }
func (a Add) AcceptString(v VisitorString) (string, error) { return v.VisitAdd(a.Left, a.Right) }
func (a Sub) AcceptString(v VisitorString) (string, error) { return v.VisitSub(a.Left, a.Right) }
func (a Mul) AcceptString(v VisitorString) (string, error) { return v.VisitMul(a.Left, a.Right) }

//
// Boolean expressions
//

type True struct{}

type False struct{}

type Equal struct {
	Left  Arith
	Right Arith
}

type LessEq struct {
	Left  Arith
	Right Arith
}

type Greater struct {
	Left  Arith
	Right Arith
}

type Not struct {
	Operand Bool
}

type Or struct {
	Left  Bool
	Right Bool
}

func (True) boolean()    {}
func (False) boolean()   {}
func (Equal) boolean()   {}
func (LessEq) boolean()  {}
func (Greater) boolean() {}
func (Not) boolean()     {}
func (Or) boolean()      {}

func (b True) AcceptBool(v VisitorBool) (bool, error)    { return v.VisitTrue() }
func (b False) AcceptBool(v VisitorBool) (bool, error)   { return v.VisitFalse() }
func (b Equal) AcceptBool(v VisitorBool) (bool, error)   { return v.VisitEqual(b.Left, b.Right) }
func (b LessEq) AcceptBool(v VisitorBool) (bool, error)  { return v.VisitLessEq(b.Left, b.Right) }
func (b Greater) AcceptBool(v VisitorBool) (bool, error) { return v.VisitGreater(b.Left, b.Right) }
func (b Not) AcceptBool(v VisitorBool) (bool, error)     { return v.VisitNot(b.Operand) }
func (b Or) AcceptBool(v VisitorBool) (bool, error)      { return v.VisitOr(b.Left, b.Right) }

func (b True) AcceptString(v VisitorString) (string, error)  { return v.VisitTrue() }
func (b False) AcceptString(v VisitorString) (string, error) { return v.VisitFalse() }
func (b Equal) AcceptString(v VisitorString) (string, error) {
	return v.VisitEqual(b.Left, b.Right)
}
func (b LessEq) AcceptString(v VisitorString) (string, error) {
	return v.VisitLessEq(b.Left, b.Right)
}
func (b Greater) AcceptString(v VisitorString) (string, error) {
	return v.VisitGreater(b.Left, b.Right)
}
func (b Not) AcceptString(v VisitorString) (string, error) { return v.VisitNot(b.Operand) }
func (b Or) AcceptString(v VisitorString) (string, error)  { return v.VisitOr(b.Left, b.Right) }

//
// Statements
//

// Skip is the empty statement. The parser also produces it for empty
// groupings and trailing semicolons.
type Skip struct{}

type Assign struct {
	Name  string
	Value Arith
}

type Seq struct {
	First  Stmt
	Second Stmt
}

type IfElse struct {
	Condition Bool
	ThenDo    Stmt
	ElseDo    Stmt
}

type While struct {
	Condition Bool
	Body      Stmt
}

func (Skip) stmt()   {}
func (Assign) stmt() {}
func (Seq) stmt()    {}
func (IfElse) stmt() {}
func (While) stmt()  {}

func (s Skip) AcceptStmt(v VisitorStmt) error   { return v.VisitSkip() }
func (s Assign) AcceptStmt(v VisitorStmt) error { return v.VisitAssign(s.Name, s.Value) }
func (s Seq) AcceptStmt(v VisitorStmt) error    { return v.VisitSeq(s.First, s.Second) }
func (s IfElse) AcceptStmt(v VisitorStmt) error {
	return v.VisitIfElse(s.Condition, s.ThenDo, s.ElseDo)
}
func (s While) AcceptStmt(v VisitorStmt) error { return v.VisitWhile(s.Condition, s.Body) }

func (s Skip) AcceptString(v VisitorString) (string, error) { return v.VisitSkip() }
func (s Assign) AcceptString(v VisitorString) (string, error) {
	return v.VisitAssign(s.Name, s.Value)
}
func (s Seq) AcceptString(v VisitorString) (string, error) { return v.VisitSeq(s.First, s.Second) }
func (s IfElse) AcceptString(v VisitorString) (string, error) {
	return v.VisitIfElse(s.Condition, s.ThenDo, s.ElseDo)
}
func (s While) AcceptString(v VisitorString) (string, error) {
	return v.VisitWhile(s.Condition, s.Body)
}
