package interpreter

import (
	"context"
	"fmt"

	"simpl/engine/ast"
)

// Interpreter evaluates a tree against a single environment, which it
// mutates in place.
type Interpreter struct {
	ctx context.Context
	env *Env
}

var _ ast.VisitorInt = Interpreter{}
var _ ast.VisitorBool = Interpreter{}
var _ ast.VisitorStmt = Interpreter{}

func NewInterpreter(ctx context.Context, env *Env) Interpreter {
	if env == nil {
		env = NewEnv()
	}
	return Interpreter{ctx: ctx, env: env}
}

// Eval runs program against env (a fresh one when env is nil) and returns
// the environment after the run. On error the environment keeps every binding
// made before the failing statement.
func Eval(ctx context.Context, program ast.Stmt, env *Env) (*Env, error) {
	i := NewInterpreter(ctx, env)
	return i.env, program.AcceptStmt(i)
}

func (i Interpreter) Env() *Env {
	return i.env
}

func (i Interpreter) EvalArith(a ast.Arith) (int32, error) {
	return a.AcceptInt(i)
}

func (i Interpreter) EvalBool(b ast.Bool) (bool, error) {
	return b.AcceptBool(i)
}

func (i Interpreter) VisitVar(name string) (int32, error) {
	return i.env.Lookup(name)
}

func (i Interpreter) VisitNum(n int32) (int32, error) {
	return n, nil
}

func (i Interpreter) operands(left, right ast.Arith) (int32, int32, error) {
	l, err := left.AcceptInt(i)
	if err != nil {
		return 0, 0, err
	}
	r, err := right.AcceptInt(i)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func (i Interpreter) VisitAdd(left, right ast.Arith) (int32, error) {
	l, r, err := i.operands(left, right)
	return l + r, err
}

func (i Interpreter) VisitSub(left, right ast.Arith) (int32, error) {
	l, r, err := i.operands(left, right)
	return l - r, err
}

func (i Interpreter) VisitMul(left, right ast.Arith) (int32, error) {
	l, r, err := i.operands(left, right)
	return l * r, err
}

func (i Interpreter) VisitTrue() (bool, error) {
	return true, nil
}

func (i Interpreter) VisitFalse() (bool, error) {
	return false, nil
}

func (i Interpreter) VisitEqual(left, right ast.Arith) (bool, error) {
	l, r, err := i.operands(left, right)
	return l == r, err
}

func (i Interpreter) VisitLessEq(left, right ast.Arith) (bool, error) {
	l, r, err := i.operands(left, right)
	return l <= r, err
}

func (i Interpreter) VisitGreater(left, right ast.Arith) (bool, error) {
	l, r, err := i.operands(left, right)
	return l > r, err
}

func (i Interpreter) VisitNot(operand ast.Bool) (bool, error) {
	b, err := operand.AcceptBool(i)
	if err != nil {
		return false, err
	}
	return !b, nil
}

// VisitOr never evaluates right when left is true.
func (i Interpreter) VisitOr(left, right ast.Bool) (bool, error) {
	l, err := left.AcceptBool(i)
	if err != nil || l {
		return l, err
	}
	return right.AcceptBool(i)
}

func (i Interpreter) VisitSkip() error {
	return nil
}

func (i Interpreter) VisitAssign(name string, value ast.Arith) error {
	v, err := value.AcceptInt(i)
	if err != nil {
		return err
	}
	i.env.Bind(name, v)
	return nil
}

func (i Interpreter) VisitSeq(first, second ast.Stmt) error {
	if err := first.AcceptStmt(i); err != nil {
		return err
	}
	return second.AcceptStmt(i)
}

func (i Interpreter) VisitIfElse(condition ast.Bool, thenDo, elseDo ast.Stmt) error {
	cond, err := condition.AcceptBool(i)
	if err != nil {
		return err
	}
	if cond {
		return thenDo.AcceptStmt(i)
	}
	return elseDo.AcceptStmt(i)
}

// VisitWhile loops instead of recursing so that long-running programs do not
// grow the stack. The context is checked once per iteration.
func (i Interpreter) VisitWhile(condition ast.Bool, body ast.Stmt) error {
	for {
		if err := i.ctx.Err(); err != nil {
			return fmt.Errorf("evaluation interrupted: %w", err)
		}
		cond, err := condition.AcceptBool(i)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err = body.AcceptStmt(i); err != nil {
			return err
		}
	}
}
