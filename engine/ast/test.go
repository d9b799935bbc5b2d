package ast

func MakeBool(b bool) Bool {
	if b {
		return True{}
	}
	return False{}
}

// Chain nests statements to the right, the shape the parser gives to
// `s1; s2; s3`.
func Chain(first Stmt, rest ...Stmt) Stmt {
	if len(rest) == 0 {
		return first
	}
	return Seq{First: first, Second: Chain(rest[0], rest[1:]...)}
}

var TestExamples []Node

func init() {
	// This should not contain duplicates
	// Used in ast_test.go to check if each element
	// is equal to only itself.
	TestExamples = []Node{
		Var{Name: "x"},
		Var{Name: "y"},
		Num{Value: 0},
		Num{Value: -7},
		Add{Left: Num{Value: 1}, Right: Var{Name: "x"}},
		Sub{Left: Num{Value: 1}, Right: Var{Name: "x"}},
		Mul{Left: Num{Value: 1}, Right: Var{Name: "x"}},
		Sub{Left: Num{Value: 10}, Right: Sub{Left: Num{Value: 3}, Right: Num{Value: 2}}},
		True{},
		False{},
		Equal{Left: Var{Name: "x"}, Right: Num{Value: 1}},
		LessEq{Left: Var{Name: "x"}, Right: Num{Value: 1}},
		Greater{Left: Var{Name: "x"}, Right: Num{Value: 1}},
		Not{Operand: Not{Operand: Not{Operand: False{}}}},
		Or{Left: Not{Operand: True{}}, Right: False{}},
		Skip{},
		Assign{Name: "x", Value: Num{Value: 1}},
		Assign{Name: "y", Value: Num{Value: 1}},
		Seq{First: Skip{}, Second: Assign{Name: "x", Value: Num{Value: 1}}},
		IfElse{Condition: True{}, ThenDo: Skip{}, ElseDo: Assign{Name: "x", Value: Num{Value: 1}}},
		While{Condition: False{}, Body: Skip{}},
	}
}
