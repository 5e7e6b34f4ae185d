package ast

import (
	"bytes"
	"testing"
)

func TestExprString(t *testing.T) {
	expr := BinaryExpr{
		Op:   "+",
		Left: LiteralExpr{Raw: "2"},
		Right: BinaryExpr{
			Op:    "*",
			Left:  VariableExpr{Name: "x"},
			Right: LiteralExpr{Raw: `"4"`},
		},
	}

	if got := ExprString(expr); got != `(2 + (x * "4"))` {
		t.Errorf("got %s", got)
	}
}

func TestFprint(t *testing.T) {
	prog := &Program{
		Declarations: []FunctionDecl{
			{
				Name:       "main",
				ReturnType: "void",
				Body: []Stmt{
					VariableDeclStmt{Name: "x", Kind: Let, DeclaredType: "int", Initializer: LiteralExpr{Raw: "1"}},
					LoopStmt{Body: []Stmt{
						IfStmt{
							Condition: BinaryExpr{Op: "<", Left: VariableExpr{Name: "x"}, Right: LiteralExpr{Raw: "3"}},
							Then:      []Stmt{PrintStmt{Expr: VariableExpr{Name: "x"}, Newline: true}},
							Else:      []Stmt{ReturnStmt{Expr: LiteralExpr{Raw: "0"}}},
						},
					}},
				},
			},
			{
				Name:       "add",
				Params:     []Param{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}},
				ReturnType: "int",
				Body:       []Stmt{PrintStmt{Expr: VariableExpr{Name: "a"}}},
			},
		},
	}

	var buf bytes.Buffer
	Fprint(&buf, prog)

	expected := `Function fnc main() -> void
  let x: int = 1
  Loop
    If (x < 3)
      Println x
    Else
      Return 0
Function fnc add(a: int, b: int) -> int
  Print a
`
	if buf.String() != expected {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestLookup(t *testing.T) {
	prog := &Program{Declarations: []FunctionDecl{{Name: "helper"}, {Name: "main", Line: 4}}}

	if fn := prog.Main(); fn == nil || fn.Line != 4 {
		t.Errorf("got %v", fn)
	}
	if prog.Lookup("missing") != nil {
		t.Errorf("expected nil for an unknown function")
	}
}
