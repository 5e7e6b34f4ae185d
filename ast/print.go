package ast

import (
	"fmt"
	"io"
	"strings"
)

func (f FunctionDecl) String() string {
	var args []string
	for _, arg := range f.Params {
		args = append(args, arg.Name+": "+arg.Type)
	}
	return fmt.Sprintf("fnc %s(%s) -> %s", f.Name, strings.Join(args, ", "), f.ReturnType)
}

// ExprString renders an expression fully parenthesised.
func ExprString(e Expr) string {
	switch expr := e.(type) {
	case LiteralExpr:
		return expr.Raw
	case VariableExpr:
		return expr.Name
	case BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", ExprString(expr.Left), expr.Op, ExprString(expr.Right))
	case nil:
		return "<nil>"
	}

	panic("unhandled")
}

// Fprint writes an indented dump of the program.
func Fprint(w io.Writer, p *Program) {
	for _, fn := range p.Declarations {
		fmt.Fprintf(w, "Function %s\n", fn)
		printBlock(w, fn.Body, 1)
	}
}

func indent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func printBlock(w io.Writer, body []Stmt, depth int) {
	for _, s := range body {
		printStmt(w, s, depth)
	}
}

func printStmt(w io.Writer, s Stmt, depth int) {
	indent(w, depth)

	switch stmt := s.(type) {
	case PrintStmt:
		if stmt.Newline {
			fmt.Fprintf(w, "Println %s\n", ExprString(stmt.Expr))
		} else {
			fmt.Fprintf(w, "Print %s\n", ExprString(stmt.Expr))
		}
	case ReturnStmt:
		fmt.Fprintf(w, "Return %s\n", ExprString(stmt.Expr))
	case LoopStmt:
		fmt.Fprintln(w, "Loop")
		printBlock(w, stmt.Body, depth+1)
	case IfStmt:
		fmt.Fprintf(w, "If %s\n", ExprString(stmt.Condition))
		printBlock(w, stmt.Then, depth+1)
		if len(stmt.Else) > 0 {
			indent(w, depth)
			fmt.Fprintln(w, "Else")
			printBlock(w, stmt.Else, depth+1)
		}
	case VariableDeclStmt:
		fmt.Fprintf(w, "%s %s: %s = %s\n", stmt.Kind, stmt.Name, stmt.DeclaredType, ExprString(stmt.Initializer))
	default:
		fmt.Fprintln(w, "Unknown Statement")
	}
}
