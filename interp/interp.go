package interp

import (
	"fmt"
	"io"
	"math"

	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/ast"
	"github.com/wyzer-lang/wyzer/errors"
)

type VariableInfo struct {
	Kind  ast.DeclKind
	Value Value
}

type Interpreter struct {
	out  io.Writer
	vars map[string]VariableInfo
	line int
}

func New(out io.Writer) *Interpreter {
	return &Interpreter{
		out:  out,
		vars: map[string]VariableInfo{},
	}
}

func (i *Interpreter) fail(msg string, fmts ...interface{}) {
	panic(errors.RuntimeError{
		Message: fmt.Sprintf(msg, fmts...),
		Line:    i.line,
	})
}

func recoverRuntime(err *error) {
	if r := recover(); r != nil {
		rerr, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = tracerr.Wrap(rerr)
	}
}

// ExecuteFunction runs the body of fn against a fresh variable namespace.
func (i *Interpreter) ExecuteFunction(fn *ast.FunctionDecl) (err error) {
	defer recoverRuntime(&err)

	i.vars = map[string]VariableInfo{}
	i.line = fn.Line
	i.executeBlock(fn.Body)

	return nil
}

// Evaluate evaluates expr against the variables of the last execution.
func (i *Interpreter) Evaluate(expr ast.Expr) (v Value, err error) {
	defer recoverRuntime(&err)

	return i.evaluate(expr), nil
}

// Lookup returns the variable as left behind by the last execution.
func (i *Interpreter) Lookup(name string) (VariableInfo, bool) {
	info, ok := i.vars[name]
	return info, ok
}

// executeBlock reports whether a return statement ended the block.
func (i *Interpreter) executeBlock(body []ast.Stmt) bool {
	for _, stmt := range body {
		if i.executeStmt(stmt) {
			return true
		}
	}
	return false
}

func (i *Interpreter) write(s string) {
	if _, err := io.WriteString(i.out, s); err != nil {
		panic(err)
	}
}

func (i *Interpreter) executeStmt(s ast.Stmt) bool {
	i.line = s.StmtLine()

	switch stmt := s.(type) {
	case ast.PrintStmt:
		v := i.evaluate(stmt.Expr)
		i.write(v.String())
		if stmt.Newline {
			i.write("\n")
		}
	case ast.ReturnStmt:
		v := i.evaluate(stmt.Expr)
		i.write(v.String() + "\n")
		return true
	case ast.LoopStmt:
		for {
			i.executeBlock(stmt.Body)
		}
	case ast.IfStmt:
		cond, ok := i.evaluate(stmt.Condition).(Boolean)
		if !ok {
			i.fail("TypeError: if condition must be a boolean")
		}
		if cond {
			i.executeBlock(stmt.Then)
		} else {
			i.executeBlock(stmt.Else)
		}
	case ast.VariableDeclStmt:
		i.vars[stmt.Name] = VariableInfo{
			Kind:  stmt.Kind,
			Value: i.evaluate(stmt.Initializer),
		}
	default:
		panic("unhandled")
	}

	return false
}

func (i *Interpreter) evaluate(e ast.Expr) Value {
	switch expr := e.(type) {
	case ast.LiteralExpr:
		return classifyLiteral(expr.Raw)
	case ast.VariableExpr:
		info, ok := i.vars[expr.Name]
		if !ok {
			i.fail("undefined variable '%s'", expr.Name)
		}
		return info.Value
	case ast.BinaryExpr:
		left := i.evaluate(expr.Left)
		right := i.evaluate(expr.Right)
		return i.binary(expr.Op, left, right)
	default:
		panic("unhandled")
	}
}

func (i *Interpreter) typeError(op string, left, right Value) {
	i.fail("TypeError: unsupported operand types for '%s': %s and %s", op, left.TypeName(), right.TypeName())
}

func (i *Interpreter) binary(op string, left, right Value) Value {
	switch l := left.(type) {
	case Number:
		r, ok := right.(Number)
		if !ok {
			break
		}
		switch op {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		case "/":
			if r == 0 {
				i.fail("Division by zero")
			}
			return l / r
		case "%":
			return Number(math.Mod(float64(l), float64(r)))
		case "==":
			return Boolean(l == r)
		case "!=":
			return Boolean(l != r)
		case "<":
			return Boolean(l < r)
		case ">":
			return Boolean(l > r)
		case "<=":
			return Boolean(l <= r)
		case ">=":
			return Boolean(l >= r)
		}
	case String:
		r, ok := right.(String)
		if !ok {
			break
		}
		switch op {
		case "+":
			return l + r
		case "==":
			return Boolean(l == r)
		case "!=":
			return Boolean(l != r)
		}
	case Boolean:
		r, ok := right.(Boolean)
		if !ok {
			break
		}
		switch op {
		case "==":
			return Boolean(l == r)
		case "!=":
			return Boolean(l != r)
		}
	}

	i.typeError(op, left, right)
	return nil
}
