package codegen

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/segmentio/fasthash/fnv1a"
	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/ast"
	"github.com/wyzer-lang/wyzer/errors"
)

// FunctionPrefix is prepended to every lowered function so user names never
// clash with libc.
const FunctionPrefix = "wyzer_"

type Settings struct {
	// Executable adds a C main calling the program's main function.
	Executable bool
}

type variable struct {
	kind kind
	ptr  value.Value
}

type typed struct {
	kind kind
	value.Value
}

type ctx struct {
	module          *ir.Module
	builtins        map[string]*ir.Func
	stringConstants map[string]value.Value

	fn    *ast.FunctionDecl
	entry *ir.Block
	block *ir.Block
	names map[string]variable
	line  int
}

func (c *ctx) fail(msg string, fmts ...interface{}) {
	panic(errors.CodegenError{
		Function: c.fn.Name,
		Message:  fmt.Sprintf(msg, fmts...),
		Line:     c.line,
	})
}

func hash(s string) string {
	return strconv.FormatUint(fnv1a.HashString64(s), 16)
}

// stringConstant returns an i8* to a NUL terminated global holding s.
func (c *ctx) stringConstant(s string) value.Value {
	rawdata, ok := c.stringConstants[s]
	if !ok {
		g := c.module.NewGlobalDef("_str_"+hash(s), constant.NewCharArrayFromString(s+"\x00"))
		g.Immutable = true
		rawdata = g

		c.stringConstants[s] = rawdata
	}

	return c.block.NewBitCast(rawdata, String)
}

func (c *ctx) printf(format string, args ...value.Value) {
	c.block.NewCall(c.builtins["printf"], append([]value.Value{c.stringConstant(format)}, args...)...)
}

func (c *ctx) literal(raw string) typed {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return typed{kindString, c.stringConstant(raw[1 : len(raw)-1])}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return typed{kindNumber, constant.NewFloat(types.Double, n)}
	}
	return typed{kindString, c.stringConstant(raw)}
}

var fpreds = map[string]enum.FPred{
	"==": enum.FPredOEQ,
	"!=": enum.FPredONE,
	"<":  enum.FPredOLT,
	">":  enum.FPredOGT,
	"<=": enum.FPredOLE,
	">=": enum.FPredOGE,
}

var ipreds = map[string]enum.IPred{
	"==": enum.IPredEQ,
	"!=": enum.IPredNE,
}

func isZero(v value.Value) bool {
	f, ok := v.(*constant.Float)
	return ok && f.X.Sign() == 0
}

func (c *ctx) binary(op string, l, r typed) typed {
	if l.kind != r.kind {
		c.fail("TypeError: unsupported operand types for '%s': %s and %s", op, l.kind, r.kind)
	}

	b := c.block
	switch l.kind {
	case kindNumber:
		switch op {
		case "+":
			return typed{kindNumber, b.NewFAdd(l.Value, r.Value)}
		case "-":
			return typed{kindNumber, b.NewFSub(l.Value, r.Value)}
		case "*":
			return typed{kindNumber, b.NewFMul(l.Value, r.Value)}
		case "/":
			if isZero(r.Value) {
				c.fail("Division by zero")
			}
			return typed{kindNumber, b.NewFDiv(l.Value, r.Value)}
		case "%":
			return typed{kindNumber, b.NewFRem(l.Value, r.Value)}
		}
		if pred, ok := fpreds[op]; ok {
			return typed{kindBoolean, b.NewFCmp(pred, l.Value, r.Value)}
		}
	case kindString:
		if pred, ok := ipreds[op]; ok {
			cmp := b.NewCall(c.builtins["strcmp"], l.Value, r.Value)
			return typed{kindBoolean, b.NewICmp(pred, cmp, constant.NewInt(types.I32, 0))}
		}
		if op == "+" {
			c.fail("string concatenation is not supported by the LLVM backend")
		}
	case kindBoolean:
		if pred, ok := ipreds[op]; ok {
			return typed{kindBoolean, b.NewICmp(pred, l.Value, r.Value)}
		}
	}

	c.fail("TypeError: unsupported operand types for '%s': %s and %s", op, l.kind, r.kind)
	return typed{}
}

func (c *ctx) expression(e ast.Expr) typed {
	switch expr := e.(type) {
	case ast.LiteralExpr:
		return c.literal(expr.Raw)
	case ast.VariableExpr:
		v, ok := c.names[expr.Name]
		if !ok {
			c.fail("undefined variable '%s'", expr.Name)
		}
		return typed{v.kind, c.block.NewLoad(v.kind.llvmType(), v.ptr)}
	case ast.BinaryExpr:
		left := c.expression(expr.Left)
		right := c.expression(expr.Right)
		return c.binary(expr.Op, left, right)
	default:
		panic("unhandled")
	}
}

func (c *ctx) print(v typed, newline bool) {
	suffix := ""
	if newline {
		suffix = "\n"
	}

	switch v.kind {
	case kindNumber:
		c.printf("%g"+suffix, v.Value)
	case kindString:
		c.printf("%s"+suffix, v.Value)
	case kindBoolean:
		text := c.block.NewSelect(v.Value, c.stringConstant("true"), c.stringConstant("false"))
		c.printf("%s"+suffix, text)
	}
}

// statements lowers body into the current block. It stops after a return or a
// loop; the latter leaves the context without a current block.
func (c *ctx) statements(body []ast.Stmt) {
	for _, stmt := range body {
		if c.statement(stmt) {
			return
		}
	}
}

func (c *ctx) statement(s ast.Stmt) bool {
	c.line = s.StmtLine()

	switch stmt := s.(type) {
	case ast.PrintStmt:
		c.print(c.expression(stmt.Expr), stmt.Newline)
	case ast.ReturnStmt:
		c.print(c.expression(stmt.Expr), true)
		return true
	case ast.VariableDeclStmt:
		val := c.expression(stmt.Initializer)
		v, ok := c.names[stmt.Name]
		if ok && v.kind != val.kind {
			c.fail("variable '%s' changes type from %s to %s", stmt.Name, v.kind, val.kind)
		}
		if !ok {
			v = variable{kind: val.kind, ptr: c.entry.NewAlloca(val.kind.llvmType())}
			c.names[stmt.Name] = v
		}
		c.block.NewStore(val.Value, v.ptr)
	case ast.IfStmt:
		cond := c.expression(stmt.Condition)
		if cond.kind != kindBoolean {
			c.fail("TypeError: if condition must be a boolean")
		}

		fn := c.block.Parent
		thenBloc := fn.NewBlock("")
		elseBloc := fn.NewBlock("")
		mergeBloc := fn.NewBlock("")
		c.block.NewCondBr(cond.Value, thenBloc, elseBloc)

		for _, branch := range []struct {
			bloc *ir.Block
			body []ast.Stmt
		}{{thenBloc, stmt.Then}, {elseBloc, stmt.Else}} {
			c.block = branch.bloc
			c.statements(branch.body)
			if c.block != nil {
				c.block.NewBr(mergeBloc)
			}
		}

		c.block = mergeBloc
	case ast.LoopStmt:
		fn := c.block.Parent
		body := fn.NewBlock("")
		c.block.NewBr(body)

		c.block = body
		c.statements(stmt.Body)
		if c.block != nil {
			c.block.NewBr(body)
		}
		c.block = nil
		return true
	default:
		panic("unhandled")
	}

	return false
}

func (c *ctx) function(decl *ast.FunctionDecl, fn *ir.Func) {
	c.fn = decl
	c.line = decl.Line
	c.names = map[string]variable{}
	c.entry = fn.NewBlock("entry")
	c.block = fn.NewBlock("")
	c.entry.NewBr(c.block)

	c.statements(decl.Body)

	if c.block != nil {
		c.block.NewRet(nil)
	}
}

// Lower translates the program into an LLVM module. Every function becomes a
// void function without parameters.
func Lower(p *ast.Program, s Settings) (m *ir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				m = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	modu := ir.NewModule()
	c := &ctx{
		module:          modu,
		builtins:        addBuiltins(modu),
		stringConstants: map[string]value.Value{},
	}

	funcs := make([]*ir.Func, len(p.Declarations))
	for i, decl := range p.Declarations {
		funcs[i] = modu.NewFunc(FunctionPrefix+decl.Name, types.Void)
	}
	for i := range p.Declarations {
		c.function(&p.Declarations[i], funcs[i])
	}

	registerTypeInfoWithModule(typeInfoOf(p), modu)

	if s.Executable {
		for i, decl := range p.Declarations {
			if decl.Name != "main" {
				continue
			}
			opening := modu.NewFunc("main", types.I32)
			bloc := opening.NewBlock("entry")
			bloc.NewCall(funcs[i])
			bloc.NewRet(constant.NewInt(types.I32, 0))
			break
		}
	}

	return modu, nil
}
