package ast

type Program struct {
	Declarations []FunctionDecl
}

// Main returns the entry function, or nil if the program has none.
func (p *Program) Main() *FunctionDecl {
	return p.Lookup("main")
}

func (p *Program) Lookup(name string) *FunctionDecl {
	for i := range p.Declarations {
		if p.Declarations[i].Name == name {
			return &p.Declarations[i]
		}
	}
	return nil
}

type Param struct {
	Name string
	Type string
}

type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       []Stmt
	Line       int
}

type Stmt interface {
	is_Stmt()
	StmtLine() int
}

type PrintStmt struct {
	Expr    Expr
	Newline bool
	Line    int
}

func (v PrintStmt) is_Stmt()      {}
func (v PrintStmt) StmtLine() int { return v.Line }

type ReturnStmt struct {
	Expr Expr
	Line int
}

func (v ReturnStmt) is_Stmt()      {}
func (v ReturnStmt) StmtLine() int { return v.Line }

type LoopStmt struct {
	Body []Stmt
	Line int
}

func (v LoopStmt) is_Stmt()      {}
func (v LoopStmt) StmtLine() int { return v.Line }

type IfStmt struct {
	Condition Expr
	Then      []Stmt
	Else      []Stmt
	Line      int
}

func (v IfStmt) is_Stmt()      {}
func (v IfStmt) StmtLine() int { return v.Line }

type DeclKind string

const (
	Let   DeclKind = "let"
	Var   DeclKind = "var"
	Const DeclKind = "const"
)

type VariableDeclStmt struct {
	Name         string
	Kind         DeclKind
	DeclaredType string
	Initializer  Expr
	Line         int
}

func (v VariableDeclStmt) is_Stmt()      {}
func (v VariableDeclStmt) StmtLine() int { return v.Line }

type Expr interface {
	is_Expr()
}

// LiteralExpr keeps the raw lexeme; string literals keep their quotes.
type LiteralExpr struct {
	Raw string
}

func (v LiteralExpr) is_Expr() {}

type VariableExpr struct {
	Name string
}

func (v VariableExpr) is_Expr() {}

type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (v BinaryExpr) is_Expr() {}
