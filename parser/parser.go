package parser

import (
	"fmt"

	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/ast"
	"github.com/wyzer-lang/wyzer/errors"
	"github.com/wyzer-lang/wyzer/types"
)

type Parser struct {
	tokens []types.Token
	pos    int
	ast    ast.Program
}

func NewParser(tokens []types.Token) Parser {
	return Parser{tokens: tokens}
}

// Parse builds a Program from tokens produced by the lexer.
func Parse(tokens []types.Token) (*ast.Program, error) {
	p := NewParser(tokens)
	return p.Parse()
}

func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				prog = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	for !p.peekIs(types.EOF) {
		tok := p.peek()
		if !tok.Is(types.KEYWORD, "fnc") {
			panic(errors.ParseError{
				Message: fmt.Sprintf("Unexpected token '%s'", tok.Text),
				Line:    tok.Line,
			})
		}
		p.ast.Declarations = append(p.ast.Declarations, p.parseFunction())
	}

	p.checkForMain()

	return &p.ast, nil
}

func (p *Parser) peek() types.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		return types.Token{Kind: types.EOF, Line: last.Line}
	}
	return types.Token{Kind: types.EOF}
}

func (p *Parser) advance() types.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) peekIs(k ...types.TokenKind) bool {
	token := p.peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (p *Parser) peekKeyword(words ...string) bool {
	token := p.peek()
	for _, word := range words {
		if token.Is(types.KEYWORD, word) {
			return true
		}
	}

	return false
}

func (p *Parser) expect(kind types.TokenKind, what string) types.Token {
	if !p.peekIs(kind) {
		panic(errors.ExpectedKindGotKind(what, p.peek()))
	}
	return p.advance()
}

// parseType accepts identifiers and the builtin type keywords.
func (p *Parser) parseType(what string) string {
	if !p.peekIs(types.IDENTIFIER, types.KEYWORD) {
		panic(errors.ExpectedKindGotKind(what, p.peek()))
	}
	return p.advance().Text
}

func (p *Parser) checkForMain() {
	if p.ast.Main() == nil {
		panic(errors.ParseError{
			Message: "No 'main' function found",
			Line:    p.peek().Line,
		})
	}
}

func (p *Parser) parseFunction() ast.FunctionDecl {
	fncTok := p.advance()
	name := p.expect(types.IDENTIFIER, "function name").Text

	p.expect(types.LPAREN, "opening parenthesis '('")

	var params []ast.Param
	if !p.peekIs(types.RPAREN) {
		for {
			paramName := p.expect(types.IDENTIFIER, "parameter name").Text
			p.expect(types.COLON, "colon ':' after parameter name")
			paramType := p.parseType("parameter type")

			params = append(params, ast.Param{
				Name: paramName,
				Type: paramType,
			})

			if p.peekIs(types.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(types.RPAREN, "closing parenthesis ')' after parameters")

	returnType := "void"
	if p.peekIs(types.ARROW) {
		p.advance()
		returnType = p.parseType("return type after '->'")
	}

	p.expect(types.LBRACE, "function body '{'")
	body := p.parseBlock("Unclosed function body (missing '}')", fncTok)

	return ast.FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Line:       fncTok.Line,
	}
}

// parseBlock should be called with the parser past the opening brace. An
// unclosed block is reported at the line of opener.
func (p *Parser) parseBlock(unclosed string, opener types.Token) []ast.Stmt {
	var statements []ast.Stmt

	for !p.peekIs(types.RBRACE) {
		if p.peekIs(types.EOF) {
			panic(errors.ParseError{
				Message: fmt.Sprintf("%s starting", unclosed),
				Line:    opener.Line,
			})
		}
		statements = append(statements, p.parseStatement())
	}
	p.advance()

	return statements
}

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()

	switch {
	case tok.Is(types.KEYWORD, "return"):
		p.advance()
		expr := p.parseExpression()
		p.expect(types.SEMICOLON, "semicolon ';' after return statement")
		return ast.ReturnStmt{Expr: expr, Line: tok.Line}
	case p.peekKeyword("log", "logln"):
		p.advance()
		p.expect(types.LPAREN, fmt.Sprintf("opening '(' after %s", tok.Text))
		expr := p.parseExpression()
		p.expect(types.RPAREN, fmt.Sprintf("closing ')' after %s argument", tok.Text))
		p.expect(types.SEMICOLON, fmt.Sprintf("semicolon ';' after %s", tok.Text))
		return ast.PrintStmt{Expr: expr, Newline: tok.Text == "logln", Line: tok.Line}
	case tok.Is(types.KEYWORD, "loop"):
		p.advance()
		p.expect(types.LBRACE, "opening brace '{' after loop")
		return ast.LoopStmt{Body: p.parseBlock("Unclosed loop block", tok), Line: tok.Line}
	case p.peekKeyword("let", "var"):
		p.advance()
		return p.parseVariableDecl(tok)
	case tok.Is(types.KEYWORD, "if"):
		p.advance()
		return p.parseIf(tok)
	}

	panic(errors.ParseError{
		Message: fmt.Sprintf("Unexpected token '%s'", tok.Text),
		Line:    tok.Line,
	})
}

// parseVariableDecl should be called past the let/var keyword.
func (p *Parser) parseVariableDecl(kw types.Token) ast.Stmt {
	name := p.expect(types.IDENTIFIER, fmt.Sprintf("variable name after '%s'", kw.Text)).Text

	declared := "auto"
	if p.peekIs(types.COLON) {
		p.advance()
		declared = p.parseType("type after ':'")
	}

	p.expect(types.ASSIGN, "'=' after variable name")
	init := p.parseExpression()
	p.expect(types.SEMICOLON, "semicolon ';' after variable declaration")

	return ast.VariableDeclStmt{
		Name:         name,
		Kind:         ast.DeclKind(kw.Text),
		DeclaredType: declared,
		Initializer:  init,
		Line:         kw.Line,
	}
}

// parseIf should be called past the if keyword.
func (p *Parser) parseIf(ifTok types.Token) ast.Stmt {
	p.expect(types.LPAREN, "'(' after 'if'")
	cond := p.parseExpression()
	p.expect(types.RPAREN, "')' after condition")

	p.expect(types.LBRACE, "'{' after condition")
	then := p.parseBlock("Unclosed 'if' block", ifTok)

	var elseBranch []ast.Stmt
	if p.peekKeyword("else") {
		p.advance()
		p.expect(types.LBRACE, "'{' after 'else'")
		elseBranch = p.parseBlock("Unclosed 'else' block", ifTok)
	}

	return ast.IfStmt{
		Condition: cond,
		Then:      then,
		Else:      elseBranch,
		Line:      ifTok.Line,
	}
}

// notAnOperator sits below every valid precedence and stops the climb.
const notAnOperator = -1

func precedence(tok types.Token) int {
	switch tok.Kind {
	case types.STRING_LITERAL, types.NUMBER_LITERAL, types.IDENTIFIER, types.KEYWORD:
		return notAnOperator
	}

	switch tok.Text {
	case "==", "!=", "<", ">", "<=", ">=":
		return 0
	case "+", "-":
		return 1
	case "*", "/", "%":
		return 2
	}
	return notAnOperator
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrecedence int) ast.Expr {
	left := p.parsePrimary()

	for {
		op := p.peek()
		prec := precedence(op)
		if prec == notAnOperator || prec < minPrecedence {
			return left
		}
		p.advance()

		if p.peekIs(types.SEMICOLON, types.RBRACE, types.EOF) {
			panic(errors.ParseError{
				Message: fmt.Sprintf("Expected expression after '%s'", op.Text),
				Line:    op.Line,
			})
		}

		right := p.parseBinary(prec + 1)
		left = ast.BinaryExpr{
			Op:    op.Text,
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case types.NUMBER_LITERAL:
		p.advance()
		return ast.LiteralExpr{Raw: tok.Text}
	case types.STRING_LITERAL:
		p.advance()
		return ast.LiteralExpr{Raw: `"` + tok.Text + `"`}
	case types.IDENTIFIER:
		p.advance()
		return ast.VariableExpr{Name: tok.Text}
	}

	if tok.Kind == types.EOF {
		panic(errors.ParseError{
			Message: "Unexpected end of file in expression",
			Line:    tok.Line,
		})
	}
	panic(errors.ParseError{
		Message: fmt.Sprintf("Unexpected primary expression '%s'", tok.Text),
		Line:    tok.Line,
	})
}
