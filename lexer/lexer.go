package lexer

import (
	"bufio"
	"io"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/errors"
	"github.com/wyzer-lang/wyzer/types"
)

var keywords = map[string]bool{
	"fnc":    true,
	"let":    true,
	"var":    true,
	"return": true,
	"log":    true,
	"logln":  true,
	"loop":   true,
	"string": true,
	"int":    true,
	"if":     true,
	"else":   true,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	return keywords[s]
}

type Lexer struct {
	line   int
	reader *bufio.Reader
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		line:   1,
		reader: bufio.NewReader(reader),
	}
}

// Tokenize converts source into tokens. The result always ends with an EOF
// token.
func Tokenize(source string) (tokens []types.Token, err error) {
	return NewLexer(strings.NewReader(source)).LexToEOF()
}

// LexToEOF drains the lexer.
func (l *Lexer) LexToEOF() (tokens []types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				tokens = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	for {
		tok := l.Lex()
		tokens = append(tokens, tok)
		if tok.Kind == types.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0
		}
		panic(err)
	}
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	return r
}

func (l *Lexer) advance() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0
		}
		panic(err)
	}
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) kinded(t types.TokenKind, text string) types.Token {
	return types.Token{
		Kind: t,
		Text: text,
		Line: l.line,
	}
}

func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func (l *Lexer) lexIdent() types.Token {
	var lit strings.Builder
	for r := l.peek(); isAlpha(r) || isDigit(r); r = l.peek() {
		lit.WriteRune(l.advance())
	}

	if IsKeyword(lit.String()) {
		return l.kinded(types.KEYWORD, lit.String())
	}
	return l.kinded(types.IDENTIFIER, lit.String())
}

// lexString should be called with the lexer on the opening quote.
func (l *Lexer) lexString() types.Token {
	var lit strings.Builder
	l.advance()

	for {
		switch l.peek() {
		case 0:
			panic(errors.LexError{
				Message: "Unterminated string literal",
				Line:    l.line,
			})
		case '"':
			l.advance()
			return l.kinded(types.STRING_LITERAL, lit.String())
		default:
			lit.WriteRune(l.advance())
		}
	}
}

func (l *Lexer) lexNumber() types.Token {
	var lit strings.Builder
	for isDigit(l.peek()) {
		lit.WriteRune(l.advance())
	}
	return l.kinded(types.NUMBER_LITERAL, lit.String())
}

var symbols = map[rune]types.TokenKind{
	':': types.COLON,
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'+': types.PLUS,
	',': types.COMMA,
	';': types.SEMICOLON,
	'*': types.STAR,
	'/': types.SLASH,
	'%': types.PERCENT,
}

// twoChar lists the operators that may be extended by a trailing '='.
var twoChar = map[rune][2]types.TokenKind{
	'=': {types.ASSIGN, types.EQ},
	'<': {types.LT, types.LTEQ},
	'>': {types.GT, types.GTEQ},
	'!': {types.UNKNOWN, types.NEQ},
}

// Lex returns the next token. Once the input is exhausted it keeps returning
// EOF.
func (l *Lexer) Lex() types.Token {
	for isSpace(l.peek()) {
		l.advance()
	}

	r := l.peek()
	switch {
	case r == 0:
		return l.kinded(types.EOF, "")
	case isAlpha(r):
		return l.lexIdent()
	case isDigit(r):
		return l.lexNumber()
	case r == '"':
		return l.lexString()
	}

	l.advance()

	if kind, ok := symbols[r]; ok {
		return l.kinded(kind, string(r))
	}

	if r == '-' {
		if l.peek() == '>' {
			l.advance()
			return l.kinded(types.ARROW, "->")
		}
		// binary minus is recognised by the parser from the token text
		return l.kinded(types.UNKNOWN, "-")
	}

	if kinds, ok := twoChar[r]; ok {
		if l.peek() == '=' {
			l.advance()
			return l.kinded(kinds[1], string(r)+"=")
		}
		return l.kinded(kinds[0], string(r))
	}

	return l.kinded(types.UNKNOWN, string(r))
}
