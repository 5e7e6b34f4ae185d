package types

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota
	UNKNOWN

	KEYWORD
	IDENTIFIER
	NUMBER_LITERAL
	STRING_LITERAL

	COLON
	SEMICOLON
	ARROW
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	EQ
	NEQ
	LT
	GT
	LTEQ
	GTEQ

	ASSIGN
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:            "EOF",
		UNKNOWN:        "UNKNOWN",
		KEYWORD:        "KEYWORD",
		IDENTIFIER:     "IDENTIFIER",
		NUMBER_LITERAL: "NUMBER_LITERAL",
		STRING_LITERAL: "STRING_LITERAL",
		COLON:          "COLON",
		SEMICOLON:      "SEMICOLON",
		ARROW:          "ARROW",
		LPAREN:         "LPAREN",
		RPAREN:         "RPAREN",
		LBRACE:         "LBRACE",
		RBRACE:         "RBRACE",
		COMMA:          "COMMA",
		PLUS:           "PLUS",
		MINUS:          "MINUS",
		STAR:           "STAR",
		SLASH:          "SLASH",
		PERCENT:        "PERCENT",
		EQ:             "EQ",
		NEQ:            "NEQ",
		LT:             "LT",
		GT:             "GT",
		LTEQ:           "LTEQ",
		GTEQ:           "GTEQ",
		ASSIGN:         "ASSIGN",
	}
	if s, ok := data[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

type Token struct {
	Kind TokenKind
	Text string
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q line %d", t.Kind, t.Text, t.Line)
}

// Is reports whether the token is of the given kind and, for keywords and
// other text-identified tokens, carries the given text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}
