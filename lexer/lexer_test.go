package lexer

import (
	"strings"
	"testing"

	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/errors"
	"github.com/wyzer-lang/wyzer/types"
)

func kinds(toks []types.Token) []types.TokenKind {
	var ret []types.TokenKind
	for _, tok := range toks {
		ret = append(ret, tok.Kind)
	}
	return ret
}

func TestLexer(t *testing.T) {
	l := NewLexer(strings.NewReader("aaa if else logln ;"))
	tokens, err := l.LexToEOF()
	if err != nil {
		t.Fatal(err)
	}

	expected := []types.Token{
		{Kind: types.IDENTIFIER, Text: "aaa", Line: 1},
		{Kind: types.KEYWORD, Text: "if", Line: 1},
		{Kind: types.KEYWORD, Text: "else", Line: 1},
		{Kind: types.KEYWORD, Text: "logln", Line: 1},
		{Kind: types.SEMICOLON, Text: ";", Line: 1},
		{Kind: types.EOF, Text: "", Line: 1},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(expected), tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Errorf("token %d: got %v, want %v", i, tokens[i], expected[i])
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	bodies := []string{"", "hello", "hello world", "42", "fnc main", "a\nb", "-> + ; {}", "\\n"}
	for _, body := range bodies {
		toks, err := Tokenize(`"` + body + `"`)
		if err != nil {
			t.Fatalf("%q: %s", body, err)
		}
		if len(toks) != 2 || toks[1].Kind != types.EOF {
			t.Fatalf("%q: got %v", body, toks)
		}
		if toks[0].Kind != types.STRING_LITERAL || toks[0].Text != body {
			t.Errorf("%q: got %v", body, toks[0])
		}
	}
}

func TestKeywordExclusivity(t *testing.T) {
	for _, kw := range []string{"fnc", "let", "var", "return", "log", "logln", "loop", "string", "int", "if", "else"} {
		toks, err := Tokenize(kw)
		if err != nil {
			t.Fatal(err)
		}
		if len(toks) != 2 || toks[0].Kind != types.KEYWORD || toks[0].Text != kw {
			t.Errorf("%s: got %v", kw, toks)
		}
	}

	for _, ident := range []string{"Fnc", "LET", "main", "x", "_tmp", "loops", "iff", "x1"} {
		toks, err := Tokenize(ident)
		if err != nil {
			t.Fatal(err)
		}
		if len(toks) != 2 || toks[0].Kind != types.IDENTIFIER || toks[0].Text != ident {
			t.Errorf("%s: got %v", ident, toks)
		}
	}
}

func TestOperators(t *testing.T) {
	toks, err := Tokenize("-> - + * / % = == != < <= > >= ! @ : , ( ) { }")
	if err != nil {
		t.Fatal(err)
	}

	expected := []types.TokenKind{
		types.ARROW, types.UNKNOWN, types.PLUS, types.STAR, types.SLASH, types.PERCENT,
		types.ASSIGN, types.EQ, types.NEQ, types.LT, types.LTEQ, types.GT, types.GTEQ,
		types.UNKNOWN, types.UNKNOWN, types.COLON, types.COMMA,
		types.LPAREN, types.RPAREN, types.LBRACE, types.RBRACE, types.EOF,
	}
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("got %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d (%q): got %s, want %s", i, toks[i].Text, got[i], expected[i])
		}
	}
	if toks[1].Text != "-" || toks[13].Text != "!" || toks[14].Text != "@" {
		t.Errorf("unknown tokens lost their text: %v", toks)
	}
}

func TestNumbersAndLines(t *testing.T) {
	toks, err := Tokenize("123\n  45x\n\n\"s\"")
	if err != nil {
		t.Fatal(err)
	}

	expected := []types.Token{
		{Kind: types.NUMBER_LITERAL, Text: "123", Line: 1},
		{Kind: types.NUMBER_LITERAL, Text: "45", Line: 2},
		{Kind: types.IDENTIFIER, Text: "x", Line: 2},
		{Kind: types.STRING_LITERAL, Text: "s", Line: 4},
		{Kind: types.EOF, Text: "", Line: 4},
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %v", toks)
	}
	for i := range expected {
		if toks[i] != expected[i] {
			t.Errorf("token %d: got %v, want %v", i, toks[i], expected[i])
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize("fnc main() {\n logln(\"oops);\n}")
	if err == nil {
		t.Fatal("expected an error")
	}

	lexErr, ok := tracerr.Unwrap(err).(errors.LexError)
	if !ok {
		t.Fatalf("expected a LexError, got %T: %s", err, err)
	}
	if lexErr.Message != "Unterminated string literal" || lexErr.Line != 3 {
		t.Errorf("got %+v", lexErr)
	}
}

func TestEndToEndTokenCount(t *testing.T) {
	source := "fnc main() {\n    let x = 2 + 3;\n    logln(x);\n}\n"
	toks, err := Tokenize(source)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 19 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	if toks[len(toks)-1].Kind != types.EOF || toks[len(toks)-1].Line != 5 {
		t.Errorf("bad trailing token %v", toks[len(toks)-1])
	}
}

func TestEmptySource(t *testing.T) {
	toks, err := Tokenize("  \n\t ")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != types.EOF || toks[0].Line != 2 {
		t.Errorf("got %v", toks)
	}
}
