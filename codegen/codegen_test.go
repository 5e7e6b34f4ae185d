package codegen

import (
	"strings"
	"testing"

	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/ast"
	"github.com/wyzer-lang/wyzer/errors"
	"github.com/wyzer-lang/wyzer/lexer"
	"github.com/wyzer-lang/wyzer/parser"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func lower(t *testing.T, source string, s Settings) string {
	t.Helper()
	m, err := Lower(parse(t, source), s)
	if err != nil {
		t.Fatal(err)
	}
	return m.String()
}

func TestLowerProgram(t *testing.T) {
	out := lower(t, `
fnc helper(a: int) -> int {
	return "helper";
}

fnc main() {
	let x = 2 + 3;
	let name = "wyzer";
	if (x > 4) {
		logln(name);
	} else {
		log(x == 5);
	}
	logln(x * 2 % 3);
}
`, Settings{})

	for _, expected := range []string{
		"define void @wyzer_main()",
		"define void @wyzer_helper()",
		"declare i32 @printf(",
		"fadd double",
		"fmul double",
		"frem double",
		"fcmp ogt double",
		"fcmp oeq double",
		"select i1",
		"@" + TypeInfoSymbol,
		`c"wyzer\00"`,
		"br i1",
		"ret void",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("IR lacks %q:\n%s", expected, out)
		}
	}

	if strings.Contains(out, "define i32 @main()") {
		t.Errorf("library build got a C main")
	}
}

func TestLowerExecutable(t *testing.T) {
	out := lower(t, "fnc main() { loop { logln(\"again\"); } }", Settings{Executable: true})

	if !strings.Contains(out, "define i32 @main()") || !strings.Contains(out, "call void @wyzer_main()") {
		t.Errorf("missing C entry point:\n%s", out)
	}
}

func TestStringComparison(t *testing.T) {
	out := lower(t, `fnc main() { let a = "x"; if (a != "y") { logln(a); } }`, Settings{})
	if !strings.Contains(out, "@strcmp(") || !strings.Contains(out, "icmp ne i32") {
		t.Errorf("string comparison not lowered through strcmp:\n%s", out)
	}
}

func TestStringConstantsAreShared(t *testing.T) {
	out := lower(t, `fnc main() { logln("dup"); logln("dup"); }`, Settings{})
	if n := strings.Count(out, `c"dup\00"`); n != 1 {
		t.Errorf("got %d copies of the constant:\n%s", n, out)
	}
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
		line    int
	}{
		{"fnc main() {\n logln(\"a\" - 1);\n}", "TypeError: unsupported operand types for '-': string and number", 2},
		{"fnc main() {\n logln(\"a\" + \"b\");\n}", "string concatenation is not supported by the LLVM backend", 2},
		{"fnc main() {\n\n logln(nope);\n}", "undefined variable 'nope'", 3},
		{"fnc main() {\n let x = 1;\n let x = \"s\";\n}", "variable 'x' changes type from number to string", 3},
		{"fnc main() {\n if (1) { logln(1); }\n}", "TypeError: if condition must be a boolean", 2},
		{"fnc main() {\n logln(1 / 0);\n}", "Division by zero", 2},
	}

	for _, test := range tests {
		_, err := Lower(parse(t, test.source), Settings{})
		if err == nil {
			t.Errorf("%q: expected an error", test.source)
			continue
		}
		cerr, ok := tracerr.Unwrap(err).(errors.CodegenError)
		if !ok {
			t.Errorf("%q: expected a CodegenError, got %T: %s", test.source, err, err)
			continue
		}
		if cerr.Message != test.message || cerr.Line != test.line || cerr.Function != "main" {
			t.Errorf("%q: got %+v", test.source, cerr)
		}
	}
}

func TestTypeInfo(t *testing.T) {
	prog := parse(t, "fnc add(a: int, b: int) -> int { return a; }\nfnc main() { }")
	info := typeInfoOf(prog)

	if info.Functions["add"] != "fnc add(a: int, b: int) -> int" {
		t.Errorf("got %q", info.Functions["add"])
	}
	if info.Functions["main"] != "fnc main() -> void" {
		t.Errorf("got %q", info.Functions["main"])
	}

	decoded, err := ParseTypeInfo(`{"functions":{"main":"fnc main() -> void"}}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Functions) != 1 || decoded.Functions["main"] != "fnc main() -> void" {
		t.Errorf("got %+v", decoded)
	}
}
