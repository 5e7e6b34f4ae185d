package errors

import (
	"fmt"

	"github.com/wyzer-lang/wyzer/types"
)

type LexError struct {
	Message string
	Line    int
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Message, e.Line)
}

type ParseError struct {
	Message string
	Line    int
}

func (e ParseError) Error() string {
	if e.Line <= 0 {
		return e.Message
	}
	return fmt.Sprintf("%s at line %d", e.Message, e.Line)
}

// ExpectedKindGotKind builds the ParseError raised when a required token is
// missing.
func ExpectedKindGotKind(expected string, got types.Token) ParseError {
	if got.Kind == types.EOF {
		return ParseError{
			Message: fmt.Sprintf("Expected %s, got end of file", expected),
			Line:    got.Line,
		}
	}
	return ParseError{
		Message: fmt.Sprintf("Expected %s, got '%s'", expected, got.Text),
		Line:    got.Line,
	}
}

type RuntimeError struct {
	Message string
	Line    int
}

func (e RuntimeError) Error() string {
	if e.Line <= 0 {
		return "runtime error: " + e.Message
	}
	return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
}

// CodegenError is raised by the LLVM lowering when a construct cannot be
// typed statically.
type CodegenError struct {
	Function string
	Message  string
	Line     int
}

func (e CodegenError) Error() string {
	return fmt.Sprintf("codegen: %s: %s at line %d", e.Function, e.Message, e.Line)
}
