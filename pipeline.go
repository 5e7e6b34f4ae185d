package main

import (
	"io"
	"io/ioutil"

	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/ast"
	"github.com/wyzer-lang/wyzer/errors"
	"github.com/wyzer-lang/wyzer/interp"
	"github.com/wyzer-lang/wyzer/lexer"
	"github.com/wyzer-lang/wyzer/parser"
)

func readSource(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func compile(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// runSource lexes, parses and executes the main function of source.
func runSource(source string, out io.Writer) error {
	prog, err := compile(source)
	if err != nil {
		return err
	}

	entry := prog.Main()
	if entry == nil {
		return tracerr.Wrap(errors.ParseError{Message: "No 'main' function found"})
	}

	return interp.New(out).ExecuteFunction(entry)
}
