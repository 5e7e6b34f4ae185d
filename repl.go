package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	historyFile = ".wyzer_history"
	promptMain  = "wyzer> "
	promptCont  = "...    "
)

// braceDepth counts unmatched '{' outside string literals.
func braceDepth(src string) int {
	depth := 0
	inString := false
	for _, r := range src {
		switch {
		case r == '"':
			inString = !inString
		case inString:
		case r == '{':
			depth++
		case r == '}':
			depth--
		}
	}
	return depth
}

// replProgram turns one REPL entry into a complete program. Entries that do
// not declare functions become the body of main.
func replProgram(entry string) string {
	if strings.HasPrefix(strings.TrimSpace(entry), "fnc") {
		return entry
	}
	return "fnc main() {\n" + entry + "\n}\n"
}

func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if braceDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

func repl(trace bool) error {
	fmt.Println("wyzer REPL. Ctrl+D exits.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(entry) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		if err := runSource(replProgram(entry), os.Stdout); err != nil {
			reportError(err, trace)
		}
	}
}
