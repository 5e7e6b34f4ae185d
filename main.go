package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/wyzer-lang/wyzer/ast"
	"github.com/wyzer-lang/wyzer/codegen"
	"github.com/wyzer-lang/wyzer/lexer"
	"github.com/wyzer-lang/wyzer/reader"
)

func reportError(err error, trace bool) {
	if trace {
		tracerr.PrintSourceColor(err)
		return
	}
	fmt.Fprintln(os.Stderr, color.RedString("error: %s", tracerr.Unwrap(err)))
}

// sourcePath returns the file named on the command line, falling back to the
// manifest entry.
func sourcePath(c *cli.Context) (string, error) {
	if file := c.Args().First(); file != "" {
		return file, nil
	}

	doc, err := readManifest(".")
	if err != nil {
		return "", fmt.Errorf("no source file given and %w", err)
	}
	return doc.Entry, nil
}

func loadProgram(c *cli.Context) (*ast.Program, error) {
	path, err := sourcePath(c)
	if err != nil {
		return nil, err
	}
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return compile(source)
}

func outputName(c *cli.Context, path string) string {
	if out := c.String("output"); out != "" {
		return out
	}
	if doc, err := readManifest("."); err == nil && doc.Package != "" {
		return doc.Package
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("wyzer: ")

	app := &cli.App{
		Name:  "wyzer",
		Usage: "wyzer language toolchain",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print stack traces for errors",
			},
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			reportError(err, c.Bool("trace"))
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run the main function of a file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}
					source, err := readSource(path)
					if err != nil {
						return err
					}
					return runSource(source, os.Stdout)
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}
					source, err := readSource(path)
					if err != nil {
						return err
					}
					toks, err := lexer.Tokenize(source)
					if err != nil {
						return err
					}
					for _, tok := range toks {
						fmt.Printf("%-15s %-12q line %d\n", tok.Kind, tok.Text, tok.Line)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "dump the Go values instead of the tree",
					},
				},
				Action: func(c *cli.Context) error {
					prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					if c.Bool("raw") {
						repr.Println(prog)
						return nil
					}
					ast.Fprint(os.Stdout, prog)
					return nil
				},
			},
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no module name provided", 1)
					}
					if err := initModule(".", name); err != nil {
						return err
					}
					log.Printf("initialised %s in %s", name, manifestFile)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "read-eval-print loop",
				Action: func(c *cli.Context) error {
					return repl(c.Bool("trace"))
				},
			},
			{
				Name:      "ir",
				Usage:     "print the LLVM IR of a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "library",
						Usage: "omit the C entry point",
					},
				},
				Action: func(c *cli.Context) error {
					prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					module, err := codegen.Lower(prog, codegen.Settings{Executable: !c.Bool("library")})
					if err != nil {
						return err
					}
					fmt.Println(module)
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "build a file with clang",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "library",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}
					prog, err := loadProgram(c)
					if err != nil {
						return err
					}

					out := outputName(c, path)
					if c.Bool("library") {
						out += ".so"
					}

					module, err := codegen.Lower(prog, codegen.Settings{Executable: !c.Bool("library")})
					if err != nil {
						return err
					}

					fi, err := ioutil.TempFile("", "wyzer-*.ll")
					if err != nil {
						return err
					}
					defer os.Remove(fi.Name())
					defer fi.Close()

					_, err = io.Copy(fi, strings.NewReader(module.String()))
					if err != nil {
						return err
					}

					cmd := exec.Command("clang", "-Wno-override-module", "-o", out)
					if c.Bool("library") {
						cmd.Args = append(cmd.Args, "-shared", "-fPIC")
					}
					cmd.Args = append(cmd.Args, fi.Name())
					cmd.Stdout = os.Stdout
					cmd.Stderr = os.Stderr

					log.Printf("building %s", out)
					return tracerr.Wrap(cmd.Run())
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump typeinfo from a built library",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					data, err := reader.Read(c.Args().Get(0))
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
