package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/compiler"
	"github.com/mna/helium/lang/importer"
	"github.com/mna/helium/lang/lexer"
	"github.com/mna/helium/lang/parser"
	"github.com/mna/mainer"
)

// Run implements the "run" command: lex, parse and compile each file in
// turn, printing a banner and that stage's diagnostic output before moving
// to the next, mirroring the original driver's four-stage console output
// (reading, lexical analysis, syntax parsing, compilation).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFiles(stdio, args...)
}

func RunFiles(stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		if err := runOne(stdio, file); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func runOne(stdio mainer.Stdio, file string) error {
	fmt.Fprintf(stdio.Stdout, "%s: %s\n\n", message("reading"), file)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s%s%s\n", errCol, err, defCol)
		return err
	}

	fmt.Fprintf(stdio.Stdout, "%s\n\n", message("lexical analysis"))
	toks, err := lexer.All(string(src), file)
	if err != nil {
		printErr(stdio.Stderr, string(src), err)
		return err
	}
	for _, tok := range toks {
		fmt.Fprintf(stdio.Stdout, "%s: %s\n", tok.Position, tok)
	}

	fmt.Fprintf(stdio.Stdout, "\n%s\n\n", message("syntax parsing"))
	tree, err := parser.Parse(string(src), file)
	if err != nil {
		printErr(stdio.Stderr, string(src), err)
		return err
	}
	if err := (ast.Printer{Output: stdio.Stdout}).Print(tree); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fmt.Fprintf(stdio.Stdout, "\n%s\n\n", message("compilation"))
	resolver := importer.FileResolver{Root: filepath.Dir(file)}
	prog, err := compiler.Compile(tree, file, resolver, builtinNatives()...)
	if err != nil {
		printErr(stdio.Stderr, string(src), err)
		return err
	}
	fmt.Fprint(stdio.Stdout, compiler.Disassemble(prog))
	fmt.Fprintln(stdio.Stdout)

	return nil
}
