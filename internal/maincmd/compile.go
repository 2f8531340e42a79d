package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/helium/lang/compiler"
	"github.com/mna/helium/lang/importer"
	"github.com/mna/helium/lang/parser"
	"github.com/mna/mainer"
)

// Compile implements the "compile" command: run the full lex/parse/compile
// pipeline and print the resulting bytecode disassembly. Included files
// (spec.md's include statement) resolve relative to the compiled file's
// own directory.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(stdio, args...)
}

func CompileFiles(stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		if err := compileOne(stdio, file); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func compileOne(stdio mainer.Stdio, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s%s%s\n", errCol, err, defCol)
		return err
	}

	tree, err := parser.Parse(string(src), file)
	if err != nil {
		printErr(stdio.Stderr, string(src), err)
		return err
	}

	resolver := importer.FileResolver{Root: filepath.Dir(file)}
	prog, err := compiler.Compile(tree, file, resolver, builtinNatives()...)
	if err != nil {
		printErr(stdio.Stderr, string(src), err)
		return err
	}

	fmt.Fprint(stdio.Stdout, compiler.Disassemble(prog))
	return nil
}
