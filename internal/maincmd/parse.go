package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/parser"
	"github.com/mna/mainer"
)

// Parse implements the "parse" command: run the lexer and parser and print
// the resulting abstract syntax tree.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, args...)
}

func ParseFiles(stdio mainer.Stdio, files ...string) error {
	printer := ast.Printer{Output: stdio.Stdout}

	var firstErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s%s%s\n", errCol, err, defCol)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		tree, err := parser.Parse(string(src), file)
		if err != nil {
			printErr(stdio.Stderr, string(src), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := printer.Print(tree); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
