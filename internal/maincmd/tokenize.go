package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/helium/lang/lexer"
	"github.com/mna/mainer"
)

// Tokenize implements the "tokenize" command: run the lexer phase only and
// print the resulting token stream, one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
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

		toks, err := lexer.All(string(src), file)
		if err != nil {
			printErr(stdio.Stderr, string(src), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s: %s\n", tok.Position, tok)
		}
	}
	return firstErr
}
