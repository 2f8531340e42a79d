package maincmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/mna/helium/lang/compiler"
	"github.com/mna/helium/lang/diag"
	"github.com/mna/helium/lang/lexer"
	"github.com/mna/helium/lang/parser"
	"github.com/mna/helium/lang/token"
)

// printErr renders err against src using the shared three-line diagnostic
// format when it carries a token.Pos (every fatal lexer/parser/compiler
// error does), falling back to a plain message otherwise.
func printErr(w io.Writer, src string, err error) {
	if pos, ok := errPos(err); ok {
		fmt.Fprint(w, errCol, diag.Render(src, pos, err.Error()), defCol)
		return
	}
	fmt.Fprintf(w, "%s%s%s\n", errCol, err, defCol)
}

func errPos(err error) (token.Pos, bool) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Position, true
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Position, true
	}
	var resolveErr *compiler.ResolveError
	if errors.As(err, &resolveErr) {
		return resolveErr.Position, true
	}
	var importErr *compiler.ImportError
	if errors.As(err, &importErr) {
		return importErr.Position, true
	}
	var callErr *compiler.CallError
	if errors.As(err, &callErr) {
		return callErr.Position, true
	}
	return token.Pos{}, false
}
