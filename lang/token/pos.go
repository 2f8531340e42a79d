// Package token defines the lexical token kinds and source position record
// shared by the lexer, parser and compiler.
package token

import "fmt"

// Pos is a source position, frozen by value into every token and AST node so
// later passes can render diagnostics without re-tokenizing the source.
//
// Line and Column are 1-based. CharOffset is the 0-based byte offset of the
// position in the source. LineOffset is the 0-based byte offset of the start
// of the line containing the position, so the offending source line can be
// recovered with source[LineOffset:] up to the next newline. Origin
// identifies the source (typically a file path, or "" for anonymous input).
type Pos struct {
	Line       int
	Column     int
	CharOffset int
	LineOffset int
	Origin     string
}

// Unknown reports whether p has no meaningful line/column information.
func (p Pos) Unknown() bool {
	return p.Line == 0 || p.Column == 0
}

func (p Pos) String() string {
	origin := p.Origin
	if origin == "" {
		origin = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", origin, p.Line, p.Column)
}
