// Package diag renders the three-line source diagnostics shared by every
// fatal error kind produced by the lexer, parser and compiler: a header
// naming the origin/line/column, the offending source line, and a caret
// underline pointing at the column.
//
// This centralizes what the original C implementation open-coded three
// times (lexerror, parsererror, compilererr), each calling get_line and
// paddchar('~', ...) independently.
package diag

import (
	"fmt"
	"strings"

	"github.com/mna/helium/lang/token"
)

// Render formats a single diagnostic against src, the full source text the
// position was computed against. The output is always exactly three lines,
// newline-terminated:
//
//	<origin>:<line>:<column>: <message>
//	    <line> | <source line>
//	           | <spaces><caret>
func Render(src string, pos token.Pos, message string) string {
	var b strings.Builder

	origin := pos.Origin
	if origin == "" {
		origin = "<input>"
	}
	fmt.Fprintf(&b, "%s:%d:%d: %s\n", origin, pos.Line, pos.Column, message)

	line := sourceLine(src, pos.LineOffset)
	fmt.Fprintf(&b, "    %4d | %s\n", pos.Line, line)

	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	fmt.Fprintf(&b, "         | %s^\n", strings.Repeat(" ", col))

	return b.String()
}

// sourceLine returns the line of src starting at the given byte offset, up
// to (excluding) the next newline or the end of src.
func sourceLine(src string, lineOffset int) string {
	if lineOffset < 0 || lineOffset > len(src) {
		return ""
	}
	rest := src[lineOffset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}
