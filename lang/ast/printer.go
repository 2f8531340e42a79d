package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders a Node tree as indented text, one node per line, for
// diagnostics (the CLI's "parse" command uses this to dump the AST).
//
// This is a much-reduced form of the teacher's ast.Printer (which formats a
// dozen distinct node kinds with format verbs and a fmt.State/fmt.Formatter
// hookup); here a single uniform Node shape means a single recursive
// renderer suffices.
type Printer struct {
	Output io.Writer
}

// Print writes the tree rooted at n to p.Output.
func (p Printer) Print(n *Node) error {
	var b strings.Builder
	writeNode(&b, n, 0)
	_, err := io.WriteString(p.Output, b.String())
	return err
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if n.Value != "" {
		fmt.Fprintf(b, " %q", n.Value)
	}
	fmt.Fprintf(b, " @%s\n", n.Position)
	for _, c := range n.Children {
		writeNode(b, c, depth+1)
	}
}

// Dump returns the indented-text rendering of n as a string.
func Dump(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return b.String()
}
