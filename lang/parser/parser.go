// Package parser builds an abstract syntax tree from a token stream.
//
// The grammar (spec.md §4.2) is a small recursive-descent parser for
// statements with a two-stack shunting-yard climb for expressions,
// translated idiomatically from the original C parser.c this spec traces
// to (apply_op/precedence/parse_expression) rather than from the teacher's
// Pratt/precedence-climbing recursive parser, since the spec specifically
// calls for the shunting-yard construction.
package parser

import (
	"fmt"

	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/lexer"
	"github.com/mna/helium/lang/token"
)

// Error is a fatal parse error: a missing expected token, an empty input
// where a primary is required, or some other malformed construct. There is
// no error recovery (spec.md §7).
type Error struct {
	Position token.Pos
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Parse lexes src (attributing positions to origin) and parses it as a
// complete program, returning the root Block node.
func Parse(src, origin string) (*ast.Node, error) {
	toks, err := lexer.All(src, origin)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.ParseProgram()
}

// Parser parses a fixed token stream (the output of the lexer for one
// origin) into an AST.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over an already-scanned token stream. toks must end
// with a token.EOF token.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseProgram parses the whole token stream as a top-level block of
// statements terminated by EOF.
func (p *Parser) ParseProgram() (*ast.Node, error) {
	return p.parseBlock(token.EOF)
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) lookahead() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) eat() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) isEmpty() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) errorf(pos token.Pos, format string, args ...any) error {
	return &Error{Position: pos, Message: fmt.Sprintf(format, args...)}
}

// consume requires the current token to have the given kind, consuming and
// returning it, or returns a fatal Error otherwise.
func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	if p.peek().Kind == kind {
		return p.eat(), nil
	}
	tok := p.peek()
	return token.Token{}, p.errorf(tok.Position, "expected %s but found %s", kind, tok.Kind)
}

// consumeOptional consumes and returns true if the current token has the
// given kind, otherwise it is a no-op returning false.
func (p *Parser) consumeOptional(kind token.Kind) bool {
	if p.peek().Kind == kind {
		p.eat()
		return true
	}
	return false
}

// stripNewlines consumes any run of Newline tokens, used between
// statements and around block delimiters (spec.md §4.2 "newline*").
func (p *Parser) stripNewlines() {
	for p.consumeOptional(token.Newline) {
	}
}
