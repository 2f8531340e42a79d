// Package lexer turns source text into a stream of tokens for the parser.
//
// The lexer is a single forward cursor with one-character lookahead,
// following the structure of the teacher scanner this package is adapted
// from: advance() decodes the next rune into cur, and Next() dispatches on
// cur to produce one token. Unlike a full Unicode-aware scanner, the source
// language's token grammar (spec.md §4.1) is ASCII-only, but advance still
// decodes UTF-8 so that string literals and error messages handle non-ASCII
// bytes without corrupting position tracking.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mna/helium/lang/token"
)

// Error is a fatal lexical error: an unknown character or an unterminated
// string literal. There is no error recovery (spec.md §7).
type Error struct {
	Position token.Pos
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Lexer tokenizes a single source string for a single origin (typically a
// file path).
type Lexer struct {
	src    string
	origin string

	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset just after cur

	line       int // 1-based line of cur
	col        int // 1-based column of cur
	lineOffset int // byte offset of the start of the current line
}

// New creates a Lexer ready to tokenize src, attributing all positions to
// origin (an arbitrary file-identifier string, may be empty).
func New(src, origin string) *Lexer {
	l := &Lexer{
		src:        src,
		origin:     origin,
		line:       1,
		col:        0,
		lineOffset: 0,
	}
	l.advance()
	return l
}

// advance reads the next rune into l.cur, updating line/column tracking.
func (l *Lexer) advance() {
	if l.cur == '\n' {
		l.line++
		l.col = 0
		l.lineOffset = l.roff
	}

	if l.roff >= len(l.src) {
		l.off = len(l.src)
		l.cur = -1
		return
	}

	l.off = l.roff
	r, w := rune(l.src[l.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRuneInString(l.src[l.roff:])
	}
	l.roff += w
	l.cur = r
	l.col++
}

func (l *Lexer) peekByte() byte {
	if l.roff < len(l.src) {
		return l.src[l.roff]
	}
	return 0
}

func (l *Lexer) pos() token.Pos {
	return token.Pos{
		Line:       l.line,
		Column:     l.col,
		CharOffset: l.off,
		LineOffset: l.lineOffset,
		Origin:     l.origin,
	}
}

func (l *Lexer) errorf(pos token.Pos, format string, args ...any) *Error {
	return &Error{Position: pos, Message: fmt.Sprintf(format, args...)}
}

// Next scans and returns the next token. Once it returns a token.EOF token,
// every subsequent call also returns token.EOF.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.pos()

	switch {
	case l.cur == -1:
		return token.Token{Kind: token.EOF, Position: pos}, nil

	case l.cur == '\n':
		l.advance()
		return token.Token{Kind: token.Newline, Lexeme: "\n", Position: pos}, nil

	case isLetter(l.cur):
		lit := l.scanIdent()
		return token.Token{Kind: token.LookupIdent(lit), Lexeme: lit, Position: pos}, nil

	case isDigit(l.cur) || (l.cur == '.' && isDigit(rune(l.peekByte()))):
		return l.scanNumber(pos)

	case l.cur == '"':
		return l.scanString(pos)
	}

	return l.scanOperatorOrPunct(pos)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.cur == ' ' || l.cur == '\t' || l.cur == '\r':
			l.advance()
		case l.cur == '#':
			for l.cur != '\n' && l.cur != -1 {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanIdent() string {
	start := l.off
	for isLetter(l.cur) || isDigit(l.cur) {
		l.advance()
	}
	return l.src[start:l.off]
}

func (l *Lexer) scanNumber(pos token.Pos) (token.Token, error) {
	start := l.off
	isFloat := false

	for isDigit(l.cur) {
		l.advance()
	}
	if l.cur == '.' && isDigit(rune(l.peekByte())) {
		isFloat = true
		l.advance() // consume '.'
		for isDigit(l.cur) {
			l.advance()
		}
	}

	lit := l.src[start:l.off]
	if isFloat {
		return token.Token{Kind: token.Float, Lexeme: lit, Position: pos}, nil
	}
	return token.Token{Kind: token.Integer, Lexeme: lit, Position: pos}, nil
}

func (l *Lexer) scanString(pos token.Pos) (token.Token, error) {
	l.advance() // consume opening quote

	var sb strings.Builder
	for l.cur != '"' {
		if l.cur == -1 || l.cur == '\n' {
			return token.Token{}, l.errorf(pos, "unterminated string literal")
		}
		sb.WriteRune(l.cur)
		l.advance()
	}
	l.advance() // consume closing quote

	return token.Token{Kind: token.String, Lexeme: sb.String(), Position: pos}, nil
}

func (l *Lexer) scanOperatorOrPunct(pos token.Pos) (token.Token, error) {
	cur := l.cur
	l.advance()

	switch cur {
	case '<':
		if l.cur == '-' {
			l.advance()
			return token.Token{Kind: token.Assign, Lexeme: "<-", Position: pos}, nil
		}
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: "<=", Position: pos}, nil
		}
		return token.Token{Kind: token.Operator, Lexeme: "<", Position: pos}, nil

	case '>':
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: ">=", Position: pos}, nil
		}
		return token.Token{Kind: token.Operator, Lexeme: ">", Position: pos}, nil

	case '=':
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: "==", Position: pos}, nil
		}
		return token.Token{}, l.errorf(pos, "unexpected character %q", cur)

	case '!':
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: "!=", Position: pos}, nil
		}
		return token.Token{Kind: token.Operator, Lexeme: "!", Position: pos}, nil

	case '&':
		if l.cur == '&' {
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: "&&", Position: pos}, nil
		}
		return token.Token{Kind: token.Operator, Lexeme: "&", Position: pos}, nil

	case '|':
		if l.cur == '|' {
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: "||", Position: pos}, nil
		}
		return token.Token{Kind: token.Operator, Lexeme: "|", Position: pos}, nil

	case '+', '-', '*', '/', '%', '^', '~':
		return token.Token{Kind: token.Operator, Lexeme: string(cur), Position: pos}, nil

	case '(':
		return token.Token{Kind: token.LeftParen, Lexeme: "(", Position: pos}, nil
	case ')':
		return token.Token{Kind: token.RightParen, Lexeme: ")", Position: pos}, nil
	case '{':
		return token.Token{Kind: token.LeftBrace, Lexeme: "{", Position: pos}, nil
	case '}':
		return token.Token{Kind: token.RightBrace, Lexeme: "}", Position: pos}, nil
	case '[':
		return token.Token{Kind: token.LeftSquare, Lexeme: "[", Position: pos}, nil
	case ']':
		return token.Token{Kind: token.RightSquare, Lexeme: "]", Position: pos}, nil
	case '.':
		return token.Token{Kind: token.Dot, Lexeme: ".", Position: pos}, nil
	case ':':
		return token.Token{Kind: token.Colon, Lexeme: ":", Position: pos}, nil
	case ',':
		return token.Token{Kind: token.Separator, Lexeme: ",", Position: pos}, nil
	case '@':
		return token.Token{Kind: token.Call, Lexeme: "@", Position: pos}, nil
	case '$':
		return token.Token{Kind: token.Function, Lexeme: "$", Position: pos}, nil
	}

	return token.Token{}, l.errorf(pos, "unexpected character %q", cur)
}

// All scans src in one pass and returns the full token stream, ending in an
// EOF token, or the first lexical error encountered.
func All(src, origin string) ([]token.Token, error) {
	l := New(src, origin)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func isLetter(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
