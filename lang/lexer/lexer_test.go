package lexer_test

import (
	"testing"

	"github.com/mna/helium/lang/lexer"
	"github.com/mna/helium/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestAll(t *testing.T) {
	cases := []struct {
		desc string
		src  string
		want []token.Kind
	}{
		{"assign int", "x <- 1", []token.Kind{token.Symbol, token.Assign, token.Integer, token.EOF}},
		{"float", "x <- 1.5", []token.Kind{token.Symbol, token.Assign, token.Float, token.EOF}},
		{"string", `x <- "abc"`, []token.Kind{token.Symbol, token.Assign, token.String, token.EOF}},
		{"bool and null", "true false null", []token.Kind{token.Bool, token.Bool, token.Null, token.EOF}},
		{"keywords", "if else loop return include", []token.Kind{
			token.If, token.Else, token.Loop, token.Return, token.Include, token.EOF,
		}},
		{"operators", "+ - * / % == != <= >= < > && ||", []token.Kind{
			token.Operator, token.Operator, token.Operator, token.Operator, token.Operator,
			token.Operator, token.Operator, token.Operator, token.Operator, token.Operator,
			token.Operator, token.Operator, token.Operator, token.EOF,
		}},
		{"punctuation", "@ $ ( ) { } [ ] . : ,", []token.Kind{
			token.Call, token.Function, token.LeftParen, token.RightParen, token.LeftBrace,
			token.RightBrace, token.LeftSquare, token.RightSquare, token.Dot, token.Colon,
			token.Separator, token.EOF,
		}},
		{"comment discarded", "x <- 1 # comment\ny <- 2", []token.Kind{
			token.Symbol, token.Assign, token.Integer, token.Newline,
			token.Symbol, token.Assign, token.Integer, token.EOF,
		}},
		{"newline significant", "x <- 1\n\ny <- 2", []token.Kind{
			token.Symbol, token.Assign, token.Integer, token.Newline, token.Newline,
			token.Symbol, token.Assign, token.Integer, token.EOF,
		}},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			toks, err := lexer.All(c.src, "t.he")
			require.NoError(t, err)
			assert.Equal(t, c.want, kinds(toks))
		})
	}
}

func TestLexemes(t *testing.T) {
	toks, err := lexer.All(`x <- "hi" + 3.14`, "t.he")
	require.NoError(t, err)
	require.Len(t, toks, 6)
	assert.Equal(t, "x", toks[0].Lexeme)
	assert.Equal(t, "<-", toks[1].Lexeme)
	assert.Equal(t, "hi", toks[2].Lexeme)
	assert.Equal(t, "+", toks[3].Lexeme)
	assert.Equal(t, "3.14", toks[4].Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	_, err := lexer.All(`x <- "abc`, "t.he")
	require.Error(t, err)

	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 1, lerr.Position.Line)
	assert.Equal(t, 6, lerr.Position.Column)
	assert.Contains(t, lerr.Message, "unterminated string")
}

func TestIllegalCharacter(t *testing.T) {
	_, err := lexer.All("x <- ?", "t.he")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestPositions(t *testing.T) {
	toks, err := lexer.All("x <- 1\ny <- 2", "t.he")
	require.NoError(t, err)

	// y is on line 2, column 1
	var yTok token.Token
	for _, tok := range toks {
		if tok.Lexeme == "y" {
			yTok = tok
		}
	}
	assert.Equal(t, 2, yTok.Position.Line)
	assert.Equal(t, 1, yTok.Position.Column)
	assert.Equal(t, "t.he", yTok.Position.Origin)
}
