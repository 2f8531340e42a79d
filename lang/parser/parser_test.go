package parser_test

import (
	"testing"

	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *ast.Node {
	t.Helper()
	tree, err := parser.Parse(src, "t.he")
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	return tree.Children[0]
}

func TestParseAssignPrecedence(t *testing.T) {
	// x <- 1 + 2 * 3  should parse as  1 + (2 * 3)
	st := parseOne(t, "x <- 1 + 2 * 3")
	require.Equal(t, ast.Assign, st.Kind)
	require.Equal(t, "x", st.Value)
	require.Len(t, st.Children, 1)

	add := st.Children[0]
	require.Equal(t, ast.BinaryExpr, add.Kind)
	assert.Equal(t, "+", add.Value)
	assert.Equal(t, ast.Integer, add.Children[0].Kind)

	mul := add.Children[1]
	require.Equal(t, ast.BinaryExpr, mul.Kind)
	assert.Equal(t, "*", mul.Value)
}

func TestParseLeftAssociative(t *testing.T) {
	// 1 - 2 - 3 should parse as (1 - 2) - 3
	st := parseOne(t, "x <- 1 - 2 - 3")
	outer := st.Children[0]
	require.Equal(t, "-", outer.Value)
	inner := outer.Children[0]
	require.Equal(t, ast.BinaryExpr, inner.Kind)
	assert.Equal(t, "-", inner.Value)
	assert.Equal(t, "1", inner.Children[0].Value)
	assert.Equal(t, "2", inner.Children[1].Value)
	assert.Equal(t, "3", outer.Children[1].Value)
}

func TestParseIfElse(t *testing.T) {
	st := parseOne(t, `if x < 0 { y <- 1 } else { y <- 2 }`)
	require.Equal(t, ast.Branches, st.Kind)
	assert.Equal(t, "conditional", st.Value)
	require.Len(t, st.Children, 3)

	alt := st.Children[2]
	require.Equal(t, ast.Branches, alt.Kind)
	assert.Equal(t, "alt", alt.Value)
	require.Len(t, alt.Children, 1)
}

func TestParseElseIfChain(t *testing.T) {
	st := parseOne(t, `if a { x <- 1 } else if b { x <- 2 } else { x <- 3 }`)
	require.Len(t, st.Children, 3)
	elseIf := st.Children[2]
	assert.Equal(t, "conditional", elseIf.Value)
	require.Len(t, elseIf.Children, 3)
	alt := elseIf.Children[2]
	assert.Equal(t, "alt", alt.Value)
}

func TestParseLoop(t *testing.T) {
	st := parseOne(t, `loop x < 10 { x <- x + 1 }`)
	require.Equal(t, ast.Loop, st.Kind)
	require.Len(t, st.Children, 2)
	assert.Equal(t, ast.Block, st.Children[1].Kind)
}

func TestParseFunctionWithUpvalue(t *testing.T) {
	st := parseOne(t, `f <- $(x) { return x + y }`)
	require.Equal(t, ast.Assign, st.Kind)
	fn := st.Children[0]
	require.Equal(t, ast.Function, fn.Kind)
	require.Len(t, fn.Children, 2)
	params, body := fn.Children[0], fn.Children[1]
	require.Equal(t, ast.Params, params.Kind)
	require.Len(t, params.Children, 1)
	assert.Equal(t, "x", params.Children[0].Value)

	ret := body.Children[0]
	require.Equal(t, ast.Return, ret.Kind)
}

func TestParseTableAndPut(t *testing.T) {
	tree, err := parser.Parse(`t <- { "a": 1, "b": 2 }
t.a <- 3`, "t.he")
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)

	assignT := tree.Children[0]
	table := assignT.Children[0]
	require.Equal(t, ast.Table, table.Kind)
	require.Len(t, table.Children, 2)
	pair0 := table.Children[0]
	require.Equal(t, ast.KVPair, pair0.Kind)
	assert.Equal(t, "a", pair0.Children[0].Value)
	assert.Equal(t, "1", pair0.Children[1].Value)

	put := tree.Children[1]
	require.Equal(t, ast.Put, put.Kind)
	assert.Equal(t, "t", put.Value)
	require.Len(t, put.Children, 2)
	assert.Equal(t, ast.String, put.Children[0].Kind)
	assert.Equal(t, "a", put.Children[0].Value)
}

func TestParseCallExpression(t *testing.T) {
	st := parseOne(t, `y <- @f(1, 2)`)
	call := st.Children[0]
	require.Equal(t, ast.Call, call.Kind)
	require.Len(t, call.Children, 3)
	assert.Equal(t, ast.Reference, call.Children[0].Kind)
	assert.Equal(t, "f", call.Children[0].Value)
}

func TestParseCallStatement(t *testing.T) {
	st := parseOne(t, `@print("hi")`)
	require.Equal(t, ast.Call, st.Kind)
}

func TestParseUnary(t *testing.T) {
	st := parseOne(t, `x <- -1`)
	neg := st.Children[0]
	require.Equal(t, ast.UnaryExpr, neg.Kind)
	assert.Equal(t, "-", neg.Value)
}

func TestParseInvalidUnaryOperator(t *testing.T) {
	_, err := parser.Parse(`x <- * 1`, "t.he")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid unary operator")
}

func TestParseInclude(t *testing.T) {
	st := parseOne(t, `include "lib.he"`)
	require.Equal(t, ast.Include, st.Kind)
	require.Len(t, st.Children, 1)
	assert.Equal(t, ast.String, st.Children[0].Kind)
	assert.Equal(t, "lib.he", st.Children[0].Value)
}

func TestParseIncludeRequiresString(t *testing.T) {
	_, err := parser.Parse(`include 5`, "t.he")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string literal")
}

func TestParseMissingToken(t *testing.T) {
	_, err := parser.Parse(`x <- `, "t.he")
	require.Error(t, err)

	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
}

func TestParseUnterminatedBlock(t *testing.T) {
	_, err := parser.Parse(`if x { y <- 1`, "t.he")
	require.Error(t, err)
}
