package compiler_test

import (
	"testing"

	"github.com/mna/helium/lang/compiler"
	"github.com/mna/helium/lang/lexer"
	"github.com/mna/helium/lang/parser"
	"github.com/mna/helium/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSrc(t *testing.T, src string) *compiler.Program {
	t.Helper()
	tree, err := parser.Parse(src, "test")
	require.NoError(t, err)
	prog, err := compiler.Compile(tree, "test", nil)
	require.NoError(t, err)
	return prog
}

// S1: x <- 1 + 2 * 3
func TestCompileArithmeticPrecedence(t *testing.T) {
	prog := compileSrc(t, "x <- 1 + 2 * 3\n")

	assert.Equal(t, []value.Value{value.Integer(1), value.Integer(2), value.Integer(3)}, prog.Constants)
	assert.Equal(t, []compiler.Instruction{
		compiler.MakeUx(compiler.PUSHK, 0),
		compiler.MakeUx(compiler.PUSHK, 1),
		compiler.MakeUx(compiler.PUSHK, 2),
		compiler.MakeOp(compiler.MUL),
		compiler.MakeOp(compiler.ADD),
		compiler.MakeUx(compiler.STORL, 0),
	}, prog.Code)
}

// S2: if x < 0 { y <- 1 } else { y <- 2 }
func TestCompileIfElse(t *testing.T) {
	prog := compileSrc(t, "if x < 0 {\n  y <- 1\n} else {\n  y <- 2\n}\n")

	want := []compiler.Instruction{
		compiler.MakeUx(compiler.LOADG, 0),
		compiler.MakeUx(compiler.PUSHK, 1),
		compiler.MakeOp(compiler.LT),
		compiler.MakeSx(compiler.JIF, 3),
		compiler.MakeUx(compiler.PUSHK, 2),
		compiler.MakeUx(compiler.STORL, 0),
		compiler.MakeSx(compiler.JMP, 2),
		compiler.MakeUx(compiler.PUSHK, 3),
		compiler.MakeUx(compiler.STORL, 0),
	}
	require.Equal(t, want, prog.Code)

	// both jumps must land within [0, len(code)].
	jif := prog.Code[3]
	assert.Equal(t, 7, 3+int(jif.Sx())+1)
	jmp := prog.Code[6]
	assert.Equal(t, 9, 6+int(jmp.Sx())+1)
	assert.Len(t, prog.Code, 9)
}

// S3: loop x < 10 { x <- x + 1 }
func TestCompileLoop(t *testing.T) {
	prog := compileSrc(t, "loop x < 10 {\n  x <- x + 1\n}\n")

	require.Len(t, prog.Code, 9)

	jif := prog.Code[3]
	require.Equal(t, compiler.JIF, jif.Op())
	assert.Equal(t, 9, 3+int(jif.Sx())+1, "forward jump lands right after the back-edge")

	back := prog.Code[8]
	require.Equal(t, compiler.JMP, back.Op())
	assert.Equal(t, 0, 8+int(back.Sx())+1, "back-edge lands on the condition's first instruction")
}

// S4: f <- $(x) { return x + y } in a scope where y is already local.
func TestCompileClosureCapture(t *testing.T) {
	prog := compileSrc(t, "y <- 5\nf <- $(x) {\n  return x + y\n}\n")

	require.Len(t, prog.Constants, 2)
	nested, ok := prog.Constants[1].(*compiler.Program)
	require.True(t, ok, "nested function must be stored as a *compiler.Program constant")

	assert.Equal(t, 1, nested.Argc)
	require.Len(t, nested.Closures(), 1)
	assert.Equal(t, compiler.ClosureEntry{Name: "y", Slot: 0, Source: compiler.FromLocal, Index: 0}, nested.Closures()[0])

	assert.Equal(t, []compiler.Instruction{
		compiler.MakeUx(compiler.LOADL, 0),
		compiler.MakeUx(compiler.LOADC, 0),
		compiler.MakeOp(compiler.ADD),
		compiler.MakeOp(compiler.RET),
	}, nested.Code)

	assert.Equal(t, []compiler.Instruction{
		compiler.MakeUx(compiler.PUSHK, 0),
		compiler.MakeUx(compiler.STORL, 0),
		compiler.MakeUx(compiler.PUSHK, 1),
		compiler.MakeUx(compiler.CLOSE, 1),
		compiler.MakeUx(compiler.STORL, 1),
	}, prog.Code)
}

// S5: t <- { "a": 1, "b": 2 }  t.a <- 3
func TestCompileTableLiteralAndPut(t *testing.T) {
	prog := compileSrc(t, "t <- { \"a\": 1, \"b\": 2 }\nt.a <- 3\n")

	assert.Equal(t, []compiler.Instruction{
		compiler.MakeOp(compiler.TNEW),
		compiler.MakeUx(compiler.PUSHK, 0),
		compiler.MakeUx(compiler.PUSHK, 1),
		compiler.MakeOp(compiler.TPUT),
		compiler.MakeUx(compiler.PUSHK, 2),
		compiler.MakeUx(compiler.PUSHK, 3),
		compiler.MakeOp(compiler.TPUT),
		compiler.MakeUx(compiler.STORL, 0),
		compiler.MakeUx(compiler.LOADL, 0),
		compiler.MakeUx(compiler.PUSHK, 0),
		compiler.MakeUx(compiler.PUSHK, 4),
		compiler.MakeOp(compiler.TPUT),
	}, prog.Code)

	assert.Equal(t, value.Str("a"), prog.Constants[0])
	assert.Equal(t, value.Integer(3), prog.Constants[4])
}

// S6: unterminated string literal fails lexing before the compiler ever runs.
func TestCompileUnterminatedString(t *testing.T) {
	_, err := parser.Parse(`"abc`, "test")
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Position.Line)
	assert.Equal(t, 1, lexErr.Position.Column)
}

func TestCompileNativeCallArgcMismatch(t *testing.T) {
	tree, err := parser.Parse("@print(1, 2)\n", "test")
	require.NoError(t, err)

	_, err = compiler.Compile(tree, "test", nil, compiler.CreateNative("print", 1, nil))
	var callErr *compiler.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "print", callErr.Name)
	assert.Equal(t, 1, callErr.Want)
	assert.Equal(t, 2, callErr.Got)
}

func TestCompileDuplicateParameter(t *testing.T) {
	tree, err := parser.Parse("f <- $(x, x) { return x }\n", "test")
	require.NoError(t, err)

	_, err = compiler.Compile(tree, "test", nil)
	var resolveErr *compiler.ResolveError
	require.ErrorAs(t, err, &resolveErr)
}

// property 7: GetAddressPos is monotonically non-decreasing in source line
// as the instruction index grows, and resolves each instruction to the
// line that produced it even though the underlying table only stores one
// entry per line boundary (spec.md §3's "sparse" line_address_table).
func TestGetAddressPosMonotonic(t *testing.T) {
	prog := compileSrc(t, "x <- 1\ny <- 2\nz <- 3\n")

	require.Len(t, prog.Code, 6)
	wantLines := []int{1, 1, 2, 2, 3, 3}
	lastLine := 0
	for i, want := range wantLines {
		got := prog.GetAddressPos(i).Line
		assert.Equal(t, want, got, "instruction %d", i)
		assert.GreaterOrEqual(t, got, lastLine)
		lastLine = got
	}
}

func TestCompileShortCircuitAnd(t *testing.T) {
	prog := compileSrc(t, "x <- a && b\n")

	require.Len(t, prog.Code, 6)
	assert.Equal(t, compiler.JIF, prog.Code[1].Op())
	assert.Equal(t, compiler.JMP, prog.Code[3].Op())
}
