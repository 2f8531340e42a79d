package compiler_test

import (
	"testing"

	"github.com/mna/helium/lang/compiler"
	"github.com/stretchr/testify/assert"
)

func TestInstructionRoundTrip(t *testing.T) {
	i := compiler.MakeUx(compiler.PUSHK, 513)
	assert.Equal(t, compiler.PUSHK, i.Op())
	assert.Equal(t, uint16(513), i.Ux())

	j := compiler.MakeSx(compiler.JMP, -7)
	assert.Equal(t, compiler.JMP, j.Op())
	assert.Equal(t, int16(-7), j.Sx())

	n := compiler.MakeOp(compiler.RET)
	assert.Equal(t, compiler.RET, n.Op())
	assert.Equal(t, uint16(0), n.Ux())
}

func TestInstructionString(t *testing.T) {
	assert.Equal(t, "RET", compiler.MakeOp(compiler.RET).String())
	assert.Equal(t, "PUSHK 3", compiler.MakeUx(compiler.PUSHK, 3).String())
	assert.Equal(t, "JMP +2", compiler.MakeSx(compiler.JMP, 2).String())
	assert.Equal(t, "JIF -1", compiler.MakeSx(compiler.JIF, -1).String())
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "ADD", compiler.ADD.String())
	assert.Contains(t, compiler.Opcode(200).String(), "ILLEGAL")
}
