package compiler

import (
	"testing"

	"github.com/mna/helium/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchJumpInRange(t *testing.T) {
	p := newProgram(nil, 0)
	site := emitJump(p, token.Pos{Line: 1}, JMP)
	for i := 0; i < 5; i++ {
		p.emit(token.Pos{Line: 1}, MakeOp(NOP))
	}
	require.NoError(t, patchJump(p, token.Pos{Line: 1}, site))
	assert.Equal(t, int16(5), p.Code[site].Sx())
}

func TestPatchJumpOverflow(t *testing.T) {
	p := newProgram(nil, 0)
	site := 10
	p.Code = make([]Instruction, site+1)
	p.Code[site] = MakeSx(JMP, 0)

	err := patchJumpTo(p, token.Pos{Line: 1}, site, 1<<17)
	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
}
