package compiler

import (
	"math"

	"github.com/mna/helium/lang/token"
)

// emitJump emits a JIF/JMP with a placeholder zero operand and returns its
// instruction index, to be fixed up later by patchJump once the target is
// known (spec.md §4.3: "a placeholder operand of 0, later patched").
func emitJump(p *Program, pos token.Pos, op Opcode) int {
	return p.emit(pos, MakeSx(op, 0))
}

// patchJump rewrites the jump instruction at site so that it lands on the
// next instruction to be emitted, as target_index - site_index - 1
// (spec.md §4.3), i.e. PC-relative to the instruction following the jump.
func patchJump(p *Program, pos token.Pos, site int) error {
	return patchJumpTo(p, pos, site, len(p.Code))
}

// patchJumpTo rewrites the jump instruction at site to land on target,
// bounds-checking the resulting PC-relative offset against the signed
// 16-bit operand's range before packing it. A distance that doesn't fit is
// a ResolveError (spec.md §4.3 "jump distances must fit in 16 bits", §7,
// invariant 6), not a silently wrapped offset.
func patchJumpTo(p *Program, pos token.Pos, site, target int) error {
	offset := target - site - 1
	if offset < math.MinInt16 || offset > math.MaxInt16 {
		return &ResolveError{Position: pos, Message: "jump overflow: offset out of 16-bit range"}
	}
	op := p.Code[site].Op()
	p.Code[site] = MakeSx(op, int16(offset))
	return nil
}
