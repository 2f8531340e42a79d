package compiler

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/helium/lang/token"
	"github.com/mna/helium/lang/value"
)

// Scope identifies where a resolved variable lives, per spec.md §4.3.
type Scope uint8

const (
	Global Scope = iota
	Local
	Closed
)

func (s Scope) String() string {
	switch s {
	case Local:
		return "local"
	case Closed:
		return "closed"
	default:
		return "global"
	}
}

// ClosureSource records where a captured upvalue is taken from in the
// enclosing program: one of its locals, or one of its own upvalues
// (which chains the capture one level further up).
type ClosureSource uint8

const (
	FromLocal ClosureSource = iota
	FromUpvalue
)

// ClosureEntry is one row of a program's closure_table: a name captured
// from the enclosing program, the slot it occupies here, and where in
// the enclosing program it is captured from.
type ClosureEntry struct {
	Name   string
	Slot   uint16
	Source ClosureSource
	Index  uint16 // prev's local slot (FromLocal) or prev's upvalue slot (FromUpvalue)
}

// LineEntry maps the index of an emitted instruction to the source
// position that produced it (spec.md's line_address_table / getaddresspos).
type LineEntry struct {
	Index int
	Pos   token.Pos
}

// Program is the compiled unit produced for the top-level chunk and for
// every nested function: code, constant pool, and the bookkeeping tables
// the compiler needs to resolve names and patch jumps. Program itself
// implements value.Value so that nested functions can sit directly in an
// enclosing program's constant pool (spec.md §3: "Program values appear
// in constant pools to represent nested functions") without a separate
// wrapper type — unlike the teacher's machine.Function, which wraps a
// *compiler.Funcode; see DESIGN.md.
type Program struct {
	Code      []Instruction
	Constants []value.Value
	Argc      int
	Native    *value.NativeFn

	prev      *Program
	numLocals int

	symbols   *swiss.Map[string, uint16]
	constants *swiss.Map[string, uint16]
	closures  []ClosureEntry
	closureAt *swiss.Map[string, uint16]
	lines     []LineEntry
}

var _ value.Value = (*Program)(nil)

func newProgram(prev *Program, argc int) *Program {
	return &Program{
		Argc:      argc,
		prev:      prev,
		symbols:   swiss.NewMap[string, uint16](8),
		constants: swiss.NewMap[string, uint16](8),
		closureAt: swiss.NewMap[string, uint16](4),
	}
}

func (p *Program) String() string { return fmt.Sprintf("<program %p>", p) }
func (p *Program) Type() string   { return "program" }

// NumLocals returns the number of distinct local slots registered in p.
func (p *Program) NumLocals() int { return p.numLocals }

// Closures returns p's closure_table in capture (slot) order.
func (p *Program) Closures() []ClosureEntry { return p.closures }

// LocalSlot reports the slot assigned to name if it is a local of p.
func (p *Program) LocalSlot(name string) (uint16, bool) { return p.symbols.Get(name) }

// GetAddressPos returns the source position recorded for the greatest
// logged instruction index <= idx, the zero Pos if none was recorded yet.
func (p *Program) GetAddressPos(idx int) token.Pos {
	var pos token.Pos
	for _, e := range p.lines {
		if e.Index > idx {
			break
		}
		pos = e.Pos
	}
	return pos
}

// recordLine appends a new line_address_table entry only when pos begins a
// new source line (spec.md §3: sparse, one entry per source line boundary;
// §4.3: append "whenever the next instruction begins a new source line").
// Instructions emitted for the same line as the last recorded entry add
// nothing, keeping the table sparse instead of one entry per instruction.
func (p *Program) recordLine(pos token.Pos) {
	if n := len(p.lines); n > 0 && p.lines[n-1].Pos.Line == pos.Line {
		return
	}
	p.lines = append(p.lines, LineEntry{Index: len(p.Code), Pos: pos})
}

func (p *Program) emit(pos token.Pos, instr Instruction) int {
	p.recordLine(pos)
	idx := len(p.Code)
	p.Code = append(p.Code, instr)
	return idx
}

func (p *Program) declareLocal(name string) uint16 {
	slot := uint16(p.numLocals)
	p.symbols.Put(name, slot)
	p.numLocals++
	return slot
}

func (p *Program) addClosureEntry(name string, source ClosureSource, index uint16) uint16 {
	slot := uint16(len(p.closures))
	p.closures = append(p.closures, ClosureEntry{Name: name, Slot: slot, Source: source, Index: index})
	p.closureAt.Put(name, slot)
	return slot
}

// resolve walks p then its prev chain looking for name as a Local or an
// already-Closed upvalue. When found in an ancestor it establishes the
// capture chain down through every intermediate program, mirroring
// compiler.h's register_variable/dereference_variable shared core.
func resolve(p *Program, name string) (slot uint16, scope Scope, found bool) {
	if s, ok := p.symbols.Get(name); ok {
		return s, Local, true
	}
	if s, ok := p.closureAt.Get(name); ok {
		return s, Closed, true
	}
	if p.prev == nil {
		return 0, Global, false
	}
	pslot, pscope, ok := resolve(p.prev, name)
	if !ok {
		return 0, Global, false
	}
	src := FromLocal
	if pscope == Closed {
		src = FromUpvalue
	}
	slot = p.addClosureEntry(name, src, pslot)
	return slot, Closed, true
}
