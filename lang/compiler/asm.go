package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders p's code as one "line:index  mnemonic  operand  ;
// comment" line per instruction (spec.md §6). The leading line number comes
// from the line_address_table (GetAddressPos), the one consumer of that
// table outside of tests — it is what lets a reader of the disassembly map
// an instruction back to the source line that produced it. Constants render
// their printable form, locals as L<slot>, upvalues as U<slot>, and globals
// as the interned name. Nested Program constants are rendered recursively
// after the instruction listing. Output is for diagnostics only.
func Disassemble(p *Program) string {
	var b strings.Builder
	disassembleInto(&b, p, "")
	return b.String()
}

func disassembleInto(b *strings.Builder, p *Program, prefix string) {
	for i, instr := range p.Code {
		op := instr.Op()
		line := p.GetAddressPos(i).Line
		fmt.Fprintf(b, "%s%4d:%-4d %-6s", prefix, line, i, op)
		if op.operandKind() != operandNone {
			fmt.Fprintf(b, " %-6s", operandText(p, instr))
		} else {
			fmt.Fprint(b, "       ")
		}
		if comment := operandComment(p, instr); comment != "" {
			fmt.Fprintf(b, " ; %s", comment)
		}
		b.WriteByte('\n')
	}

	for i, k := range p.Constants {
		if nested, ok := k.(*Program); ok && nested.Native == nil {
			fmt.Fprintf(b, "%sfunction@%d:\n", prefix, i)
			disassembleInto(b, nested, prefix+"  ")
		}
	}
}

func operandText(p *Program, instr Instruction) string {
	switch instr.Op().operandKind() {
	case operandUnsigned:
		return strconv.Itoa(int(instr.Ux()))
	case operandSigned:
		return fmt.Sprintf("%+d", instr.Sx())
	default:
		return ""
	}
}

// operandComment explains an instruction's operand for a human reader:
// a constant's printable form for PUSHK, L<slot>/U<slot>/the global name
// for the LOAD/STOR family, and nothing for the rest.
func operandComment(p *Program, instr Instruction) string {
	op, ux := instr.Op(), instr.Ux()
	switch op {
	case PUSHK:
		if int(ux) < len(p.Constants) {
			return p.Constants[ux].String()
		}
	case LOADL, STORL:
		return fmt.Sprintf("L%d", ux)
	case LOADC, STORC:
		return fmt.Sprintf("U%d", ux)
	case LOADG, STORG:
		if int(ux) < len(p.Constants) {
			return p.Constants[ux].String()
		}
	}
	return ""
}
