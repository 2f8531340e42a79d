package compiler

import (
	"github.com/mna/helium/lang/token"
	"github.com/mna/helium/lang/value"
)

const maxAddress = 0xffff

// registerConstant interns v into p's constant pool (spec.md §4.3
// register_constant), keyed by value.Key so equal literals share a slot.
// Programs are never interned: each nested function is a distinct value
// even if byte-for-byte identical to another.
func registerConstant(p *Program, v value.Value, pos token.Pos) (uint16, error) {
	if _, isProgram := v.(*Program); !isProgram {
		key := value.Key(v)
		if idx, ok := p.constants.Get(key); ok {
			return idx, nil
		}
		if len(p.Constants) > maxAddress {
			return 0, &ResolveError{Position: pos, Message: "constant pool overflow"}
		}
		idx := uint16(len(p.Constants))
		p.Constants = append(p.Constants, v)
		p.constants.Put(key, idx)
		return idx, nil
	}
	if len(p.Constants) > maxAddress {
		return 0, &ResolveError{Position: pos, Message: "constant pool overflow"}
	}
	idx := uint16(len(p.Constants))
	p.Constants = append(p.Constants, v)
	return idx, nil
}

// registerVariable resolves name for an assignment target: Local or
// Closed if already known anywhere up the prev chain, otherwise a fresh
// Local slot is declared in p. Grounded on compiler.h's register_variable,
// which (unlike dereference_variable) declares rather than falls back to
// Global.
func registerVariable(p *Program, name string) (uint16, Scope) {
	if slot, scope, ok := resolve(p, name); ok {
		return slot, scope
	}
	return p.declareLocal(name), Local
}

// registerUniqueVariableLocal declares name as a brand new local of p,
// refusing a name already local to p. Used for function parameters, which
// may not shadow one another within the same parameter list.
func registerUniqueVariableLocal(p *Program, name string, pos token.Pos) (uint16, error) {
	if _, ok := p.symbols.Get(name); ok {
		return 0, &ResolveError{Position: pos, Message: "duplicate local \"" + name + "\" in this scope"}
	}
	return p.declareLocal(name), nil
}

// dereferenceVariable resolves name for a read: Local or Closed if found
// up the prev chain, otherwise Global, registering name's string constant
// so the VM can look it up by name at runtime. Grounded on compiler.h's
// dereference_variable.
func dereferenceVariable(p *Program, name string, pos token.Pos) (uint16, Scope, error) {
	if slot, scope, ok := resolve(p, name); ok {
		return slot, scope, nil
	}
	idx, err := registerConstant(p, value.Str(name), pos)
	if err != nil {
		return 0, Global, err
	}
	return idx, Global, nil
}
