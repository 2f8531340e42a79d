package compiler

import (
	"fmt"

	"github.com/mna/helium/lang/token"
)

// ResolveError reports a name/scope resolution failure: a duplicate local
// declaration in the same program, or a jump/constant table that would
// overflow its 16-bit address space.
type ResolveError struct {
	Position token.Pos
	Message  string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// ImportError wraps a resolver failure (missing file, I/O error) or a
// parse/lex failure in the imported source with the position of the
// Include statement that triggered it.
type ImportError struct {
	Position token.Pos
	Path     string
	Err      error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: importing %q: %v", e.Position, e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// CallError reports a native function invoked with the wrong number of
// arguments, detected at compile time since a NativeFn's Argc is known
// as soon as it is registered as a constant (SPEC_FULL.md, resolving the
// spec's Open Question on native argument-count mismatches).
type CallError struct {
	Position token.Pos
	Name     string
	Want     int
	Got      int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s expects %d argument(s), got %d", e.Position, e.Name, e.Want, e.Got)
}
