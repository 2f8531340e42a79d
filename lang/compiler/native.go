package compiler

import (
	"errors"

	"github.com/mna/helium/lang/token"
	"github.com/mna/helium/lang/value"
)

var (
	errNoResolver  = errors.New("no import resolver configured")
	errImportCycle = errors.New("cyclic include")
)

// Native describes a host-provided function made available to the
// top-level program as a local bound to a thin dispatcher Program, built
// with CreateNative and passed to Compile (spec.md §4.3 create_native).
// Argc is checked against every call site's argument count at compile
// time, resolving the spec's Open Question on native argument-count
// mismatches as a CallError instead of a deferred runtime failure.
type Native struct {
	Name string
	Argc int
	Fn   func(args []value.Value) (value.Value, error)
}

// CreateNative builds a Native ready to pass to Compile.
func CreateNative(name string, argc int, fn func(args []value.Value) (value.Value, error)) Native {
	return Native{Name: name, Argc: argc, Fn: fn}
}

// installNative appends a thin dispatcher Program{Native: ...} to p's
// constants and declares name as a local bound to that slot, so that
// calls to it compile identically to user-defined functions (spec.md
// §4.3 create_native).
func installNative(p *Program, nat Native, pos token.Pos) error {
	disp := &Program{Argc: nat.Argc, Native: &value.NativeFn{Name: nat.Name, Argc: nat.Argc, Fn: nat.Fn}}
	if _, err := registerConstant(p, disp, pos); err != nil {
		return err
	}
	p.declareLocal(nat.Name)
	return nil
}
