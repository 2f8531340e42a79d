package value

import "fmt"

// NativeFn is a host-provided function injected into the constant pool by
// create_native (spec.md §4.3). The compiler never calls Fn; it only needs
// Argc to validate call sites (see CallError, SPEC_FULL.md). The VM is the
// only caller of Fn at runtime.
type NativeFn struct {
	Name string
	Argc int
	Fn   func(args []Value) (Value, error)
}

func (n *NativeFn) String() string { return fmt.Sprintf("<native %s>", n.Name) }
func (n *NativeFn) Type() string   { return "native" }

var _ Value = (*NativeFn)(nil)
