// Package value defines the runtime value representation that constrains
// the compiler: how constants are encoded and the call ABI's flat argument
// array (NativeFn). No closure value type is defined here. The VM that actually
// executes these values is out of scope (spec.md §1); this package only
// implements the shapes the compiler must agree on for constant-pool
// encoding and native-function registration.
package value

import "fmt"

// Value is the tagged sum spec.md §3 describes: Integer|Float|Bool|String|
// Null|Program|NativeFn|Table. *compiler.Program implements Value directly
// (see lang/compiler), which is why this interface has no concrete
// dependency on the compiler package — that dependency runs the other way.
type Value interface {
	String() string
	Type() string
}

// Integer is a Value holding a signed 64-bit integer.
type Integer int64

func (i Integer) String() string { return fmt.Sprintf("%d", int64(i)) }
func (i Integer) Type() string   { return "integer" }

// Float is a Value holding a 64-bit floating point number.
type Float float64

func (f Float) String() string { return fmt.Sprintf("%g", float64(f)) }
func (f Float) Type() string   { return "float" }

// Bool is a Value holding a boolean.
type Bool bool

func (b Bool) String() string { return fmt.Sprintf("%t", bool(b)) }
func (b Bool) Type() string   { return "bool" }

// Str is a Value holding a string.
type Str string

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "string" }

// Null is the singleton absent-value Value.
type Null struct{}

func (Null) String() string { return "null" }
func (Null) Type() string   { return "null" }

// NullValue is the single instance of Null, analogous to a language's nil.
var NullValue = Null{}

var (
	_ Value = Integer(0)
	_ Value = Float(0)
	_ Value = Bool(false)
	_ Value = Str("")
	_ Value = Null{}
)
