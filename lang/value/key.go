package value

import "fmt"

// Key returns the canonical `<kind>:<printable form>` string the compiler's
// constant_table uses to intern equal constants (spec.md §4.3
// register_constant). Only the five literal kinds intern; nested Programs
// are always appended fresh, and Tables/NativeFns are never interned.
func Key(v Value) string {
	return fmt.Sprintf("%s:%s", v.Type(), v.String())
}
