package value

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Table is the composite value produced by TNEW/TPUT/TGET/TREM. It mirrors
// the teacher's swiss-map-backed machine.Map (lang/machine/map.go)
// construction and Get/SetKey shape, since Table construction is the one
// runtime-shaped value the compiler must model structurally (for table
// literal codegen and for tests asserting on TNEW/TPUT sequences), even
// though the VM's actual indexing/iteration semantics are out of scope.
type Table struct {
	m *swiss.Map[Value, Value]
}

var _ Value = (*Table)(nil)

// NewTable returns a Table with initial capacity for at least size entries.
func NewTable(size int) *Table {
	if size < 1 {
		size = 1
	}
	return &Table{m: swiss.NewMap[Value, Value](uint32(size))}
}

func (t *Table) String() string { return fmt.Sprintf("table(%p)", t) }
func (t *Table) Type() string   { return "table" }

// Put inserts or overwrites the value for key (TPUT).
func (t *Table) Put(key, val Value) {
	t.m.Put(key, val)
}

// Get returns the value for key and whether it was present (TGET).
func (t *Table) Get(key Value) (Value, bool) {
	return t.m.Get(key)
}

// Remove deletes key from the table, reporting whether it was present (TREM).
func (t *Table) Remove(key Value) bool {
	return t.m.Delete(key)
}

// Len returns the number of entries currently in the table.
func (t *Table) Len() int {
	return int(t.m.Count())
}
