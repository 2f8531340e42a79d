package value_test

import (
	"testing"

	"github.com/mna/helium/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDistinguishesKind(t *testing.T) {
	// The integer 1 and the float 1 must not collide under Key even though
	// their printable forms could otherwise coincide.
	assert.NotEqual(t, value.Key(value.Integer(1)), value.Key(value.Float(1)))
	assert.Equal(t, value.Key(value.Integer(1)), value.Key(value.Integer(1)))
}

func TestTablePutGet(t *testing.T) {
	tbl := value.NewTable(4)
	tbl.Put(value.Str("a"), value.Integer(1))

	got, ok := tbl.Get(value.Str("a"))
	require.True(t, ok)
	assert.Equal(t, value.Integer(1), got)

	_, ok = tbl.Get(value.Str("missing"))
	assert.False(t, ok)

	assert.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.Remove(value.Str("a")))
	assert.Equal(t, 0, tbl.Len())
}

func TestNativeFnType(t *testing.T) {
	fn := &value.NativeFn{Name: "print", Argc: 1}
	assert.Equal(t, "native", fn.Type())
	assert.Contains(t, fn.String(), "print")
}
