package maincmd

import (
	"errors"
	"fmt"

	"github.com/mna/helium/lang/compiler"
	"github.com/mna/helium/lang/value"
)

// builtinNatives lists the host functions the CLI makes available to the
// "compile" command so call sites against them get compile-time argument
// count checking (compiler.CallError). The VM that would actually execute
// Fn is out of scope; these bodies only exist so Fn is non-nil.
func builtinNatives() []compiler.Native {
	return []compiler.Native{
		compiler.CreateNative("print", 1, nativePrint),
		compiler.CreateNative("len", 1, nativeLen),
	}
}

func nativePrint(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.New("print: expects 1 argument")
	}
	fmt.Println(args[0].String())
	return value.NullValue, nil
}

func nativeLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.New("len: expects 1 argument")
	}
	t, ok := args[0].(*value.Table)
	if !ok {
		return nil, fmt.Errorf("len: expected a table, got %s", args[0].Type())
	}
	return value.Integer(t.Len()), nil
}
