package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryCaseInsensitiveLookup(t *testing.T) {
	r := NewRegistry()
	r.Register("MyFunc", func(args []Value, fctx FuncContext) Value { return "ok" })

	fn, ok := r.Get("myfunc")
	require.True(t, ok)
	require.Equal(t, "ok", fn(nil, FuncContext{}))

	require.True(t, r.Has("MYFUNC"))
	require.Contains(t, r.Names(), "MyFunc")
}

func TestRegistrySecondRegistrationReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("F", func(args []Value, fctx FuncContext) Value { return 1.0 })
	r.Register("f", func(args []Value, fctx FuncContext) Value { return 2.0 })

	fn, ok := r.Get("F")
	require.True(t, ok)
	require.Equal(t, 2.0, fn(nil, FuncContext{}))
	require.Equal(t, []string{"f"}, r.Names())
}

func TestRegistryUnknownNameIsMissing(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("NOPE")
	require.False(t, ok)
}

func TestRegistryRegisterFunctionsBulkRegisters(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunctions(map[string]Function{
		"ONE": func(args []Value, fctx FuncContext) Value { return 1.0 },
		"TWO": func(args []Value, fctx FuncContext) Value { return 2.0 },
	})

	one, ok := r.Get("one")
	require.True(t, ok)
	require.Equal(t, 1.0, one(nil, FuncContext{}))

	two, ok := r.Get("Two")
	require.True(t, ok)
	require.Equal(t, 2.0, two(nil, FuncContext{}))
}
