package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func noop(argc int, argv []string) int { return 0 }

func TestRegisterByName(t *testing.T) {
	resolver := newFakeResolver(map[string][]string{"test": {"success", "failure"}})
	registrar := NewRegistrar()
	registrar.Register("test", "success", noop)

	reg := NewRegistry(resolver, registrar)
	d, err := reg.RegisterByName("test", "success")
	require.NoError(t, err)
	require.Equal(t, "test.success", d.ID())
	require.Equal(t, 1, reg.Length())
	require.NotNil(t, reg.At(0).Entry)
	require.Equal(t, 0, reg.At(0).Entry(1, []string{"prog"}))
	require.Equal(t, "test", reg.At(0).Suite)
	require.Equal(t, "success", reg.At(0).Name)
	_ = d
}

func TestRegisterByNameMissingSymbol(t *testing.T) {
	resolver := newFakeResolver(map[string][]string{"test": {"success"}})
	registrar := NewRegistrar()
	registrar.Register("test", "success", noop)

	reg := NewRegistry(resolver, registrar)
	_, err := reg.RegisterByName("test", "nosuch")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSymbolNotFound))
	require.Equal(t, 0, reg.Length())
}

func TestRegisterByNameDefinedButNotRegistered(t *testing.T) {
	resolver := newFakeResolver(map[string][]string{"test": {"orphan"}})
	registrar := NewRegistrar()

	reg := NewRegistry(resolver, registrar)
	_, err := reg.RegisterByName("test", "orphan")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotRegistered))
}

func TestRegisterSuite(t *testing.T) {
	resolver := newFakeResolver(map[string][]string{"test": {"a", "b", "c"}})
	registrar := NewRegistrar()
	registrar.Register("test", "a", noop)
	registrar.Register("test", "b", noop)
	registrar.Register("test", "c", noop)

	reg := NewRegistry(resolver, registrar)
	n, err := reg.RegisterSuite("test")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, 3, reg.Length())

	var ids []string
	for _, d := range reg.All() {
		ids = append(ids, d.ID())
	}
	require.Equal(t, []string{"test.a", "test.b", "test.c"}, ids)
}

func TestRegisterSuiteEmpty(t *testing.T) {
	resolver := newFakeResolver(nil)
	reg := NewRegistry(resolver, NewRegistrar())
	_, err := reg.RegisterSuite("nosuch")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrEmptySuite))
}

func TestRegisterFuncAllowsDuplicates(t *testing.T) {
	reg := NewRegistry(newFakeResolver(nil), NewRegistrar())
	reg.RegisterFunc("test", "dup", noop)
	reg.RegisterFunc("test", "dup", noop)
	require.Equal(t, 2, reg.Length())
}

func TestRegistryAtPanicsOutOfRange(t *testing.T) {
	reg := NewRegistry(newFakeResolver(nil), NewRegistrar())
	require.Panics(t, func() { reg.At(0) })
}
