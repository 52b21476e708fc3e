package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robolink/serlink/pkg/command"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterInit("LED1", func() {}))
	require.NoError(t, r.RegisterUpdate("LED1", 0, func(int) {}))
	require.Equal(t, command.ErrDuplicate, r.RegisterInit("LED1", func() {}))
	require.Equal(t, command.ErrDuplicate, r.RegisterUpdate("LED1", 1, func(int) {}))
	require.Equal(t, command.ErrBadName, r.RegisterUpdate("not a name", 0, func(int) {}))

	r.seal()
	require.Equal(t, command.ErrSealed, r.RegisterUpdate("LED2", 0, func(int) {}))
	require.Equal(t, command.ErrSealed, r.RegisterInit("LED2", func() {}))
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	var got []int
	require.NoError(t, r.RegisterUpdate("SRV1", 90, func(v int) { got = append(got, v) }))

	require.True(t, r.Dispatch("SRV1", 45))
	require.Equal(t, []int{45}, got)
	cur, ok := r.Current("SRV1")
	require.True(t, ok)
	require.Equal(t, 45, cur)

	// unknown name and init-only name are silently ignored
	require.False(t, r.Dispatch("NOPE", 1))
	require.NoError(t, r.RegisterInit("RAW1", func() {}))
	require.False(t, r.Dispatch("RAW1", 1))
	require.Equal(t, []int{45}, got)
}

func TestRegistryReinitializeAll(t *testing.T) {
	r := NewRegistry()
	var calls []string
	require.NoError(t, r.RegisterUpdate("B", 2, func(v int) { calls = append(calls, "B") }))
	require.NoError(t, r.RegisterUpdate("A", 1, func(v int) { calls = append(calls, "A") }))

	require.True(t, r.Dispatch("A", 10))
	require.True(t, r.Dispatch("B", 20))
	calls = nil

	r.ReinitializeAll()
	// registration order, not dispatch order
	require.Equal(t, []string{"B", "A"}, calls)
	cur, _ := r.Current("A")
	require.Equal(t, 1, cur)
	cur, _ = r.Current("B")
	require.Equal(t, 2, cur)
}

func TestRegistryReinitializeIdempotent(t *testing.T) {
	r := NewRegistry()
	var last int
	require.NoError(t, r.RegisterUpdate("X1", 0, func(v int) { last = v }))

	// dispatching the init value then reinitializing leaves the
	// current value unchanged
	require.True(t, r.Dispatch("X1", 0))
	r.ReinitializeAll()
	require.Equal(t, 0, last)
	cur, _ := r.Current("X1")
	require.Equal(t, 0, cur)
}

func TestRegistryInitAll(t *testing.T) {
	r := NewRegistry()
	var calls []string
	require.NoError(t, r.RegisterInit("B", func() { calls = append(calls, "B") }))
	require.NoError(t, r.RegisterInit("A", func() { calls = append(calls, "A") }))
	r.initAll()
	require.Equal(t, []string{"B", "A"}, calls)
}
