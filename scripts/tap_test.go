package scripts

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/modes"
	"github.com/reusee/turing/universal"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func newIncrementer(t *testing.T) *machines.Machine {
	var m *machines.Machine
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		newMachine machines.New,
	) {
		var err error
		m, err = encodings.Build(newMachine, universal.BinaryIncrement())
		require.NoError(t, err)
	})
	require.NoError(t, m.SetTapeContent("", "1011", 0))
	return m
}

func TestMachineBuiltins(t *testing.T) {
	m := newIncrementer(t)

	thread := &starlark.Thread{Name: "test"}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, "test.star", `
before = state()
moved = step()
pos = position()
pos_named = position(head = 0)
pending = result()
outcome = run(100)
final = tape()
final_main = tape("main")
final_state = state()
count = steps()
h = history()
first = h[0]
reset()
after = state()
`, MachineBuiltins(context.Background(), m))
	require.NoError(t, err)

	require.Equal(t, starlark.String("start"), globals["before"])
	require.Equal(t, starlark.True, globals["moved"])
	require.Equal(t, starlark.MakeInt(1), globals["pos"])
	require.Equal(t, starlark.MakeInt(1), globals["pos_named"])
	require.Equal(t, starlark.None, globals["pending"])
	require.Equal(t, starlark.String("accept"), globals["outcome"])
	require.Equal(t, starlark.String("1100"), globals["final"])
	require.Equal(t, starlark.String("1100"), globals["final_main"])
	require.Equal(t, starlark.String("halt"), globals["final_state"])
	require.Equal(t, starlark.String("start"), globals["after"])

	count, ok := globals["count"].(starlark.Int).Int64()
	require.True(t, ok)
	require.Equal(t, int64(8), count)

	first, ok := globals["first"].(*starlark.Dict)
	require.True(t, ok)
	state, found, err := first.Get(starlark.String("state"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, starlark.String("start"), state)
	moves, found, err := first.Get(starlark.String("moves"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `["R"]`, moves.String())

	_, err = starlark.ExecFileOptions(fileOptions, thread, "bad.star", `position(5)`, MachineBuiltins(context.Background(), m))
	require.Error(t, err)
}

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap Tap,
	) {
		m := newIncrementer(t)
		require.NoError(t, tap(t.Context(), "test", m, map[string]any{
			"foo": 42,
		}))
	})
}

func TestToValue(t *testing.T) {
	type sample struct {
		MaxSteps int
		Tags     []string
		hidden   bool
	}
	v, err := toValue(sample{MaxSteps: 3, Tags: []string{"a"}, hidden: true})
	require.NoError(t, err)
	require.Equal(t, `{"max_steps": 3, "tags": ["a"]}`, v.String())

	v, err = toValue(machines.Left)
	require.NoError(t, err)
	require.Equal(t, starlark.String("L"), v)

	v, err = toValue((*sample)(nil))
	require.NoError(t, err)
	require.Equal(t, starlark.None, v)

	_, err = toValue(make(chan int))
	require.Error(t, err)
}
