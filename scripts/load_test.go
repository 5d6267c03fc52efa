package scripts

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/modes"
	"github.com/reusee/turing/universal"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		load Load,
	) {
		defined, err := load("testdata/machines.star")
		require.NoError(t, err)
		require.Len(t, defined, 2)

		require.Equal(t, "increment", defined[0].ID)
		require.Equal(t, "Binary Increment", defined[0].Name)
		require.Equal(t, "_", defined[0].BlankSymbol)
		require.True(t, encodings.Equivalent(universal.BinaryIncrement(), defined[0]))

		require.Equal(t, "even", defined[1].ID)
		require.Equal(t, []string{"accept"}, defined[1].AcceptingStates)
		require.Contains(t, defined[1].Transitions, "even,_,accept,_,N")

		_, err = load("testdata/missing.star")
		require.Error(t, err)
	})
}

func TestLoadSourceErrors(t *testing.T) {
	cases := map[string]string{
		"invalid machine": `
machine(
    id = "bad",
    states = ["q"],
    input_alphabet = ["1"],
    tape_alphabet = ["1", "_"],
    initial_state = "missing",
    transitions = [],
)
`,
		"duplicated": `
def m():
    machine(id = "m", states = ["q"], input_alphabet = [], tape_alphabet = ["_"], initial_state = "q", transitions = [])
m()
m()
`,
		"bad move":          `rule("a", "0", "b", "0", "X")`,
		"comma in symbol":   `rule("a", "0,1", "b", "0")`,
		"not a string list": `machine(id = "m", states = [1], input_alphabet = [], tape_alphabet = ["_"], initial_state = "q", transitions = [])`,
		"missing argument":  `machine(id = "m")`,
		"syntax":            `machine(`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSource(nil, name+".star", src)
			require.Error(t, err)
		})
	}

	_, err := LoadSource(nil, "invalid.star", cases["invalid machine"])
	require.ErrorContains(t, err, "machine bad")
	require.ErrorContains(t, err, "initial state")
}

func TestLoadSourcePrint(t *testing.T) {
	defined, err := LoadSource(nil, "print.star", `
print("hello")
x = rule("a", "0", "b", "1", "R")
if x != "a,0,b,1,R":
    fail(x)
`)
	require.NoError(t, err)
	require.Empty(t, defined)
}
