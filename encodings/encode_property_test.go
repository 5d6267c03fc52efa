package encodings

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/reusee/turing/machines"
)

func TestEncodingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(42)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("decode inverts encode", prop.ForAll(
		func(states []string, symbols []string, initial string, moves []int) bool {
			var transitions []string
			for i, move := range moves {
				if len(states) == 0 || len(symbols) == 0 {
					break
				}
				transitions = append(transitions, Rule{
					From:  states[i%len(states)],
					Read:  symbols[i%len(symbols)],
					To:    states[(i+1)%len(states)],
					Write: symbols[(i+1)%len(symbols)],
					Move:  machines.Direction(move),
				}.String())
			}
			m := EncodedMachine{
				ID:              "gen",
				States:          states,
				InputAlphabet:   symbols,
				TapeAlphabet:    append(symbols, "_"),
				InitialState:    initial,
				BlankSymbol:     "_",
				AcceptingStates: states,
				Transitions:     transitions,
			}
			decoded := Decode(Encode(m))
			return Equivalent(m, decoded) &&
				Encode(decoded) == Encode(m)
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.Identifier()),
		gen.Identifier(),
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}
