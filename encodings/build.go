package encodings

import (
	"slices"

	"github.com/reusee/turing/alphabets"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/vars"
)

// Build validates m and loads it into a single-tape engine constructed by
// newMachine. Reserved states listed in m keep their reserved flags.
func Build(newMachine machines.New, m EncodedMachine) (*machines.Machine, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	machine, err := newMachine(machines.Options{
		Name:         vars.FirstNonZero(m.Name, m.ID),
		Description:  m.Description,
		Type:         machines.Standard,
		Blank:        m.BlankSymbol,
		InitialState: m.InitialState,
	})
	if err != nil {
		return nil, err
	}

	for _, symbol := range m.TapeAlphabet {
		category := "tape"
		switch {
		case symbol == m.BlankSymbol:
			continue
		case m.hasInput(symbol):
			category = "input"
		}
		machine.AddSymbol(symbol, alphabets.Representation(symbol), category)
	}

	for _, id := range m.States {
		if _, ok := machine.State(id); ok {
			continue
		}
		machine.AddState(machines.NewState(id))
	}
	for _, id := range m.AcceptingStates {
		if err := machine.SetAccepting(id, true); err != nil {
			return nil, err
		}
	}

	rules, err := m.Rules()
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		if err := machine.AddTransition(
			rule.From,
			[]string{rule.Read},
			rule.To,
			[]string{rule.Write},
			[]machines.Direction{rule.Move},
		); err != nil {
			return nil, err
		}
	}

	return machine, nil
}

func (m EncodedMachine) hasInput(symbol string) bool {
	return slices.Contains(m.InputAlphabet, symbol)
}

// Equivalent reports whether a and b describe the same machine, comparing
// lists as sets and ignoring identity fields.
func Equivalent(a, b EncodedMachine) bool {
	return sameSet(a.States, b.States) &&
		sameSet(a.InputAlphabet, b.InputAlphabet) &&
		sameSet(a.TapeAlphabet, b.TapeAlphabet) &&
		a.InitialState == b.InitialState &&
		a.BlankSymbol == b.BlankSymbol &&
		sameSet(a.AcceptingStates, b.AcceptingStates) &&
		sameSet(a.Transitions, b.Transitions)
}

func sameSet(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	other := make(map[string]bool, len(b))
	for _, s := range b {
		if !set[s] {
			return false
		}
		other[s] = true
	}
	return len(set) == len(other)
}
