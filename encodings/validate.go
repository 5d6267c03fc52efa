package encodings

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/turing/machines"
)

// characters that would break the flat encoding or transition keys
const reservedChars = "#,;" + machines.KeyDelimiter

// Validate checks that m is self consistent. All problems are reported,
// each wrapping ErrInvalidMachine.
func Validate(m EncodedMachine) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidMachine}, args...)...))
	}

	checkID := func(kind string, id string) {
		if id == "" {
			fail("empty %s", kind)
		} else if strings.ContainsAny(id, reservedChars) {
			fail("%s %q contains reserved character", kind, id)
		}
	}

	states := make(map[string]bool)
	for _, state := range m.States {
		checkID("state", state)
		if states[state] {
			fail("duplicated state %q", state)
		}
		states[state] = true
	}
	if len(m.States) == 0 {
		fail("no states")
	}

	tapeSymbols := make(map[string]bool)
	for _, symbol := range m.TapeAlphabet {
		checkID("tape symbol", symbol)
		tapeSymbols[symbol] = true
	}

	checkID("blank symbol", m.BlankSymbol)
	if m.BlankSymbol != "" && !tapeSymbols[m.BlankSymbol] {
		fail("blank symbol %q not in tape alphabet", m.BlankSymbol)
	}

	for _, symbol := range m.InputAlphabet {
		if !tapeSymbols[symbol] {
			fail("input symbol %q not in tape alphabet", symbol)
		}
		if symbol == m.BlankSymbol {
			fail("blank symbol %q in input alphabet", symbol)
		}
	}

	if !states[m.InitialState] {
		fail("initial state %q not declared", m.InitialState)
	}
	for _, state := range m.AcceptingStates {
		if !states[state] {
			fail("accepting state %q not declared", state)
		}
	}

	seen := make(map[[2]string]int)
	for i, s := range m.Transitions {
		rule, ok := ParseTransition(s)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %w: transition %d %q", ErrInvalidMachine, ErrMalformedTransition, i, s))
			continue
		}
		if !states[rule.From] {
			fail("transition %d: current state %q not declared", i, rule.From)
		}
		if !states[rule.To] {
			fail("transition %d: next state %q not declared", i, rule.To)
		}
		if !tapeSymbols[rule.Read] {
			fail("transition %d: read symbol %q not in tape alphabet", i, rule.Read)
		}
		if !tapeSymbols[rule.Write] {
			fail("transition %d: write symbol %q not in tape alphabet", i, rule.Write)
		}
		key := [2]string{rule.From, rule.Read}
		if prev, ok := seen[key]; ok {
			fail("transitions %d and %d both match state %q reading %q", prev, i, rule.From, rule.Read)
		} else {
			seen[key] = i
		}
	}

	return errors.Join(errs...)
}

// Accepts reports whether state is declared accepting.
func (m EncodedMachine) Accepts(state string) bool {
	return slices.Contains(m.AcceptingStates, state)
}
