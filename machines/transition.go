package machines

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/reusee/turing/alphabets"
)

// KeyDelimiter joins the read symbols of a multi-head transition into one
// lookup key. Symbol ids must not contain it.
const KeyDelimiter = "|"

type Transition struct {
	From  string
	Read  []string
	To    string
	Write []string
	Moves []Direction
}

func (t Transition) String() string {
	moves := make([]string, len(t.Moves))
	for i, move := range t.Moves {
		moves[i] = move.String()
	}
	return fmt.Sprintf("%s,%s -> %s,%s,%s",
		t.From,
		strings.Join(t.Read, KeyDelimiter),
		t.To,
		strings.Join(t.Write, KeyDelimiter),
		strings.Join(moves, KeyDelimiter),
	)
}

// TransitionFunction is deterministic: one transition per (state, read tuple).
type TransitionFunction struct {
	arity       int
	transitions map[string]map[string]Transition
	count       int
}

func NewTransitionFunction(arity int) *TransitionFunction {
	return &TransitionFunction{
		arity:       arity,
		transitions: make(map[string]map[string]Transition),
	}
}

func (f *TransitionFunction) Arity() int {
	return f.arity
}

func readKey(symbols []string) string {
	return strings.Join(symbols, KeyDelimiter)
}

// Add stores t, replacing any transition with the same state and read tuple.
func (f *TransitionFunction) Add(t Transition) error {
	if len(t.Read) != f.arity ||
		len(t.Write) != f.arity ||
		len(t.Moves) != f.arity {
		return fmt.Errorf(
			"%w: transition %s has %d read, %d write, %d moves, machine has %d heads",
			ErrArityMismatch, t.From, len(t.Read), len(t.Write), len(t.Moves), f.arity,
		)
	}
	for _, symbol := range t.Read {
		if strings.Contains(symbol, KeyDelimiter) {
			return fmt.Errorf("%w: %q contains %q", alphabets.ErrInvalidSymbol, symbol, KeyDelimiter)
		}
	}

	t.Read = slices.Clone(t.Read)
	t.Write = slices.Clone(t.Write)
	t.Moves = slices.Clone(t.Moves)

	byRead, ok := f.transitions[t.From]
	if !ok {
		byRead = make(map[string]Transition)
		f.transitions[t.From] = byRead
	}
	key := readKey(t.Read)
	if _, ok := byRead[key]; !ok {
		f.count++
	}
	byRead[key] = t
	return nil
}

// Get returns the transition for state and read. A miss is not an error.
func (f *TransitionFunction) Get(state string, read []string) (Transition, bool) {
	byRead, ok := f.transitions[state]
	if !ok {
		return Transition{}, false
	}
	t, ok := byRead[readKey(read)]
	return t, ok
}

// From returns the transitions leaving state, ordered by read key.
func (f *TransitionFunction) From(state string) []Transition {
	byRead := f.transitions[state]
	ret := make([]Transition, 0, len(byRead))
	for _, key := range slices.Sorted(maps.Keys(byRead)) {
		ret = append(ret, byRead[key])
	}
	return ret
}

// All returns every transition ordered by state then read key.
func (f *TransitionFunction) All() []Transition {
	ret := make([]Transition, 0, f.count)
	for _, state := range slices.Sorted(maps.Keys(f.transitions)) {
		ret = append(ret, f.From(state)...)
	}
	return ret
}

func (f *TransitionFunction) Len() int {
	return f.count
}

func (f *TransitionFunction) Clear() {
	clear(f.transitions)
	f.count = 0
}
