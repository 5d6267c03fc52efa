package encodings

import (
	"fmt"
	"strings"

	"github.com/reusee/turing/machines"
)

// EncodedMachine is a flat description of a single-tape machine, the unit a
// universal machine simulates.
type EncodedMachine struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	States          []string `json:"states"`
	InputAlphabet   []string `json:"input_alphabet"`
	TapeAlphabet    []string `json:"tape_alphabet"`
	InitialState    string   `json:"initial_state"`
	BlankSymbol     string   `json:"blank_symbol"`
	AcceptingStates []string `json:"accepting_states"`
	// Transitions use the form currentState,readSymbol,nextState,writeSymbol,moveDirection
	Transitions []string `json:"transitions"`
}

// Rule is one parsed transition string.
type Rule struct {
	From  string
	Read  string
	To    string
	Write string
	Move  machines.Direction
}

func (r Rule) String() string {
	return strings.Join([]string{r.From, r.Read, r.To, r.Write, r.Move.String()}, ",")
}

// ParseTransition parses a transition string. Directions other than L and R
// become N.
func ParseTransition(s string) (Rule, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return Rule{}, false
	}
	return Rule{
		From:  parts[0],
		Read:  parts[1],
		To:    parts[2],
		Write: parts[3],
		Move:  machines.ParseDirection(parts[4]),
	}, true
}

func (m EncodedMachine) Rules() ([]Rule, error) {
	ret := make([]Rule, 0, len(m.Transitions))
	for i, s := range m.Transitions {
		rule, ok := ParseTransition(s)
		if !ok {
			return nil, fmt.Errorf("%w: transition %d %q", ErrMalformedTransition, i, s)
		}
		ret = append(ret, rule)
	}
	return ret, nil
}
