package configs

import (
	"fmt"

	"cuelang.org/go/cue"
	"github.com/reusee/turing/encodings"
)

// Schema describes machine catalogs and simulation settings.
const Schema = `
machines?: [ID=string]: close({
	id:               *ID | string
	name?:            string
	description?:     string
	states:           [...string]
	input_alphabet:   [...string]
	tape_alphabet:    [...string]
	initial_state:    string
	blank_symbol:     *"_" | string
	accepting_states: *[] | [...string]
	transitions:      [...string]
})

settings?: close({
	max_steps?:     int & >0
	history?:       bool
	history_limit?: int & >0
	parallel?:      int & >0
})
`

// Machines returns the machines of every file in definition order. A later
// definition of an id replaces the earlier one in place.
func Machines(loader Loader) ([]encodings.EncodedMachine, error) {
	var ret []encodings.EncodedMachine
	index := make(map[string]int)
	for value, err := range loader.IterCueValues("machines") {
		if err != nil {
			return nil, err
		}
		iter, err := value.Fields(cue.Concrete(true))
		if err != nil {
			return nil, wrap(err)
		}
		for iter.Next() {
			var m encodings.EncodedMachine
			if err := iter.Value().Decode(&m); err != nil {
				return nil, wrap(err)
			}
			if err := encodings.Validate(m); err != nil {
				return nil, fmt.Errorf("machine %s: %w", m.ID, err)
			}
			if i, ok := index[m.ID]; ok {
				ret[i] = m
				continue
			}
			index[m.ID] = len(ret)
			ret = append(ret, m)
		}
	}
	return ret, nil
}
