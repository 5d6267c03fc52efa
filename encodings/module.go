package encodings

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/machines"
)

type Module struct {
	dscope.Module
	Machines machines.Module
}

// Builder loads an encoded machine into a fresh engine.
type Builder func(m EncodedMachine) (*machines.Machine, error)

func (Module) Builder(
	newMachine machines.New,
) Builder {
	return func(m EncodedMachine) (*machines.Machine, error) {
		return Build(newMachine, m)
	}
}
