package universal

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
)

type Module struct {
	dscope.Module
	Encodings encodings.Module
}

// New creates a universal machine with the built-in machines in its catalog.
type New func() (*Machine, error)

func (Module) New(
	logger logs.Logger,
	newMachine machines.New,
	build encodings.Builder,
	newSpan logs.NewSpan,
) New {
	return func() (*Machine, error) {
		u, err := newUniversal(logger, newMachine, build, newSpan)
		if err != nil {
			return nil, err
		}
		for _, m := range Builtins() {
			u.Add(m)
		}
		return u, nil
	}
}
