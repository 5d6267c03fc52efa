package arithmetics

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
)

type Module struct {
	dscope.Module
	Machines machines.Module
}

func (Module) Calculator(
	newMachine machines.New,
	logger logs.Logger,
) *Calculator {
	return &Calculator{
		newMachine: newMachine,
		logger:     logger,
	}
}
