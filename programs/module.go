package programs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
)

type Module struct {
	dscope.Module
	Machines machines.Module
}

func (Module) Executor(
	logger logs.Logger,
) func() *Executor {
	return func() *Executor {
		return &Executor{
			Logger: logger,
		}
	}
}
