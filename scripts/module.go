package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/machines"
)

type Module struct {
	dscope.Module
	Machines machines.Module
}
