package storages

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type Open func(path string) (*Store, error)

func (Module) Open(
	logger logs.Logger,
) Open {
	return func(path string) (*Store, error) {
		return OpenStore(path, logger)
	}
}
