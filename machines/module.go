package machines

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// HistoryLimit bounds history of machines built without an explicit limit.
type HistoryLimit int

func (Module) HistoryLimit() HistoryLimit {
	return DefaultHistoryLimit
}

type New func(opts Options) (*Machine, error)

func (Module) New(
	logger logs.Logger,
	mode modes.Mode,
	limit HistoryLimit,
) New {
	return func(opts Options) (*Machine, error) {
		if mode == modes.ModeDevelopment {
			opts.History = true
		}
		if opts.HistoryLimit == 0 {
			opts.HistoryLimit = int(limit)
		}
		return NewMachine(logger, opts)
	}
}
