package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/turing/cmds"
	"github.com/reusee/turing/configs"
	"github.com/reusee/turing/modes"
)

var (
	cueFiles    = cmds.Collect[string]("-cue", "load machines and settings from a CUE file")
	scriptFiles = cmds.Collect[string]("-script", "load machines from a Starlark script")
	dbPath      = cmds.Var[string]("-db", "SQLite database for machines and run logs")
	maxSteps    = cmds.Var[uint64]("-max-steps", "step budget per simulation")
	parallel    = cmds.Var[int]("-parallel", "concurrent batch jobs")
	verbose     = cmds.Switch("-verbose", "log every simulation step")
)

// action runs after all arguments are parsed, in command line order.
type action func(ctx context.Context, scope dscope.Scope) error

var actions []action

var wrap = e5.Wrap.With(e5.WrapStacktrace)

func queue(act action) {
	actions = append(actions, act)
}

func ce(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	if err := cmds.GlobalExecutor.Execute(os.Args[1:]); err != nil {
		ce(wrap(err))
	}

	if len(actions) == 0 {
		cmds.GlobalExecutor.PrintUsage()
		return
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	loader := configs.NewLoader(*cueFiles, configs.Schema)
	scope, err := configs.Fork(scope, loader)
	ce(err)
	scope = scope.Fork(
		func() configs.Loader {
			return loader
		},
	)

	ctx := context.Background()
	for _, act := range actions {
		ce(act(ctx, scope))
	}
}
