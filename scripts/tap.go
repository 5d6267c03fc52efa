package scripts

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap opens an interactive session over machine. globals are exposed next to
// the machine builtins.
type Tap func(ctx context.Context, what string, machine *machines.Machine, globals map[string]any) error

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, machine *machines.Machine, globals map[string]any) error {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := MachineBuiltins(ctx, machine)
		for name, value := range globals {
			v, err := toValue(value)
			if err != nil {
				return fmt.Errorf("global %s: %w", name, err)
			}
			mappings[name] = v
		}

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(fileOptions, thread, mappings)
		return nil
	}
}

// MachineBuiltins binds machine inspection and stepping functions:
// step(), run(max_steps), reset(), state(), steps(), result(),
// tape(name), position(head), history().
func MachineBuiltins(ctx context.Context, machine *machines.Machine) starlark.StringDict {
	builtin := func(name string, fn func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error)) *starlark.Builtin {
		return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			ret, err := fn(args, kwargs)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return toValue(ret)
		})
	}

	return starlark.StringDict{

		"step": builtin("step", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			if err := starlark.UnpackArgs("step", args, kwargs); err != nil {
				return nil, err
			}
			return machine.Step()
		}),

		"run": builtin("run", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			maxSteps := machines.DefaultMaxSteps
			if err := starlark.UnpackArgs("run", args, kwargs, "max_steps?", &maxSteps); err != nil {
				return nil, err
			}
			if maxSteps < 0 {
				return nil, fmt.Errorf("negative max_steps: %d", maxSteps)
			}
			result, err := machine.Run(ctx, uint64(maxSteps))
			return string(result), err
		}),

		"reset": builtin("reset", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			if err := starlark.UnpackArgs("reset", args, kwargs); err != nil {
				return nil, err
			}
			machine.Reset()
			return nil, nil
		}),

		"state": builtin("state", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			if err := starlark.UnpackArgs("state", args, kwargs); err != nil {
				return nil, err
			}
			return machine.CurrentState(), nil
		}),

		"steps": builtin("steps", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			if err := starlark.UnpackArgs("steps", args, kwargs); err != nil {
				return nil, err
			}
			return machine.Steps(), nil
		}),

		"result": builtin("result", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			if err := starlark.UnpackArgs("result", args, kwargs); err != nil {
				return nil, err
			}
			result, ok := machine.Classify()
			if !ok {
				return nil, nil
			}
			return string(result), nil
		}),

		"tape": builtin("tape", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			var name string
			if err := starlark.UnpackArgs("tape", args, kwargs, "name?", &name); err != nil {
				return nil, err
			}
			return machine.TapeContent(name)
		}),

		"position": builtin("position", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			var i int
			if err := starlark.UnpackArgs("position", args, kwargs, "head?", &i); err != nil {
				return nil, err
			}
			head, err := machine.Head(i)
			if err != nil {
				return nil, err
			}
			return head.Position(), nil
		}),

		"history": builtin("history", func(args starlark.Tuple, kwargs []starlark.Tuple) (any, error) {
			if err := starlark.UnpackArgs("history", args, kwargs); err != nil {
				return nil, err
			}
			return machine.History(), nil
		}),
	}
}
