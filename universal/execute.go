package universal

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/turing/alphabets"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
)

// checkInput reports the first character of input outside the input alphabet of m.
func checkInput(m encodings.EncodedMachine, input string) error {
	for i, r := range input {
		if !slices.Contains(m.InputAlphabet, string(r)) {
			return fmt.Errorf("%w: symbol %q at %d not in input alphabet of %s", ErrInvalidInput, r, i, m.ID)
		}
	}
	return nil
}

type execution struct {
	result machines.Result
	output string
	state  string
	steps  uint64
}

// execute drives engine from its initial configuration with input on its tape.
// When stepwise is set the engine is stepped one transition at a time.
func execute(
	ctx context.Context,
	logger logs.Logger,
	engine *machines.Machine,
	blank string,
	input string,
	stepwise bool,
	verbose bool,
	maxSteps uint64,
) (ret execution, err error) {
	if maxSteps == 0 {
		maxSteps = machines.DefaultMaxSteps
	}
	if err := engine.SetTapeContent("", input, 0); err != nil {
		return ret, err
	}
	engine.Reset()

	if stepwise {
		head, err := engine.Head(0)
		if err != nil {
			return ret, err
		}
		for engine.Steps() < maxSteps {
			if err := ctx.Err(); err != nil {
				return ret, err
			}
			state := engine.CurrentState()
			ok, err := engine.Step()
			if err != nil {
				return ret, err
			}
			if !ok {
				break
			}
			if verbose {
				logger.InfoContext(ctx, "simulation step",
					"step", engine.Steps(),
					"state", state,
					"next", engine.CurrentState(),
					"position", head.Position(),
				)
			}
		}
		result, ok := engine.Classify()
		if !ok || engine.Steps() >= maxSteps {
			result = machines.ResultTimeout
		}
		ret.result = result
	} else {
		ret.result, err = engine.Run(ctx, maxSteps)
		if err != nil {
			return ret, err
		}
	}

	content, err := engine.TapeContent("")
	if err != nil {
		return ret, err
	}
	ret.output = strings.Trim(content, string(alphabets.Representation(blank)))
	ret.state = engine.CurrentState()
	ret.steps = engine.Steps()
	return ret, nil
}
