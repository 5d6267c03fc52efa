package scripts

import (
	"fmt"
	"os"

	"github.com/reusee/e5"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Load executes a machine definition script and returns the defined machines.
type Load func(path string) ([]encodings.EncodedMachine, error)

func (Module) Load(
	logger logs.Logger,
) Load {
	return func(path string) ([]encodings.EncodedMachine, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, wrap(err)
		}
		return LoadSource(logger, path, string(src))
	}
}

// LoadSource executes src with the machine and rule builtins. Machines are
// returned in definition order and must validate.
func LoadSource(logger logs.Logger, name string, src string) ([]encodings.EncodedMachine, error) {
	logger = logs.OrDiscard(logger)
	var defined []encodings.EncodedMachine
	seen := make(map[string]bool)

	machine := starlark.NewBuiltin("machine", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var m encodings.EncodedMachine
		var states, input, tape, accepting, transitions starlark.Value
		blank := "_"
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
			"id", &m.ID,
			"states", &states,
			"input_alphabet", &input,
			"tape_alphabet", &tape,
			"initial_state", &m.InitialState,
			"transitions", &transitions,
			"name?", &m.Name,
			"description?", &m.Description,
			"blank_symbol?", &blank,
			"accepting_states?", &accepting,
		); err != nil {
			return nil, err
		}
		m.BlankSymbol = blank
		var err error
		for _, field := range []struct {
			name   string
			value  starlark.Value
			target *[]string
		}{
			{"states", states, &m.States},
			{"input_alphabet", input, &m.InputAlphabet},
			{"tape_alphabet", tape, &m.TapeAlphabet},
			{"accepting_states", accepting, &m.AcceptingStates},
			{"transitions", transitions, &m.Transitions},
		} {
			if *field.target, err = stringList(field.name, field.value); err != nil {
				return nil, err
			}
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("machine %s defined twice", m.ID)
		}
		if err := encodings.Validate(m); err != nil {
			return nil, fmt.Errorf("machine %s: %w", m.ID, err)
		}
		seen[m.ID] = true
		defined = append(defined, m)
		logger.Debug("script defined machine", "script", name, "id", m.ID)
		return starlark.None, nil
	})

	rule := starlark.NewBuiltin("rule", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var r encodings.Rule
		move := "N"
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
			"from", &r.From,
			"read", &r.Read,
			"to", &r.To,
			"write", &r.Write,
			"move?", &move,
		); err != nil {
			return nil, err
		}
		parsed, ok := encodings.ParseTransition(r.String())
		if !ok || parsed != r {
			return nil, fmt.Errorf("rule: %w: %s", encodings.ErrMalformedTransition, r)
		}
		switch move {
		case "L", "R", "N":
		default:
			return nil, fmt.Errorf("rule: invalid move %q", move)
		}
		r.Move = machines.ParseDirection(move)
		return starlark.String(r.String()), nil
	})

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logger.Info("script", "script", name, "message", msg)
		},
	}
	if _, err := starlark.ExecFileOptions(fileOptions, thread, name, src, starlark.StringDict{
		"machine": machine,
		"rule":    rule,
	}); err != nil {
		return nil, wrap(err)
	}
	return defined, nil
}
