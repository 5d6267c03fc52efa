package programs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
)

// Executor runs programs against a machine's heads.
type Executor struct {
	Logger logs.Logger
	// head selected by the head command
	head int
}

// Execute runs instructions from the current PC until the program ends or
// maxInstructions instructions have run. A zero budget means no limit.
func (e *Executor) Execute(ctx context.Context, program *Program, machine *machines.Machine, maxInstructions int) error {
	executed := 0
	for !program.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if maxInstructions > 0 && executed >= maxInstructions {
			return fmt.Errorf("%w: %d", ErrInstructionLimit, maxInstructions)
		}
		if err := e.Step(ctx, program, machine); err != nil {
			return err
		}
		executed++
	}
	e.Logger.InfoContext(ctx, "program done",
		"instructions", executed,
		"state", machine.CurrentState(),
	)
	return nil
}

// Step executes the instruction at PC.
func (e *Executor) Step(ctx context.Context, program *Program, machine *machines.Machine) error {
	if program.Done() {
		return nil
	}
	inst := program.Instructions[program.PC]
	e.Logger.DebugContext(ctx, "executing instruction",
		"pc", program.PC,
		"line", inst.Line,
		"instruction", inst.String(),
	)
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("line %d: %w", inst.Line, err)
	}
	next, jump, err := e.dispatch(ctx, program, machine, inst)
	if err != nil {
		return fmt.Errorf("line %d: %s: %w", inst.Line, inst, err)
	}
	if jump {
		program.PC = next
	} else {
		program.PC++
	}
	return nil
}

func intArg(inst Instruction, i int, def int) int {
	if i >= len(inst.Args) {
		return def
	}
	n, err := strconv.Atoi(inst.Args[i])
	if err != nil {
		return def
	}
	return n
}

// dispatch reports the jump target when the instruction transfers control.
func (e *Executor) dispatch(ctx context.Context, program *Program, machine *machines.Machine, inst Instruction) (next int, jump bool, err error) {
	if inst.Command == "head" {
		i := intArg(inst, 0, 0)
		if _, err := machine.Head(i); err != nil {
			return 0, false, err
		}
		e.head = i
		return 0, false, nil
	}

	head, err := machine.Head(e.head)
	if err != nil {
		return 0, false, err
	}

	switch inst.Command {
	case "nop":

	case "right":
		head.MoveRight(intArg(inst, 0, 1))

	case "left":
		head.MoveLeft(intArg(inst, 0, 1))

	case "moveto":
		head.MoveTo(intArg(inst, 0, 0))

	case "write":
		if err := head.Write(inst.Args[0]); err != nil {
			return 0, false, err
		}

	case "erase":
		if err := head.Write(machine.Alphabet().BlankID()); err != nil {
			return 0, false, err
		}

	case "read":
		symbol, err := head.Read()
		if err != nil {
			return 0, false, err
		}
		program.Output = append(program.Output, symbol)

	case "step":
		if _, err := machine.Step(); err != nil {
			return 0, false, err
		}

	case "run":
		result, err := machine.Run(ctx, uint64(intArg(inst, 0, machines.DefaultMaxSteps)))
		if err != nil {
			return 0, false, err
		}
		e.Logger.InfoContext(ctx, "program run", "result", result, "state", machine.CurrentState())

	case "jump":
		return intArg(inst, 0, 0), true, nil

	case "jumpif":
		symbol, err := head.Read()
		if err != nil {
			return 0, false, err
		}
		if symbol == inst.Args[0] {
			return intArg(inst, 1, 0), true, nil
		}

	case "exit":
		return len(program.Instructions), true, nil

	default:
		return 0, false, fmt.Errorf("%w: %s", ErrUnknownCommand, inst.Command)
	}

	return 0, false, nil
}
