package arithmetics

import (
	"context"
	"fmt"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
)

const (
	tapeA      = "a"
	tapeB      = "b"
	tapeResult = "result"
)

// Calculator computes binary arithmetic by running multi-tape machines.
// Operands are aligned on their least significant digit at position 0 and
// all heads sweep left together.
type Calculator struct {
	newMachine machines.New
	logger     logs.Logger
}

var bits = []string{"0", "1", "_"}

func value(symbol string) int {
	if symbol == "1" {
		return 1
	}
	return 0
}

// columnMachine builds a machine with one state per carry value. combine
// maps a column to its result digit and outgoing carry. finish decides what
// happens past the most significant column.
func (c *Calculator) columnMachine(
	name string,
	combine func(x, y, carry int) (digit, next int),
	finish func(carry int) (write string, state string),
) (*machines.Machine, error) {
	m, err := c.newMachine(machines.Options{
		Name:         name,
		Tapes:        []string{tapeA, tapeB, tapeResult},
		InitialState: "carry0",
	})
	if err != nil {
		return nil, err
	}
	m.AddSymbol("0", '0', "digit")
	m.AddSymbol("1", '1', "digit")
	m.AddState(machines.NewState("carry1"))

	left := []machines.Direction{machines.Left, machines.Left, machines.Left}
	none := []machines.Direction{machines.None, machines.None, machines.None}
	for carry := range 2 {
		state := fmt.Sprintf("carry%d", carry)
		for _, x := range bits {
			for _, y := range bits {
				read := []string{x, y, "_"}
				if x == "_" && y == "_" {
					write, next := finish(carry)
					if err := m.AddTransition(state, read, next, []string{x, y, write}, none); err != nil {
						return nil, err
					}
					continue
				}
				digit, next := combine(value(x), value(y), carry)
				if err := m.AddTransition(
					state, read,
					fmt.Sprintf("carry%d", next),
					[]string{x, y, fmt.Sprintf("%d", digit)},
					left,
				); err != nil {
					return nil, err
				}
			}
		}
	}
	return m, nil
}

func (c *Calculator) run(ctx context.Context, m *machines.Machine, a, b string) (machines.Result, string, error) {
	if err := m.SetTapeContent(tapeA, a, 1-len(a)); err != nil {
		return "", "", err
	}
	if err := m.SetTapeContent(tapeB, b, 1-len(b)); err != nil {
		return "", "", err
	}
	maxSteps := uint64(max(len(a), len(b)) + 2)
	result, err := m.Run(ctx, maxSteps)
	if err != nil {
		return result, "", err
	}
	out, err := m.TapeContent(tapeResult)
	if err != nil {
		return result, "", err
	}
	c.logger.DebugContext(ctx, "arithmetic run",
		"machine", m.Name,
		"a", a,
		"b", b,
		"result", result,
		"output", out,
		"steps", m.Steps(),
	)
	return result, out, nil
}

// Add returns a + b.
func (c *Calculator) Add(ctx context.Context, a, b string) (string, error) {
	if err := checkBinary(a); err != nil {
		return "", err
	}
	if err := checkBinary(b); err != nil {
		return "", err
	}
	m, err := c.columnMachine("binary adder",
		func(x, y, carry int) (int, int) {
			sum := x + y + carry
			return sum % 2, sum / 2
		},
		func(carry int) (string, string) {
			if carry == 1 {
				return "1", machines.StateAccept
			}
			return "_", machines.StateAccept
		},
	)
	if err != nil {
		return "", err
	}
	result, out, err := c.run(ctx, m, a, b)
	if err != nil {
		return "", err
	}
	if result != machines.ResultAccept {
		return "", fmt.Errorf("adder finished with %s", result)
	}
	return normalize(out), nil
}

// Subtract returns a - b. The machine rejects when a borrow is left over.
func (c *Calculator) Subtract(ctx context.Context, a, b string) (string, error) {
	if err := checkBinary(a); err != nil {
		return "", err
	}
	if err := checkBinary(b); err != nil {
		return "", err
	}
	m, err := c.columnMachine("binary subtractor",
		func(x, y, borrow int) (int, int) {
			diff := x - y - borrow
			if diff < 0 {
				return diff + 2, 1
			}
			return diff, 0
		},
		func(borrow int) (string, string) {
			if borrow == 1 {
				return "_", machines.StateReject
			}
			return "_", machines.StateAccept
		},
	)
	if err != nil {
		return "", err
	}
	result, out, err := c.run(ctx, m, a, b)
	if err != nil {
		return "", err
	}
	switch result {
	case machines.ResultAccept:
		return normalize(out), nil
	case machines.ResultReject:
		return "", fmt.Errorf("%w: %s - %s", ErrNegativeResult, a, b)
	}
	return "", fmt.Errorf("subtractor finished with %s", result)
}

// Multiply returns a * b by adding a shifted copy of a for every set bit of b.
func (c *Calculator) Multiply(ctx context.Context, a, b string) (string, error) {
	if err := checkBinary(a); err != nil {
		return "", err
	}
	if err := checkBinary(b); err != nil {
		return "", err
	}
	product := "0"
	shifted := a
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '1' {
			var err error
			product, err = c.Add(ctx, product, shifted)
			if err != nil {
				return "", err
			}
		}
		shifted += "0"
	}
	return normalize(product), nil
}
