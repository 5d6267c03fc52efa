package programs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reusee/e5"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInstructionLimit = errors.New("instruction limit exceeded")
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

type Instruction struct {
	Line    int      `json:"line"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

func (i Instruction) String() string {
	return strings.Join(append([]string{i.Command}, i.Args...), " ")
}

// arity is the accepted argument count range per command.
var arity = map[string][2]int{
	"nop":    {0, 0},
	"head":   {1, 1},
	"right":  {0, 1},
	"left":   {0, 1},
	"moveto": {1, 1},
	"write":  {1, 1},
	"erase":  {0, 0},
	"read":   {0, 0},
	"step":   {0, 0},
	"run":    {0, 1},
	"jump":   {1, 1},
	"jumpif": {2, 2},
	"exit":   {0, 0},
}

var intArgs = map[string]bool{
	"head":   true,
	"right":  true,
	"left":   true,
	"moveto": true,
	"run":    true,
	"jump":   true,
}

var nonNegative = map[string]bool{
	"head":   true,
	"run":    true,
	"jump":   true,
	"jumpif": true,
}

// Program is a list of head commands with a program counter.
type Program struct {
	Instructions []Instruction `json:"instructions"`
	PC           int           `json:"pc"`
	// Output collects the symbols produced by read.
	Output []string `json:"output,omitempty"`
}

// ParseInstruction parses one line. Empty lines and comments yield false.
func ParseInstruction(line string) (Instruction, bool, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, false, nil
	}
	inst := Instruction{
		Command: strings.ToLower(fields[0]),
		Args:    fields[1:],
	}
	if err := inst.Validate(); err != nil {
		return inst, false, err
	}
	return inst, true, nil
}

// Validate checks the command, its argument count and its integer arguments.
// Head indexes, run budgets and jump targets must not be negative.
func (i Instruction) Validate() error {
	bounds, ok := arity[i.Command]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, i.Command)
	}
	if len(i.Args) < bounds[0] || len(i.Args) > bounds[1] {
		return fmt.Errorf("%w: %s takes %d to %d arguments", ErrInvalidArgument, i.Command, bounds[0], bounds[1])
	}
	for idx, arg := range i.Args {
		if !intArgs[i.Command] && !(i.Command == "jumpif" && idx == 1) {
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %s %s", ErrInvalidArgument, i.Command, arg)
		}
		if n < 0 && nonNegative[i.Command] {
			return fmt.Errorf("%w: %s %d is negative", ErrInvalidArgument, i.Command, n)
		}
	}
	return nil
}

// Parse reads one instruction per line. Text after # is a comment.
func Parse(r io.Reader) (*Program, error) {
	program := new(Program)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		inst, ok, err := ParseInstruction(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if !ok {
			continue
		}
		inst.Line = lineNum
		program.Instructions = append(program.Instructions, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, wrap(err)
	}
	return program, nil
}

func LoadFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrap(err)
	}
	defer f.Close()
	return Parse(f)
}

// Reset rewinds the program counter and drops collected output.
func (p *Program) Reset() {
	p.PC = 0
	p.Output = nil
}

// Done reports whether PC has left the program. Jumping past the end finishes it.
func (p *Program) Done() bool {
	return p.PC < 0 || p.PC >= len(p.Instructions)
}
