package cmds

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var steps int
	executor.Define("+steps", Func(func() {
		steps = 42
	}))
	executor.Define("steps", Func(func(i int) {
		steps = i
	}))

	if err := executor.Execute([]string{
		"+steps",
	}); err != nil {
		t.Fatal(err)
	}
	if steps != 42 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"steps", "1",
	}); err != nil {
		t.Fatal(err)
	}
	if steps != 1 {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{
		"steps",
	})
	if !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{
		"steps", "x",
	})
	if err == nil || !strings.Contains(err.Error(), "convert x to int") {
		t.Fatalf("got %v", err)
	}
}

func TestCommandError(t *testing.T) {
	executor := NewExecutor()
	errFail := errors.New("fail")
	var ran bool
	executor.Define("fail", Func(func() error {
		return errFail
	}))
	executor.Define("ok", Func(func() error {
		ran = true
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Fatal()
	}
	if err := executor.Execute([]string{"fail", "ok"}); !errors.Is(err, errFail) {
		t.Fatalf("got %v", err)
	}
}

func TestVariadic(t *testing.T) {
	executor := NewExecutor()
	var id string
	var inputs []string
	executor.Define("batch", Func(func(machine string, args ...string) {
		id = machine
		inputs = args
	}))
	if err := executor.Execute([]string{"batch", "div3", "11", "110", "1"}); err != nil {
		t.Fatal(err)
	}
	if id != "div3" {
		t.Fatalf("got %v", id)
	}
	if !slices.Equal(inputs, []string{"11", "110", "1"}) {
		t.Fatalf("got %v", inputs)
	}

	if err := executor.Execute([]string{"batch", "div3"}); err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 0 {
		t.Fatalf("got %v", inputs)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var step, run int
	executor.Define("machine", Sub(map[string]*Command{
		"step": Func(func() {
			step = 1
		}),
		"run": Func(func(i int) {
			run = i
		}),
	}))

	if err := executor.Execute([]string{
		"machine",
		"step",
		"run", "42",
	}); err != nil {
		t.Fatal(err)
	}

	if step != 1 {
		t.Fatal()
	}
	if run != 42 {
		t.Fatal()
	}

}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if err == nil || !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n uint64
	var s string
	executor.Define("run", Func(func(maxSteps *uint64, input *string) {
		n = *maxSteps
		s = *input
	}))

	err := executor.Execute([]string{"run", "42", "101"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatal()
	}
	if s != "101" {
		t.Fatal()
	}

	err = executor.Execute([]string{"run", "99"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 99 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

	err = executor.Execute([]string{"run"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

}

func TestBoolArgument(t *testing.T) {
	executor := NewExecutor()
	var got []bool
	executor.Define("verbose", Func(func(v bool) {
		got = append(got, v)
	}))
	if err := executor.Execute([]string{"verbose", "yes", "verbose", "off"}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("got %v", got)
	}
	err := executor.Execute([]string{"verbose", "maybe"})
	if err == nil || !strings.Contains(err.Error(), "convert maybe to bool") {
		t.Fatalf("got %v", err)
	}
}
