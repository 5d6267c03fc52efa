package configs

import (
	"errors"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/modes"
)

func TestMachines(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	list, err := Machines(loader)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d", len(list))
	}

	flip := list[0]
	if flip.ID != "flip" || flip.Name != "Flip" {
		t.Fatalf("got %+v", flip)
	}
	if flip.BlankSymbol != "_" {
		t.Fatalf("got %q", flip.BlankSymbol)
	}

	ones := list[1]
	if ones.ID != "ones" || ones.Name != "Only ones" {
		t.Fatalf("got %+v", ones)
	}

	zeros := list[2]
	if zeros.ID != "only-zeros" {
		t.Fatalf("got %v", zeros.ID)
	}
	if len(zeros.AcceptingStates) != 1 {
		t.Fatalf("got %v", zeros.AcceptingStates)
	}
}

func TestMachinesInvalid(t *testing.T) {
	_, err := Machines(NewLoader([]string{"testdata/invalid_machine.cue"}, Schema))
	if !errors.Is(err, encodings.ErrInvalidMachine) {
		t.Fatalf("got %v", err)
	}

	_, err = Machines(NewLoader([]string{"testdata/typo.cue"}, Schema))
	if err == nil {
		t.Fatal("should error")
	}
}

func TestSettings(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test2.cue",
		"testdata/test.cue",
	}, testSchema)
	settings, err := LoadSettings(loader)
	if err != nil {
		t.Fatal(err)
	}
	if settings.Parallel != 4 {
		t.Fatalf("got %v", settings.Parallel)
	}
	if settings.MaxSteps != machines.DefaultMaxSteps {
		t.Fatalf("got %v", settings.MaxSteps)
	}
	if settings.RecordHistory() {
		t.Fatal()
	}

	settings, err = LoadSettings(NewLoader(nil, Schema))
	if err != nil {
		t.Fatal(err)
	}
	if settings.Parallel != 1 || settings.HistoryLimit != machines.DefaultHistoryLimit {
		t.Fatalf("got %+v", settings)
	}
}

func TestFork(t *testing.T) {
	loader := NewSourceLoader("settings.cue", `
settings: {
	max_steps:     42
	history:       true
	history_limit: 7
}
`, Schema)

	scope, err := Fork(dscope.New(new(machines.Module), modes.ForTest(t)), loader)
	if err != nil {
		t.Fatal(err)
	}
	settings := dscope.Get[Settings](scope)
	if settings.MaxSteps != 42 || !settings.RecordHistory() {
		t.Fatalf("got %+v", settings)
	}
	if limit := dscope.Get[machines.HistoryLimit](scope); limit != 7 {
		t.Fatalf("got %v", limit)
	}
}
