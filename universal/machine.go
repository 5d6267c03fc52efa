package universal

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/tapes"
)

const (
	DescriptionTape = "description"
	SimulationTape  = "simulation"
	WorkingTape     = "working"
)

// Machine hosts a catalog of encoded machines and simulates one at a time.
// The loaded description lives on the description tape, the input and
// output on the simulation tape, and the final simulated state on the
// working tape.
type Machine struct {
	// RecordHistory enables history on simulated engines.
	RecordHistory bool

	host        *machines.Machine
	description *tapes.Tape
	simulation  *tapes.Tape
	working     *tapes.Tape

	catalog map[string]encodings.EncodedMachine
	loaded  string
	state   string
	steps   uint64
	history []machines.HistoryEntry

	build   encodings.Builder
	logger  logs.Logger
	newSpan logs.NewSpan
}

func newUniversal(
	logger logs.Logger,
	newMachine machines.New,
	build encodings.Builder,
	newSpan logs.NewSpan,
) (*Machine, error) {
	host, err := newMachine(machines.Options{
		Name:                 "Universal Turing Machine",
		Description:          "Simulates any other Turing machine",
		Type:                 machines.MultiTape,
		Tapes:                []string{DescriptionTape, SimulationTape, WorkingTape},
		AllowImplicitSymbols: true,
	})
	if err != nil {
		return nil, err
	}
	u := &Machine{
		host:    host,
		catalog: make(map[string]encodings.EncodedMachine),
		build:   build,
		logger:  logger,
		newSpan: newSpan,
	}
	if u.description, err = host.Tape(DescriptionTape); err != nil {
		return nil, err
	}
	if u.simulation, err = host.Tape(SimulationTape); err != nil {
		return nil, err
	}
	if u.working, err = host.Tape(WorkingTape); err != nil {
		return nil, err
	}
	logger.Info("created universal machine")
	return u, nil
}

// Add registers m, replacing any machine with the same id.
func (u *Machine) Add(m encodings.EncodedMachine) {
	if err := encodings.Validate(m); err != nil {
		u.logger.Warn("adding invalid machine", "id", m.ID, "error", err)
	}
	u.catalog[m.ID] = m
	u.logger.Info("added machine", "id", m.ID, "name", m.Name)
}

// Machines returns the catalog sorted by id.
func (u *Machine) Machines() []encodings.EncodedMachine {
	ret := slices.Collect(maps.Values(u.catalog))
	slices.SortFunc(ret, func(a, b encodings.EncodedMachine) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return ret
}

func (u *Machine) Get(id string) (encodings.EncodedMachine, bool) {
	m, ok := u.catalog[id]
	return m, ok
}

// Loaded returns the id of the loaded machine, empty when none.
func (u *Machine) Loaded() string {
	return u.loaded
}

// Load encodes the machine onto the description tape and clears the other tapes.
func (u *Machine) Load(id string) error {
	m, ok := u.catalog[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMachineNotFound, id)
	}
	if err := u.description.SetContent(encodings.Encode(m), 0, nil); err != nil {
		return err
	}
	u.simulation.Clear()
	u.working.Clear()
	u.host.Reset()
	u.loaded = id
	u.state = ""
	u.steps = 0
	u.history = nil
	u.logger.Info("loaded machine", "id", id)
	return nil
}

// SetInput writes input to the simulation tape. Every character must be in
// the input alphabet of the loaded machine.
func (u *Machine) SetInput(input string) error {
	if u.loaded == "" {
		return ErrNoMachineLoaded
	}
	if err := checkInput(u.catalog[u.loaded], input); err != nil {
		return err
	}
	if err := u.simulation.SetContent(input, 0, nil); err != nil {
		return err
	}
	u.working.Clear()
	u.logger.Debug("set input", "id", u.loaded, "input", input)
	return nil
}

// Run decodes the description tape and runs the described machine on the
// simulation tape. Failures are logged and reported as machines.ResultError.
func (u *Machine) Run(ctx context.Context, maxSteps uint64) machines.Result {
	ctx, _ = u.newSpan(ctx, "universal run", "machine", u.loaded)
	if u.loaded == "" {
		u.logger.ErrorContext(ctx, "run", "error", ErrNoMachineLoaded)
		return machines.ResultError
	}
	description, err := u.description.Content()
	if err != nil {
		u.logger.ErrorContext(ctx, "read description", "error", err)
		return machines.ResultError
	}
	m := encodings.Decode(description)
	m.ID = u.loaded
	m.Name = u.catalog[u.loaded].Name
	return u.simulate(ctx, m, false, false, maxSteps)
}

// SimulateStepByStep runs the loaded machine one transition per iteration,
// logging every step when verbose is set.
func (u *Machine) SimulateStepByStep(ctx context.Context, verbose bool, maxSteps uint64) machines.Result {
	ctx, _ = u.newSpan(ctx, "universal step by step", "machine", u.loaded)
	if u.loaded == "" {
		u.logger.ErrorContext(ctx, "simulate", "error", ErrNoMachineLoaded)
		return machines.ResultError
	}
	return u.simulate(ctx, u.catalog[u.loaded], true, verbose, maxSteps)
}

func (u *Machine) simulate(
	ctx context.Context,
	m encodings.EncodedMachine,
	stepwise bool,
	verbose bool,
	maxSteps uint64,
) machines.Result {
	u.state, u.steps = "", 0
	fail := func(what string, err error) machines.Result {
		u.logger.ErrorContext(ctx, what, "machine", m.ID, "error", logs.WrapSpan(ctx, err))
		return machines.ResultError
	}

	engine, err := u.build(m)
	if err != nil {
		return fail("build machine", err)
	}
	if u.RecordHistory {
		engine.EnableHistory(true)
	}

	input, err := u.simulation.Content()
	if err != nil {
		return fail("read input", err)
	}

	exec, err := execute(ctx, u.logger, engine, m.BlankSymbol, input, stepwise, verbose, maxSteps)
	u.history = engine.History()
	if err != nil {
		return fail("simulate", err)
	}

	if err := u.simulation.SetContent(exec.output, 0, nil); err != nil {
		return fail("write output", err)
	}
	if err := u.working.SetContent(exec.state, 0, nil); err != nil {
		return fail("write state", err)
	}
	u.state = exec.state
	u.steps = exec.steps

	u.logger.InfoContext(ctx, "simulation done",
		"machine", m.ID,
		"result", exec.result,
		"state", exec.state,
		"steps", exec.steps,
		"output", exec.output,
	)
	return exec.result
}

// SimulationTape returns the rendered simulation tape.
func (u *Machine) SimulationTape() string {
	content, err := u.simulation.Content()
	if err != nil {
		u.logger.Error("read simulation tape", "error", err)
	}
	return content
}

// DescriptionTape returns the rendered description tape.
func (u *Machine) DescriptionTape() string {
	content, err := u.description.Content()
	if err != nil {
		u.logger.Error("read description tape", "error", err)
	}
	return content
}

// WorkingTape returns the rendered working tape.
func (u *Machine) WorkingTape() string {
	content, err := u.working.Content()
	if err != nil {
		u.logger.Error("read working tape", "error", err)
	}
	return content
}

// SimulatedState returns the final state of the last simulation.
func (u *Machine) SimulatedState() string {
	return u.state
}

// SimulatedSteps returns the step count of the last simulation.
func (u *Machine) SimulatedSteps() uint64 {
	return u.steps
}

// History returns the history of the last simulation.
func (u *Machine) History() []machines.HistoryEntry {
	return slices.Clone(u.history)
}
