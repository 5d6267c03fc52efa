package machines

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/turing/alphabets"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/tapes"
)

type Type uint8

const (
	// Standard machines have a single tape named "main".
	Standard Type = iota
	// MultiTape machines default to three tapes "tape0" to "tape2".
	MultiTape
)

const (
	DefaultMaxSteps     = 10000
	DefaultHistoryLimit = 10000
)

type Options struct {
	Name        string
	Description string
	Type        Type
	// Tapes overrides the tapes implied by Type. Heads follow tape order.
	Tapes                []string
	Blank                string
	InitialState         string
	AllowImplicitSymbols bool
	History              bool
	HistoryLimit         int
}

func (o Options) tapeNames() []string {
	if len(o.Tapes) > 0 {
		return o.Tapes
	}
	switch o.Type {
	case MultiTape:
		return []string{"tape0", "tape1", "tape2"}
	default:
		return []string{"main"}
	}
}

// HistoryEntry records one executed step. Positions are taken after the moves.
type HistoryEntry struct {
	Step      uint64
	State     string
	Next      string
	Read      []string
	Write     []string
	Moves     []Direction
	Positions []int
}

// Machine is a deterministic multi-tape Turing machine. All heads step in
// lockstep under one transition function.
type Machine struct {
	Name        string
	Description string

	alphabet    *alphabets.Alphabet
	states      map[string]*State
	tapes       []*tapes.Tape
	heads       []*tapes.Head
	tapeIndex   map[string]int
	transitions *TransitionFunction

	initial string
	current string
	steps   uint64

	recordHistory bool
	historyLimit  int
	history       []HistoryEntry

	logger logs.Logger
}

func NewMachine(logger logs.Logger, opts Options) (*Machine, error) {
	names := opts.tapeNames()
	if len(names) == 0 {
		return nil, ErrNoTapes
	}

	initial := opts.InitialState
	if initial == "" {
		initial = StateInitial
	}
	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	alphabet := alphabets.New(opts.Blank)
	alphabet.AllowImplicit = opts.AllowImplicitSymbols

	m := &Machine{
		Name:          opts.Name,
		Description:   opts.Description,
		alphabet:      alphabet,
		states:        make(map[string]*State),
		tapeIndex:     make(map[string]int),
		transitions:   NewTransitionFunction(len(names)),
		initial:       initial,
		current:       initial,
		recordHistory: opts.History,
		historyLimit:  limit,
		logger:        logs.OrDiscard(logger),
	}

	for _, name := range names {
		if _, ok := m.tapeIndex[name]; ok {
			return nil, fmt.Errorf("duplicated tape: %s", name)
		}
		tape := tapes.New(name, alphabet, m.logger)
		m.tapeIndex[name] = len(m.tapes)
		m.tapes = append(m.tapes, tape)
		m.heads = append(m.heads, tapes.NewHead(name, tape))
	}

	for _, state := range reservedStates(initial) {
		m.AddState(state)
	}

	m.logger.Debug("new machine",
		"name", m.Name,
		"tapes", names,
		"initial", initial,
	)
	return m, nil
}

func (m *Machine) Alphabet() *alphabets.Alphabet {
	return m.alphabet
}

func (m *Machine) AddSymbol(id string, representation rune, category ...string) bool {
	return m.alphabet.Add(id, representation, category...)
}

// AddState registers state, replacing any state with the same id.
func (m *Machine) AddState(state State) {
	if state.Name == "" {
		state.Name = state.ID
	}
	m.states[state.ID] = state.clone()
}

func (m *Machine) State(id string) (State, bool) {
	state, ok := m.states[id]
	if !ok {
		return State{}, false
	}
	return *state, true
}

func (m *Machine) States() []State {
	ret := make([]State, 0, len(m.states))
	for _, id := range slices.Sorted(maps.Keys(m.states)) {
		ret = append(ret, *m.states[id])
	}
	return ret
}

func (m *Machine) lookupState(id string) (*State, error) {
	state, ok := m.states[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, id)
	}
	return state, nil
}

func (m *Machine) SetHalting(id string, halting bool) error {
	state, err := m.lookupState(id)
	if err != nil {
		return err
	}
	state.Halting = halting
	return nil
}

// SetAccepting toggles the accepting flag. Accepting a state also makes it halt.
func (m *Machine) SetAccepting(id string, accepting bool) error {
	state, err := m.lookupState(id)
	if err != nil {
		return err
	}
	state.Accepting = accepting
	if accepting {
		state.Halting = true
	}
	return nil
}

// SetRejecting toggles the rejecting flag. Rejecting a state also makes it halt.
func (m *Machine) SetRejecting(id string, rejecting bool) error {
	state, err := m.lookupState(id)
	if err != nil {
		return err
	}
	state.Rejecting = rejecting
	if rejecting {
		state.Halting = true
	}
	return nil
}

func (m *Machine) SetInitialState(id string) error {
	if _, err := m.lookupState(id); err != nil {
		return err
	}
	m.initial = id
	if m.steps == 0 {
		m.current = id
	}
	return nil
}

func (m *Machine) InitialState() string {
	return m.initial
}

func (m *Machine) CurrentState() string {
	return m.current
}

func (m *Machine) Steps() uint64 {
	return m.steps
}

func (m *Machine) Transitions() *TransitionFunction {
	return m.transitions
}

// AddTransition validates states, symbols and arity, then stores the
// transition. Write symbols go through the alphabet's implicit policy.
func (m *Machine) AddTransition(
	from string,
	read []string,
	to string,
	write []string,
	moves []Direction,
) error {
	if _, err := m.lookupState(from); err != nil {
		return fmt.Errorf("current state: %w", err)
	}
	if _, err := m.lookupState(to); err != nil {
		return fmt.Errorf("next state: %w", err)
	}
	for _, symbol := range read {
		if err := m.alphabet.Ensure(symbol); err != nil {
			return fmt.Errorf("read symbol: %w", err)
		}
	}
	for _, symbol := range write {
		if err := m.alphabet.Ensure(symbol); err != nil {
			return fmt.Errorf("write symbol: %w", err)
		}
	}
	if err := m.transitions.Add(Transition{
		From:  from,
		Read:  read,
		To:    to,
		Write: write,
		Moves: moves,
	}); err != nil {
		return err
	}
	return nil
}

// TapeNames returns tape names in head order.
func (m *Machine) TapeNames() []string {
	ret := make([]string, len(m.tapes))
	for i, tape := range m.tapes {
		ret[i] = tape.Name
	}
	return ret
}

// Tape returns the named tape. An empty name selects the first tape.
func (m *Machine) Tape(name string) (*tapes.Tape, error) {
	if name == "" {
		return m.tapes[0], nil
	}
	i, ok := m.tapeIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTape, name)
	}
	return m.tapes[i], nil
}

func (m *Machine) Head(i int) (*tapes.Head, error) {
	if i < 0 || i >= len(m.heads) {
		return nil, fmt.Errorf("%w: head index %d of %d", ErrUnknownTape, i, len(m.heads))
	}
	return m.heads[i], nil
}

func (m *Machine) Heads() []*tapes.Head {
	return slices.Clone(m.heads)
}

func (m *Machine) SetTapeContent(name string, content string, start int) error {
	tape, err := m.Tape(name)
	if err != nil {
		return err
	}
	return tape.SetContent(content, start, nil)
}

func (m *Machine) TapeContent(name string) (string, error) {
	tape, err := m.Tape(name)
	if err != nil {
		return "", err
	}
	return tape.Content()
}

// Reset returns to the initial state with heads at 0. Tape contents are kept.
func (m *Machine) Reset() {
	m.current = m.initial
	m.steps = 0
	m.history = m.history[:0]
	for _, head := range m.heads {
		head.MoveTo(0)
	}
	m.logger.Debug("machine reset", "name", m.Name)
}

func (m *Machine) EnableHistory(enable bool) {
	m.recordHistory = enable
	m.history = m.history[:0]
}

func (m *Machine) History() []HistoryEntry {
	return slices.Clone(m.history)
}

func (m *Machine) IsHalted() bool {
	state, ok := m.states[m.current]
	return ok && state.Halting
}

func (m *Machine) IsAccepted() bool {
	state, ok := m.states[m.current]
	return ok && state.Accepting
}

// Classify reports the outcome for the current state, or false while the
// machine is still running.
func (m *Machine) Classify() (Result, bool) {
	state, ok := m.states[m.current]
	if !ok || !state.Halting {
		return "", false
	}
	switch {
	case state.Accepting:
		return ResultAccept, true
	case state.Rejecting || state.ID == StateReject:
		return ResultReject, true
	}
	return ResultHalt, true
}

// Step executes one transition. It reports false when the machine was
// already halted or no transition matched; the latter moves it to "halt".
func (m *Machine) Step() (bool, error) {
	if m.IsHalted() {
		return false, nil
	}

	read := make([]string, len(m.heads))
	for i, head := range m.heads {
		symbol, err := head.Read()
		if err != nil {
			return false, err
		}
		read[i] = symbol
	}

	transition, ok := m.transitions.Get(m.current, read)
	if !ok {
		m.logger.Debug("no transition, halting",
			"state", m.current,
			"read", read,
			"step", m.steps,
		)
		m.current = StateHalt
		return false, nil
	}

	// all symbols are checked before any tape changes
	for i, head := range m.heads {
		if err := head.Tape().Alphabet().Ensure(transition.Write[i]); err != nil {
			return false, fmt.Errorf("tape %s: %w", head.Tape().Name, err)
		}
	}
	for i, head := range m.heads {
		if err := head.Write(transition.Write[i]); err != nil {
			return false, err
		}
	}
	for i, head := range m.heads {
		head.MoveRight(transition.Moves[i].Offset())
	}

	prev := m.current
	m.current = transition.To
	m.steps++

	if m.recordHistory {
		positions := make([]int, len(m.heads))
		for i, head := range m.heads {
			positions[i] = head.Position()
		}
		if len(m.history) >= m.historyLimit {
			m.history = slices.Delete(m.history, 0, len(m.history)-m.historyLimit+1)
		}
		m.history = append(m.history, HistoryEntry{
			Step:      m.steps,
			State:     prev,
			Next:      transition.To,
			Read:      read,
			Write:     slices.Clone(transition.Write),
			Moves:     slices.Clone(transition.Moves),
			Positions: positions,
		})
	}

	m.logger.Debug("step",
		"step", m.steps,
		"state", prev,
		"next", m.current,
		"read", read,
		"write", transition.Write,
	)

	return true, nil
}

// Run steps until the machine halts or maxSteps steps have been executed.
// Spending the whole budget is a timeout, even when the last step halts.
func (m *Machine) Run(ctx context.Context, maxSteps uint64) (Result, error) {
	m.logger.InfoContext(ctx, "run",
		"name", m.Name,
		"state", m.current,
		"max_steps", maxSteps,
	)

	for m.steps < maxSteps {
		if err := ctx.Err(); err != nil {
			return ResultError, err
		}
		ok, err := m.Step()
		if err != nil {
			return ResultError, err
		}
		if !ok {
			break
		}
	}

	// halting on the last budgeted step is still a timeout
	result, ok := m.Classify()
	if !ok || m.steps >= maxSteps {
		m.logger.WarnContext(ctx, "step budget exhausted",
			"name", m.Name,
			"max_steps", maxSteps,
			"state", m.current,
		)
		return ResultTimeout, nil
	}

	m.logger.InfoContext(ctx, "run done",
		"name", m.Name,
		"result", result,
		"state", m.current,
		"steps", m.steps,
	)
	return result, nil
}
