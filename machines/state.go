package machines

import "maps"

const (
	StateInitial = "initial"
	StateHalt    = "halt"
	StateAccept  = "accept"
	StateReject  = "reject"
)

type State struct {
	ID          string
	Name        string
	Description string
	Halting     bool
	Accepting   bool
	Rejecting   bool
	Metadata    map[string]string
}

func NewState(id string) State {
	return State{
		ID:   id,
		Name: id,
	}
}

func (s State) WithDescription(name, description string) State {
	s.Name = name
	s.Description = description
	return s
}

func (s State) AsHalting() State {
	s.Halting = true
	return s
}

// AsAccepting marks the state accepting. Accepting states halt.
func (s State) AsAccepting() State {
	s.Halting = true
	s.Accepting = true
	return s
}

// AsRejecting marks the state rejecting. Rejecting states halt.
func (s State) AsRejecting() State {
	s.Halting = true
	s.Rejecting = true
	return s
}

func (s State) clone() *State {
	s.Metadata = maps.Clone(s.Metadata)
	return &s
}

func reservedStates(initial string) []State {
	return []State{
		NewState(initial).WithDescription("Initial", "Starting state of the machine"),
		NewState(StateHalt).WithDescription("Halt", "Machine halts").AsHalting(),
		NewState(StateAccept).WithDescription("Accept", "Machine accepts input").AsAccepting(),
		NewState(StateReject).WithDescription("Reject", "Machine rejects input").AsRejecting(),
	}
}
