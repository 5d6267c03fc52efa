package tapes

// Head is a cursor on one tape.
type Head struct {
	Name     string
	tape     *Tape
	position int
}

func NewHead(name string, tape *Tape) *Head {
	return &Head{
		Name: name,
		tape: tape,
	}
}

func (h *Head) Tape() *Tape {
	return h.tape
}

func (h *Head) Position() int {
	return h.position
}

func (h *Head) MoveLeft(steps int) {
	h.position -= steps
}

func (h *Head) MoveRight(steps int) {
	h.position += steps
}

func (h *Head) MoveTo(position int) {
	h.position = position
}

func (h *Head) Read() (string, error) {
	return h.tape.Read(h.position)
}

func (h *Head) Write(id string) error {
	return h.tape.Write(h.position, id)
}
