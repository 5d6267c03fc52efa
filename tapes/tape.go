package tapes

import (
	"fmt"
	"strings"

	"github.com/reusee/turing/alphabets"
	"github.com/reusee/turing/logs"
)

// Tape is a logically infinite tape. Only non-blank cells are stored.
type Tape struct {
	Name     string
	alphabet *alphabets.Alphabet
	cells    map[int]string
	left     int
	right    int
	written  bool
	logger   logs.Logger
}

func New(name string, alphabet *alphabets.Alphabet, logger logs.Logger) *Tape {
	return &Tape{
		Name:     name,
		alphabet: alphabet,
		cells:    make(map[int]string),
		logger:   logs.OrDiscard(logger),
	}
}

func (t *Tape) Alphabet() *alphabets.Alphabet {
	return t.alphabet
}

func (t *Tape) Write(position int, id string) error {
	if err := t.alphabet.Ensure(id); err != nil {
		return fmt.Errorf("tape %s: write at %d: %w", t.Name, position, err)
	}

	if t.alphabet.IsBlank(id) {
		delete(t.cells, position)
		return nil
	}
	t.cells[position] = id

	if !t.written {
		t.left = position
		t.right = position
		t.written = true
	} else {
		t.left = min(t.left, position)
		t.right = max(t.right, position)
	}
	return nil
}

func (t *Tape) Read(position int) (string, error) {
	id, ok := t.cells[position]
	if !ok {
		return t.alphabet.BlankID(), nil
	}
	if !t.alphabet.Has(id) {
		return "", fmt.Errorf("tape %s: read at %d: %w: %q", t.Name, position, alphabets.ErrInvalidSymbol, id)
	}
	return id, nil
}

func (t *Tape) Clear() {
	clear(t.cells)
	t.left = 0
	t.right = 0
	t.written = false
}

// Bounds returns the leftmost and rightmost positions ever written with a
// non-blank symbol since the last clear. ok is false for a fresh tape.
func (t *Tape) Bounds() (left, right int, ok bool) {
	return t.left, t.right, t.written
}

// Len returns the number of non-blank cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// CharMapper maps an input rune to a symbol id.
type CharMapper func(r rune) string

// SymbolMapper maps a symbol id to a display rune.
type SymbolMapper func(id string) rune

func runeAsID(r rune) string {
	return string(r)
}

// SetContent clears the tape and writes one symbol per rune of content,
// starting at start. A nil mapper uses the rune itself as the id.
func (t *Tape) SetContent(content string, start int, mapper CharMapper) error {
	t.Clear()
	if mapper == nil {
		mapper = runeAsID
	}
	position := start
	for _, r := range content {
		if err := t.Write(position, mapper(r)); err != nil {
			return err
		}
		position++
	}
	t.logger.Debug("set tape content",
		"tape", t.Name,
		"start", start,
		"content", content,
	)
	return nil
}

// Content renders the tape between its bounds with the registered
// representations.
func (t *Tape) Content() (string, error) {
	if !t.written {
		return "", nil
	}
	return t.Render(t.left, t.right, nil)
}

// Render renders [start, end]. A nil mapper uses the registered representation.
func (t *Tape) Render(start, end int, mapper SymbolMapper) (string, error) {
	if mapper == nil {
		mapper = t.representation
	}
	var b strings.Builder
	for i := start; i <= end; i++ {
		id, err := t.Read(i)
		if err != nil {
			return "", err
		}
		b.WriteRune(mapper(id))
	}
	return b.String(), nil
}

func (t *Tape) representation(id string) rune {
	symbol, err := t.alphabet.Get(id)
	if err != nil {
		return alphabets.Representation(id)
	}
	return symbol.Representation
}

// Symbols returns the symbol ids between the bounds, blanks included.
func (t *Tape) Symbols() []string {
	if !t.written {
		return nil
	}
	ret := make([]string, 0, t.right-t.left+1)
	for i := t.left; i <= t.right; i++ {
		id, ok := t.cells[i]
		if !ok {
			id = t.alphabet.BlankID()
		}
		ret = append(ret, id)
	}
	return ret
}
