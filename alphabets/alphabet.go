package alphabets

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"
)

var (
	ErrNotFound      = errors.New("symbol not found")
	ErrInvalidSymbol = errors.New("invalid symbol")
)

const DefaultBlank = "_"

// Symbol is a tape symbol. IDs are arbitrary strings, not just single characters.
type Symbol struct {
	ID             string
	Representation rune
	Category       string
	Metadata       map[string]string
}

func (s Symbol) String() string {
	return s.ID
}

// Alphabet is the set of symbols a machine may put on its tapes.
// The blank symbol is registered at construction and never leaves the set.
type Alphabet struct {
	symbols map[string]Symbol
	blank   string

	// AllowImplicit lets tapes register unknown symbols on write,
	// using the first rune of the id as representation.
	AllowImplicit bool
}

func New(blank string) *Alphabet {
	if blank == "" {
		blank = DefaultBlank
	}
	a := &Alphabet{
		symbols: make(map[string]Symbol),
		blank:   blank,
	}
	a.Add(blank, Representation(blank), "blank")
	return a
}

// Representation returns the default display rune for a symbol id.
func Representation(id string) rune {
	r, _ := utf8.DecodeRuneInString(id)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// Add registers a symbol. It reports false when the id is already present.
func (a *Alphabet) Add(id string, representation rune, category ...string) bool {
	if _, ok := a.symbols[id]; ok {
		return false
	}
	symbol := Symbol{
		ID:             id,
		Representation: representation,
	}
	if len(category) > 0 {
		symbol.Category = category[0]
	}
	a.symbols[id] = symbol
	return true
}

// AddSymbol registers a fully specified symbol.
func (a *Alphabet) AddSymbol(symbol Symbol) bool {
	if _, ok := a.symbols[symbol.ID]; ok {
		return false
	}
	symbol.Metadata = maps.Clone(symbol.Metadata)
	a.symbols[symbol.ID] = symbol
	return true
}

func (a *Alphabet) Get(id string) (Symbol, error) {
	symbol, ok := a.symbols[id]
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return symbol, nil
}

func (a *Alphabet) Has(id string) bool {
	_, ok := a.symbols[id]
	return ok
}

func (a *Alphabet) Blank() Symbol {
	return a.symbols[a.blank]
}

func (a *Alphabet) BlankID() string {
	return a.blank
}

func (a *Alphabet) IsBlank(id string) bool {
	return id == a.blank
}

// Symbols returns every symbol sorted by id.
func (a *Alphabet) Symbols() []Symbol {
	ret := make([]Symbol, 0, len(a.symbols))
	for _, id := range slices.Sorted(maps.Keys(a.symbols)) {
		ret = append(ret, a.symbols[id])
	}
	return ret
}

func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Ensure makes id usable on a tape: known ids pass, unknown ids are
// registered under the implicit policy and rejected otherwise.
func (a *Alphabet) Ensure(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSymbol)
	}
	if a.Has(id) {
		return nil
	}
	if !a.AllowImplicit {
		return fmt.Errorf("%w: %q not in alphabet", ErrInvalidSymbol, id)
	}
	a.Add(id, Representation(id), "implicit")
	return nil
}
