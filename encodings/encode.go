package encodings

import (
	"strings"
)

const (
	sectionStates          = "states"
	sectionInputAlphabet   = "input_alphabet"
	sectionTapeAlphabet    = "tape_alphabet"
	sectionInitialState    = "initial_state"
	sectionBlankSymbol     = "blank_symbol"
	sectionAcceptingStates = "accepting_states"
	sectionTransitions     = "transitions"
)

// Encode renders m in the flat section format:
//
//	#states:s1,s2,#input_alphabet:...,#...#transitions:t1;t2;#
func Encode(m EncodedMachine) string {
	var b strings.Builder
	list := func(name string, items []string, sep string) {
		b.WriteString("#" + name + ":")
		for _, item := range items {
			b.WriteString(item)
			b.WriteString(sep)
		}
		b.WriteString("#")
	}
	single := func(name string, value string) {
		b.WriteString("#" + name + ":" + value + "#")
	}

	list(sectionStates, m.States, ",")
	list(sectionInputAlphabet, m.InputAlphabet, ",")
	list(sectionTapeAlphabet, m.TapeAlphabet, ",")
	single(sectionInitialState, m.InitialState)
	single(sectionBlankSymbol, m.BlankSymbol)
	list(sectionAcceptingStates, m.AcceptingStates, ",")
	list(sectionTransitions, m.Transitions, ";")

	return b.String()
}

// Decode parses the output of Encode. It is lenient: characters outside a
// section, unknown sections and empty items are skipped, and a truncated
// section ends the parse.
func Decode(s string) EncodedMachine {
	m := EncodedMachine{
		ID:          "decoded",
		Name:        "Decoded Machine",
		Description: "Machine decoded from description",
	}

	pos := 0
	for pos < len(s) {
		if s[pos] != '#' {
			pos++
			continue
		}
		pos++

		colon := strings.IndexByte(s[pos:], ':')
		if colon < 0 {
			break
		}
		section := s[pos : pos+colon]
		pos += colon + 1

		end := strings.IndexByte(s[pos:], '#')
		if end < 0 {
			break
		}
		content := s[pos : pos+end]
		pos += end + 1

		switch section {
		case sectionStates:
			m.States = splitNonEmpty(content, ",")
		case sectionInputAlphabet:
			m.InputAlphabet = splitNonEmpty(content, ",")
		case sectionTapeAlphabet:
			m.TapeAlphabet = splitNonEmpty(content, ",")
		case sectionInitialState:
			m.InitialState = content
		case sectionBlankSymbol:
			m.BlankSymbol = content
		case sectionAcceptingStates:
			m.AcceptingStates = splitNonEmpty(content, ",")
		case sectionTransitions:
			m.Transitions = splitNonEmpty(content, ";")
		}
	}

	return m
}

func splitNonEmpty(s string, sep string) []string {
	var ret []string
	for item := range strings.SplitSeq(s, sep) {
		if item == "" {
			continue
		}
		ret = append(ret, item)
	}
	return ret
}
