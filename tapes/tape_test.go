package tapes

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/turing/alphabets"
)

func newBinaryTape() *Tape {
	alphabet := alphabets.New("_")
	alphabet.Add("0", '0')
	alphabet.Add("1", '1')
	return New("main", alphabet, nil)
}

func TestTape(t *testing.T) {
	tape := newBinaryTape()

	t.Run("unwritten reads blank", func(t *testing.T) {
		id, err := tape.Read(-42)
		if err != nil {
			t.Fatal(err)
		}
		if id != "_" {
			t.Fatalf("got %v", id)
		}
		content, err := tape.Content()
		if err != nil {
			t.Fatal(err)
		}
		if content != "" {
			t.Fatalf("got %q", content)
		}
	})

	t.Run("write and bounds", func(t *testing.T) {
		if err := tape.Write(3, "1"); err != nil {
			t.Fatal(err)
		}
		if err := tape.Write(-2, "0"); err != nil {
			t.Fatal(err)
		}
		left, right, ok := tape.Bounds()
		if !ok || left != -2 || right != 3 {
			t.Fatalf("got %v %v %v", left, right, ok)
		}
		content, err := tape.Content()
		if err != nil {
			t.Fatal(err)
		}
		if content != "0____1" {
			t.Fatalf("got %q", content)
		}
	})

	t.Run("blank erases", func(t *testing.T) {
		if err := tape.Write(3, "_"); err != nil {
			t.Fatal(err)
		}
		if tape.Len() != 1 {
			t.Fatalf("got %v", tape.Len())
		}
		id, _ := tape.Read(3)
		if id != "_" {
			t.Fatalf("got %v", id)
		}
		// writing blank outside the bounds does not widen them
		if err := tape.Write(10, "_"); err != nil {
			t.Fatal(err)
		}
		_, right, _ := tape.Bounds()
		if right != 3 {
			t.Fatalf("got %v", right)
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		err := tape.Write(0, "x")
		if !errors.Is(err, alphabets.ErrInvalidSymbol) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "tape main") {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("implicit symbol", func(t *testing.T) {
		tape.Alphabet().AllowImplicit = true
		defer func() {
			tape.Alphabet().AllowImplicit = false
		}()
		if err := tape.Write(0, "xy"); err != nil {
			t.Fatal(err)
		}
		content, err := tape.Render(0, 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		if content != "x" {
			t.Fatalf("got %q", content)
		}
	})

	t.Run("clear", func(t *testing.T) {
		tape.Clear()
		if tape.Len() != 0 {
			t.Fatal()
		}
		if _, _, ok := tape.Bounds(); ok {
			t.Fatal("should have no bounds")
		}
	})
}

func TestTapeSetContent(t *testing.T) {
	tape := newBinaryTape()

	if err := tape.SetContent("1011", 0, nil); err != nil {
		t.Fatal(err)
	}
	content, err := tape.Content()
	if err != nil {
		t.Fatal(err)
	}
	if content != "1011" {
		t.Fatalf("got %q", content)
	}

	// custom mappers
	tape.Alphabet().Add("zero", 'o')
	tape.Alphabet().Add("one", 'i')
	err = tape.SetContent("0110", -1, func(r rune) string {
		if r == '0' {
			return "zero"
		}
		return "one"
	})
	if err != nil {
		t.Fatal(err)
	}
	content, err = tape.Content()
	if err != nil {
		t.Fatal(err)
	}
	if content != "oiio" {
		t.Fatalf("got %q", content)
	}
	rendered, err := tape.Render(-2, 3, func(id string) rune {
		switch id {
		case "zero":
			return '0'
		case "one":
			return '1'
		}
		return ' '
	})
	if err != nil {
		t.Fatal(err)
	}
	if rendered != " 0110 " {
		t.Fatalf("got %q", rendered)
	}
	if symbols := tape.Symbols(); strings.Join(symbols, ",") != "zero,one,one,zero" {
		t.Fatalf("got %v", symbols)
	}

	if err := tape.SetContent("012", 0, nil); !errors.Is(err, alphabets.ErrInvalidSymbol) {
		t.Fatalf("got %v", err)
	}
}

func TestHead(t *testing.T) {
	tape := newBinaryTape()
	head := NewHead("main", tape)

	head.MoveLeft(1)
	if head.Position() != -1 {
		t.Fatalf("got %v", head.Position())
	}
	if err := head.Write("1"); err != nil {
		t.Fatal(err)
	}
	head.MoveRight(3)
	if head.Position() != 2 {
		t.Fatalf("got %v", head.Position())
	}
	id, err := head.Read()
	if err != nil {
		t.Fatal(err)
	}
	if id != "_" {
		t.Fatalf("got %v", id)
	}
	head.MoveTo(-1)
	id, err = head.Read()
	if err != nil {
		t.Fatal(err)
	}
	if id != "1" {
		t.Fatalf("got %v", id)
	}
	if head.Tape() != tape {
		t.Fatal()
	}
}
