package arithmetics

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/reusee/dscope"
	"github.com/reusee/turing/modes"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	var c *Calculator
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(calc *Calculator) {
		c = calc
	})
	return c
}

func TestCalculator(t *testing.T) {
	c := newTestCalculator(t)
	ctx := context.Background()

	type op func(context.Context, string, string) (string, error)
	cases := []struct {
		name     string
		op       op
		a, b     string
		expected string
	}{
		{"add", c.Add, "0", "0", "0"},
		{"add", c.Add, "1", "1", "10"},
		{"add", c.Add, "1011", "110", "10001"},
		{"add", c.Add, "111", "1", "1000"},
		{"add", c.Add, "0011", "01", "100"},
		{"sub", c.Subtract, "1010", "11", "111"},
		{"sub", c.Subtract, "101", "101", "0"},
		{"sub", c.Subtract, "1000", "1", "111"},
		{"mul", c.Multiply, "101", "11", "1111"},
		{"mul", c.Multiply, "110", "0", "0"},
		{"mul", c.Multiply, "1", "1", "1"},
	}
	for _, tc := range cases {
		got, err := tc.op(ctx, tc.a, tc.b)
		if err != nil {
			t.Fatalf("%s %s %s: %v", tc.name, tc.a, tc.b, err)
		}
		if got != tc.expected {
			t.Fatalf("%s %s %s: got %v", tc.name, tc.a, tc.b, got)
		}
	}

	if _, err := c.Subtract(ctx, "10", "11"); !errors.Is(err, ErrNegativeResult) {
		t.Fatalf("got %v", err)
	}
	for _, bad := range []string{"", "12", "a", " 1"} {
		if _, err := c.Add(ctx, bad, "1"); !errors.Is(err, ErrNotBinary) {
			t.Fatalf("%q: got %v", bad, err)
		}
		if _, err := c.Multiply(ctx, "1", bad); !errors.Is(err, ErrNotBinary) {
			t.Fatalf("%q: got %v", bad, err)
		}
	}
}

func TestBinary(t *testing.T) {
	if ToBinary(0) != "0" {
		t.Fatal()
	}
	if ToBinary(10) != "1010" {
		t.Fatal()
	}
	n, err := FromBinary("1010")
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Fatalf("got %v", n)
	}
	if _, err := FromBinary("102"); !errors.Is(err, ErrNotBinary) {
		t.Fatalf("got %v", err)
	}
}

func TestCalculatorProperties(t *testing.T) {
	c := newTestCalculator(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(7)
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("add matches integer addition", prop.ForAll(
		func(a, b uint32) bool {
			got, err := c.Add(ctx, ToBinary(uint64(a)), ToBinary(uint64(b)))
			return err == nil && got == ToBinary(uint64(a)+uint64(b))
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("subtract matches integer subtraction", prop.ForAll(
		func(a, b uint32) bool {
			hi, lo := max(a, b), min(a, b)
			got, err := c.Subtract(ctx, ToBinary(uint64(hi)), ToBinary(uint64(lo)))
			return err == nil && got == ToBinary(uint64(hi-lo))
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("multiply matches integer multiplication", prop.ForAll(
		func(a, b uint16) bool {
			got, err := c.Multiply(ctx, ToBinary(uint64(a)), ToBinary(uint64(b)))
			return err == nil && got == ToBinary(uint64(a)*uint64(b))
		},
		gen.UInt16(),
		gen.UInt16(),
	))

	properties.TestingRun(t)
}
