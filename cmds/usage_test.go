package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("run", Sub(map[string]*Command{
		"step": Func(func() {
		}).Desc("single step"),
		"batch": Sub(map[string]*Command{
			"parallel": Func(func(n int) {}).Desc("worker count"),
			"inputs":   Func(func(name *string, inputs ...string) {}),
		}).Desc("batch mode"),
	}).Desc("run a machine").Alias("r"))

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()

	for _, expected := range []string{
		"-h (help, -help, --help)\tprint this usage\n",
		"run (r)\trun a machine\n",
		"  batch\tbatch mode\n",
		"    inputs <string> [string...]\n",
		"    parallel <int>\tworker count\n",
		"  step\tsingle step\n",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("missing %q in\n%s", expected, out)
		}
	}
	// aliases are listed once
	if strings.Count(out, "run a machine") != 1 {
		t.Fatalf("got\n%s", out)
	}
}
