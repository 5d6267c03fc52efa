package universal

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/modes"
)

func TestRunBatch(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		runBatch RunBatch,
	) {
		var jobs []Job
		for i := range 64 {
			jobs = append(jobs, Job{
				Machine: DivisibilityByThree(),
				Input:   fmt.Sprintf("%b", i),
			})
		}
		broken := BinaryIncrement()
		broken.InitialState = "missing"
		jobs = append(jobs,
			Job{
				Machine: BinaryIncrement(),
				Input:   "2",
			},
			Job{
				Machine: broken,
				Input:   "1",
			},
			Job{
				Machine:  BinaryIncrement(),
				Input:    "111",
				MaxSteps: 2,
			},
		)

		outcomes := runBatch(context.Background(), jobs, 8)
		if len(outcomes) != len(jobs) {
			t.Fatalf("got %d", len(outcomes))
		}
		for i := range 64 {
			expected := machines.ResultReject
			if i%3 == 0 {
				expected = machines.ResultAccept
			}
			if outcomes[i].Result != expected {
				t.Fatalf("%d: got %v", i, outcomes[i].Result)
			}
			if outcomes[i].Err != nil {
				t.Fatal(outcomes[i].Err)
			}
		}

		invalid := outcomes[64]
		if invalid.Result != machines.ResultError || !errors.Is(invalid.Err, ErrInvalidInput) {
			t.Fatalf("got %+v", invalid)
		}
		build := outcomes[65]
		if build.Result != machines.ResultError || !errors.Is(build.Err, encodings.ErrInvalidMachine) {
			t.Fatalf("got %+v", build)
		}
		timeout := outcomes[66]
		if timeout.Result != machines.ResultTimeout || timeout.Steps != 2 {
			t.Fatalf("got %+v", timeout)
		}
	})
}
