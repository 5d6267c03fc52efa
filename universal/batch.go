package universal

import (
	"context"
	"sync"

	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/syncs"
)

type Job struct {
	Machine  encodings.EncodedMachine
	Input    string
	MaxSteps uint64
}

type Outcome struct {
	Job    Job
	Result machines.Result
	Output string
	State  string
	Steps  uint64
	Err    error
}

// RunBatch runs every job on its own engine, at most parallel at a time.
// Outcomes are in job order. A failing job does not affect the others.
type RunBatch func(ctx context.Context, jobs []Job, parallel int) []Outcome

func (Module) RunBatch(
	logger logs.Logger,
	build encodings.Builder,
	newSpan logs.NewSpan,
) RunBatch {
	return func(ctx context.Context, jobs []Job, parallel int) []Outcome {
		ctx, _ = newSpan(ctx, "batch", "jobs", len(jobs))
		sem := syncs.NewSemaphore(parallel)
		outcomes := make([]Outcome, len(jobs))
		var wg sync.WaitGroup
		for i, job := range jobs {
			if err := sem.AcquireContext(ctx); err != nil {
				outcomes[i] = Outcome{
					Job:    job,
					Result: machines.ResultError,
					Err:    err,
				}
				continue
			}
			wg.Go(func() {
				defer sem.Release()
				outcomes[i] = runJob(ctx, logger, build, job)
			})
		}
		wg.Wait()
		return outcomes
	}
}

func runJob(
	ctx context.Context,
	logger logs.Logger,
	build encodings.Builder,
	job Job,
) (ret Outcome) {
	ret.Job = job
	ret.Result = machines.ResultError

	if err := checkInput(job.Machine, job.Input); err != nil {
		ret.Err = err
		return
	}
	engine, err := build(job.Machine)
	if err != nil {
		ret.Err = err
		return
	}
	exec, err := execute(ctx, logger, engine, job.Machine.BlankSymbol, job.Input, false, false, job.MaxSteps)
	if err != nil {
		ret.Err = logs.WrapSpan(ctx, err)
		logger.WarnContext(ctx, "batch job failed", "machine", job.Machine.ID, "input", job.Input, "error", err)
		return
	}
	ret.Result = exec.result
	ret.Output = exec.output
	ret.State = exec.state
	ret.Steps = exec.steps
	return
}
