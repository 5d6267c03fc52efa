package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/arithmetics"
	"github.com/reusee/turing/cmds"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/programs"
	"github.com/reusee/turing/scripts"
	"github.com/reusee/turing/storages"
	"github.com/reusee/turing/universal"
	"github.com/reusee/turing/vars"
)

func init() {

	cmds.Define("list", cmds.Func(func() {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			for _, m := range s.universal.Machines() {
				fmt.Printf("%s\t%s\t%s\n", m.ID, m.Name, m.Description)
			}
			return nil
		})
	}).Desc("list machines").Alias("ls"))

	cmds.Define("encode", cmds.Func(func(id string) {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			m, ok := s.universal.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", universal.ErrMachineNotFound, id)
			}
			fmt.Println(encodings.Encode(m))
			return nil
		})
	}).Desc("print the encoded description of a machine"))

	simulate := func(stepwise bool) func(id string, input *string) {
		return func(id string, input *string) {
			queue(func(ctx context.Context, scope dscope.Scope) error {
				s, err := getSession(ctx, scope)
				if err != nil {
					return err
				}
				u := s.universal
				if err := u.Load(id); err != nil {
					return err
				}
				in := vars.DerefOrZero(input)
				if err := u.SetInput(in); err != nil {
					return err
				}
				var result machines.Result
				if stepwise {
					result = u.SimulateStepByStep(ctx, *verbose, s.settings.MaxSteps)
				} else {
					result = u.Run(ctx, s.settings.MaxSteps)
				}
				output := u.SimulationTape()
				fmt.Printf("result: %s\noutput: %s\nstate: %s\n", result, output, u.SimulatedState())
				if *verbose {
					for _, entry := range u.History() {
						fmt.Printf("  %d: %s %v -> %s %v %v\n",
							entry.Step, entry.State, entry.Read, entry.Next, entry.Write, entry.Positions)
					}
				}
				return s.record(ctx, storages.Run{
					MachineID: id,
					Input:     in,
					Output:    output,
					Result:    result,
					State:     u.SimulatedState(),
					Steps:     u.SimulatedSteps(),
				})
			})
		}
	}
	cmds.Define("run", cmds.Func(simulate(false)).Desc("run a machine on an input"))
	cmds.Define("step", cmds.Func(simulate(true)).Desc("run a machine one step at a time"))

	cmds.Define("batch", cmds.Func(func(id string, inputs ...string) {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			m, ok := s.universal.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", universal.ErrMachineNotFound, id)
			}
			jobs := make([]universal.Job, 0, len(inputs))
			for _, input := range inputs {
				jobs = append(jobs, universal.Job{
					Machine:  m,
					Input:    input,
					MaxSteps: s.settings.MaxSteps,
				})
			}
			var outcomes []universal.Outcome
			scope.Call(func(runBatch universal.RunBatch) {
				outcomes = runBatch(ctx, jobs, s.settings.Parallel)
			})
			for _, outcome := range outcomes {
				if outcome.Err != nil {
					fmt.Printf("%s\t%s\t%v\n", outcome.Job.Input, outcome.Result, outcome.Err)
					continue
				}
				fmt.Printf("%s\t%s\t%s\n", outcome.Job.Input, outcome.Result, outcome.Output)
				if err := s.record(ctx, storages.Run{
					MachineID: id,
					Input:     outcome.Job.Input,
					Output:    outcome.Output,
					Result:    outcome.Result,
					State:     outcome.State,
					Steps:     outcome.Steps,
				}); err != nil {
					return err
				}
			}
			return nil
		})
	}).Desc("run a machine on many inputs concurrently; takes all remaining arguments"))

	arithmetic := func(op func(c *arithmetics.Calculator) func(context.Context, string, string) (string, error)) func(a, b string) {
		return func(a, b string) {
			queue(func(ctx context.Context, scope dscope.Scope) (err error) {
				scope.Call(func(c *arithmetics.Calculator) {
					var result string
					result, err = op(c)(ctx, a, b)
					if err == nil {
						fmt.Println(result)
					}
				})
				return
			})
		}
	}
	cmds.Define("add", cmds.Func(arithmetic(func(c *arithmetics.Calculator) func(context.Context, string, string) (string, error) {
		return c.Add
	})).Desc("add two binary numbers"))
	cmds.Define("sub", cmds.Func(arithmetic(func(c *arithmetics.Calculator) func(context.Context, string, string) (string, error) {
		return c.Subtract
	})).Desc("subtract two binary numbers"))
	cmds.Define("mul", cmds.Func(arithmetic(func(c *arithmetics.Calculator) func(context.Context, string, string) (string, error) {
		return c.Multiply
	})).Desc("multiply two binary numbers"))

	cmds.Define("program", cmds.Func(func(path string, input *string) {
		queue(func(ctx context.Context, scope dscope.Scope) (err error) {
			program, err := programs.LoadFile(path)
			if err != nil {
				return err
			}
			scope.Call(func(
				newMachine machines.New,
				newExecutor func() *programs.Executor,
			) {
				var m *machines.Machine
				m, err = newMachine(machines.Options{
					Name:                 path,
					AllowImplicitSymbols: true,
				})
				if err != nil {
					return
				}
				if err = m.SetTapeContent("", vars.DerefOrZero(input), 0); err != nil {
					return
				}
				if err = newExecutor().Execute(ctx, program, m, 0); err != nil {
					return
				}
				var content string
				content, err = m.TapeContent("")
				if err != nil {
					return
				}
				fmt.Printf("tape: %s\nread: %s\n", content, strings.Join(program.Output, " "))
			})
			return
		})
	}).Desc("execute a head command program on a scratch tape"))

	cmds.Define("save", cmds.Func(func(id string) {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			store, err := s.requireStore()
			if err != nil {
				return err
			}
			m, ok := s.universal.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", universal.ErrMachineNotFound, id)
			}
			return store.Save(ctx, m)
		})
	}).Desc("save a machine to the database"))

	cmds.Define("delete", cmds.Func(func(id string) {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			store, err := s.requireStore()
			if err != nil {
				return err
			}
			return store.Delete(ctx, id)
		})
	}).Desc("delete a machine and its runs from the database"))

	cmds.Define("runs", cmds.Func(func(id string) {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			store, err := s.requireStore()
			if err != nil {
				return err
			}
			runs, err := store.Runs(ctx, id)
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
					run.CreatedAt.Format("2006-01-02 15:04:05"), run.ID, run.Input, run.Result, run.Output)
			}
			return nil
		})
	}).Desc("list recorded runs of a machine"))

	cmds.Define("tap", cmds.Func(func(id string, input *string) {
		queue(func(ctx context.Context, scope dscope.Scope) error {
			s, err := getSession(ctx, scope)
			if err != nil {
				return err
			}
			m, ok := s.universal.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", universal.ErrMachineNotFound, id)
			}
			scope.Call(func(
				build encodings.Builder,
				tap scripts.Tap,
			) {
				var engine *machines.Machine
				engine, err = build(m)
				if err != nil {
					return
				}
				if err = engine.SetTapeContent("", vars.DerefOrZero(input), 0); err != nil {
					return
				}
				err = tap(ctx, id, engine, map[string]any{
					"machine": m,
				})
			})
			return err
		})
	}).Desc("open an interactive session over a machine"))

}

// record logs a run when a database is configured.
func (s *session) record(ctx context.Context, run storages.Run) error {
	if s.store == nil {
		return nil
	}
	_, err := s.store.RecordRun(ctx, run)
	return err
}
