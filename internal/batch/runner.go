// Package batch fans tasks out across a bounded worker pool and aggregates
// the per-file outcomes into a run summary.
package batch

import (
	"sync"

	"avifbatch/internal/convert"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

// ConvertFunc processes one task. Implementations must capture failures in
// the outcome instead of panicking; the runner applies no retry.
type ConvertFunc func(convert.Task) convert.Outcome

// Runner executes tasks on a fixed-size pool. OnOutcome, when set, is called
// synchronously as each outcome is recorded with the running completion
// count, for live progress rendering.
type Runner struct {
	Workers   int
	OnOutcome func(completed int, o convert.Outcome)
}

// Summary aggregates every outcome of one run. Outcomes are ordered by
// original submission index regardless of completion order, and
// Succeeded+Failed always equals Total.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []convert.Outcome
}

// ExitCode maps the aggregate result to the process exit code: 0 when every
// conversion succeeded, 1 when all failed or nothing was resolved, 2 for a
// mixed run.
func (s Summary) ExitCode() int {
	switch {
	case s.Total == 0:
		return 1
	case s.Failed == 0:
		return 0
	case s.Succeeded == 0:
		return 1
	default:
		return 2
	}
}

// SuccessRate returns the percentage of tasks that succeeded.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total) * 100
}

// Run executes every task and blocks until all outcomes are collected.
// preFailures are outcomes produced before conversion started (unresolvable
// inputs); they are recorded first and count toward the summary. Each worker
// writes only its own task's outcome slot, so no lock guards the slice. A
// single task's failure never aborts the batch, and Workers=1 degenerates to
// strictly sequential execution with identical outcome content.
func (r *Runner) Run(tasks []convert.Task, preFailures []convert.Outcome, fn ConvertFunc) Summary {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]convert.Outcome, len(preFailures)+len(tasks))
	copy(outcomes, preFailures)

	var mu sync.Mutex
	completed := 0
	record := func(o convert.Outcome) {
		mu.Lock()
		completed++
		if r.OnOutcome != nil {
			r.OnOutcome(completed, o)
		}
		mu.Unlock()
	}

	for _, o := range preFailures {
		record(o)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	base := len(preFailures)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			o := fn(task)
			outcomes[base+i] = o
			record(o)
			return nil
		})
	}
	_ = g.Wait()

	s := Summary{Total: len(outcomes), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
