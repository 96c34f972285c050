// Package sweep runs one scenario across many seeds and tallies how each
// steering policy fares.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"text/tabwriter"
	"time"

	"go.uber.org/multierr"

	"boatsim/internal/config"
	"boatsim/internal/scenario"
	"boatsim/internal/trajectory"
)

// ErrInvalidRuns indicates a sweep with no runs.
var ErrInvalidRuns = errors.New("sweep: runs must be positive")

// Options controls the sweep size and parallelism.
type Options struct {
	Runs int
	// Workers defaults to runtime.NumCPU() when <= 0.
	Workers   int
	FirstSeed int64
}

// Outcome aggregates one policy over every successful run.
type Outcome struct {
	Policy         string
	ReachedGoal    int
	LeftDomain     int
	DidNotConverge int
	// MeanSteps averages the step count of reached-goal runs only.
	MeanSteps float64
	// BestSeed is the seed with the fewest steps to the goal. Both Best
	// fields are meaningful only when ReachedGoal > 0.
	BestSeed  int64
	BestSteps int

	stepSum int
}

func (o *Outcome) add(seed int64, tr trajectory.Trajectory) {
	switch tr.Reason {
	case trajectory.ReachedGoal:
		o.ReachedGoal++
		o.stepSum += tr.Steps()
		if o.ReachedGoal == 1 || tr.Steps() < o.BestSteps || (tr.Steps() == o.BestSteps && seed < o.BestSeed) {
			o.BestSteps = tr.Steps()
			o.BestSeed = seed
		}
	case trajectory.LeftDomain:
		o.LeftDomain++
	case trajectory.DidNotConverge:
		o.DidNotConverge++
	}
}

// Report is the sweep summary.
type Report struct {
	Runs     int
	Failed   int
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Outcome returns the tally for policy.
func (r Report) Outcome(policy string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Policy == policy {
			return o, true
		}
	}
	return Outcome{}, false
}

type job struct {
	seed int64
}

type result struct {
	seed int64
	res  *scenario.Result
	err  error
}

// Run simulates base with seeds FirstSeed, FirstSeed+1, ... on a pool of
// workers. Failed runs are counted and their errors combined; the report
// covers the runs that succeeded.
func Run(ctx context.Context, base config.Scenario, opts Options) (Report, error) {
	if opts.Runs <= 0 {
		return Report{}, fmt.Errorf("%w: got %d", ErrInvalidRuns, opts.Runs)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Runs {
		workers = opts.Runs
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				s := base
				s.Seed = j.seed
				res, err := scenario.Run(ctx, s)
				select {
				case results <- result{seed: j.seed, res: res, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i := 0; i < opts.Runs; i++ {
			select {
			case jobs <- job{seed: opts.FirstSeed + int64(i)}:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	report := Report{}
	outcomes := map[string]*Outcome{}
	var order []string
	var errs error

	for r := range results {
		if r.err != nil {
			report.Failed++
			errs = multierr.Append(errs, fmt.Errorf("seed %d: %w", r.seed, r.err))
			continue
		}
		report.Runs++
		for _, name := range r.res.Order {
			o, ok := outcomes[name]
			if !ok {
				o = &Outcome{Policy: name}
				outcomes[name] = o
				order = append(order, name)
			}
			o.add(r.seed, r.res.Trajectories[name])
		}
	}
	report.Elapsed = time.Since(start)

	// Request order, not arrival order.
	for _, name := range policyOrder(base.Policies, order) {
		o := outcomes[name]
		if o.ReachedGoal > 0 {
			o.MeanSteps = float64(o.stepSum) / float64(o.ReachedGoal)
		}
		report.Outcomes = append(report.Outcomes, *o)
	}

	if err := ctx.Err(); err != nil && report.Runs+report.Failed < opts.Runs {
		errs = multierr.Append(errs, err)
	}
	return report, errs
}

func policyOrder(requested, seen []string) []string {
	known := make(map[string]bool, len(seen))
	for _, n := range seen {
		known[n] = true
	}
	out := make([]string, 0, len(seen))
	for _, n := range requested {
		if known[n] {
			out = append(out, n)
			delete(known, n)
		}
	}
	return out
}

// WriteTable prints the report as aligned columns.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "policy\treached\tleft\tstalled\tmean steps\tbest seed\tbest steps\n")
	for _, o := range r.Outcomes {
		best, steps := "-", "-"
		if o.ReachedGoal > 0 {
			best = fmt.Sprint(o.BestSeed)
			steps = fmt.Sprint(o.BestSteps)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\t%s\t%s\n",
			o.Policy, o.ReachedGoal, o.LeftDomain, o.DidNotConverge, o.MeanSteps, best, steps)
	}
	fmt.Fprintf(tw, "\n%d runs, %d failed, %s\n", r.Runs, r.Failed, r.Elapsed.Round(time.Millisecond))
	return tw.Flush()
}
