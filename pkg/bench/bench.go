// Package bench times matcher invocations.
//
// Matchers are pure, so independent invocations may run in parallel; Run
// does that with one goroutine per matcher when Options.Parallel is set.
// Individual invocations are never interrupted: cancellation is observed
// between iterations only.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Options configures a benchmark run.
type Options struct {
	Iterations int  // invocations per matcher (minimum 1)
	Parallel   bool // run matchers concurrently
}

// DefaultOptions returns the default benchmark options
func DefaultOptions() Options {
	return Options{
		Iterations: 1,
		Parallel:   false,
	}
}

// Stat contains timing statistics for one matcher
type Stat struct {
	Algorithm  string             // Matcher name
	Result     *types.MatchResult // Result of the last iteration
	Iterations int                // Completed iterations
	Total      time.Duration      // Sum of all iteration durations
	Min        time.Duration      // Fastest iteration
	Max        time.Duration      // Slowest iteration
	Last       time.Duration      // Duration of the last iteration
}

// Mean returns the average iteration duration.
func (s Stat) Mean() time.Duration {
	if s.Iterations == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Iterations)
}

// Summary aggregates a run
type Summary struct {
	Matchers  int           // Number of matchers timed
	Fastest   string        // Algorithm with the lowest mean
	Slowest   string        // Algorithm with the highest mean
	WallClock time.Duration // Elapsed time of the whole run
}

// Report contains per-matcher statistics and the summary
type Report struct {
	Stats   []Stat
	Summary Summary
}

// Time runs m once and returns its result with the elapsed wall-clock time.
func Time(m matcher.Matcher, text, pattern []byte) (*types.MatchResult, time.Duration, error) {
	start := time.Now()
	result, err := m.Find(text, pattern)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, fmt.Errorf("%s: %w", m.Name(), err)
	}
	return result, elapsed, nil
}

// Run times every matcher on the same input. Stats keep the order of
// matchers regardless of Options.Parallel.
func Run(ctx context.Context, text, pattern []byte, matchers []matcher.Matcher, opts Options) (*Report, error) {
	if opts.Iterations < 1 {
		opts.Iterations = 1
	}

	start := time.Now()
	stats := make([]Stat, len(matchers))

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, m := range matchers {
			g.Go(func() error {
				stat, err := measure(gctx, m, text, pattern, opts.Iterations)
				if err != nil {
					return err
				}
				stats[i] = stat
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, m := range matchers {
			stat, err := measure(ctx, m, text, pattern, opts.Iterations)
			if err != nil {
				return nil, err
			}
			stats[i] = stat
		}
	}

	report := &Report{
		Stats: stats,
		Summary: Summary{
			Matchers:  len(stats),
			WallClock: time.Since(start),
		},
	}
	report.summarize()
	return report, nil
}

func measure(ctx context.Context, m matcher.Matcher, text, pattern []byte, iterations int) (Stat, error) {
	stat := Stat{Algorithm: m.Name()}
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return stat, err
		}

		result, elapsed, err := Time(m, text, pattern)
		if err != nil {
			return stat, err
		}

		stat.Result = result
		stat.Last = elapsed
		stat.Total += elapsed
		if stat.Iterations == 0 || elapsed < stat.Min {
			stat.Min = elapsed
		}
		if elapsed > stat.Max {
			stat.Max = elapsed
		}
		stat.Iterations++
	}
	return stat, nil
}

func (r *Report) summarize() {
	for i, s := range r.Stats {
		if i == 0 || s.Mean() < r.byName(r.Summary.Fastest).Mean() {
			r.Summary.Fastest = s.Algorithm
		}
		if i == 0 || s.Mean() > r.byName(r.Summary.Slowest).Mean() {
			r.Summary.Slowest = s.Algorithm
		}
	}
}

func (r *Report) byName(name string) Stat {
	for _, s := range r.Stats {
		if s.Algorithm == name {
			return s
		}
	}
	return Stat{}
}
