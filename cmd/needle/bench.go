package main

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/needle"
	"github.com/praetorian-inc/needle/pkg/bench"
	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/spf13/cobra"
)

var (
	benchPattern    string
	benchText       string
	benchAlgorithms []string
	benchModulus    int
	benchBase       int
	benchIterations int
	benchParallel   bool
	benchFormat     string
	benchColor      string
	benchRecord     string
)

var benchCmd = newBenchCmd()

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [file | -]",
		Short: "Time each algorithm on the same input",
		Long: `Run each algorithm on the same input and report the elapsed wall-clock
time in nanoseconds. With --iterations > 1 the mean is reported together
with the fastest and slowest iteration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBench,
	}
	cmd.Flags().StringVarP(&benchPattern, "pattern", "p", "", "Pattern to search for")
	cmd.Flags().StringVarP(&benchText, "text", "t", "", "Literal text to search")
	cmd.Flags().StringSliceVarP(&benchAlgorithms, "algorithm", "a", nil, "Algorithms to time (default all)")
	cmd.Flags().IntVar(&benchModulus, "modulus", needle.DefaultModulus, "Rabin-Karp modulus")
	cmd.Flags().IntVar(&benchBase, "base", matcher.DefaultBase, "Rabin-Karp positional base")
	cmd.Flags().IntVarP(&benchIterations, "iterations", "n", 1, "Invocations per algorithm")
	cmd.Flags().BoolVar(&benchParallel, "parallel", false, "Time algorithms concurrently")
	cmd.Flags().StringVar(&benchFormat, "format", "human", "Output format: human, json")
	cmd.Flags().StringVar(&benchColor, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().StringVar(&benchRecord, "record", "", "Record one run per algorithm to this history database")
	return cmd
}

// benchOutput is the JSON shape of one timed algorithm.
type benchOutput struct {
	Algorithm  string `json:"algorithm"`
	Indices    []int  `json:"indices"`
	Iterations int    `json:"iterations"`
	MeanNs     int64  `json:"mean_ns"`
	MinNs      int64  `json:"min_ns"`
	MaxNs      int64  `json:"max_ns"`
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr())

	cfg.Modulus = resolveInt(cmd, "modulus", benchModulus, cfg.Modulus)
	cfg.Base = resolveInt(cmd, "base", benchBase, cfg.Base)
	mc, err := cfg.MatcherConfig()
	if err != nil {
		return err
	}
	matchers, err := benchMatchers(mc)
	if err != nil {
		return err
	}

	in, err := readInput(cmd, args, benchText, benchPattern)
	if err != nil {
		return err
	}

	opts := bench.DefaultOptions()
	opts.Iterations = benchIterations
	opts.Parallel = benchParallel
	logger.Debug("benchmarking", "matchers", len(matchers), "iterations", opts.Iterations, "parallel", opts.Parallel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := bench.Run(ctx, in.text, in.pattern, matchers, opts)
	if err != nil {
		return fmt.Errorf("benchmarking: %w", err)
	}

	if benchRecord != "" {
		runs := make([]*types.Run, 0, len(report.Stats))
		for _, stat := range report.Stats {
			runs = append(runs, types.NewRun(in.text, in.pattern, stat.Result, stat.Mean()))
		}
		if err := recordRuns(logger, benchRecord, runs...); err != nil {
			return err
		}
		logger.Info("recorded runs", "database", benchRecord, "count", len(runs))
	}

	switch format := resolveFormat(cmd, benchFormat, cfg.Format, "human", "json"); format {
	case "json":
		out := make([]benchOutput, 0, len(report.Stats))
		for _, stat := range report.Stats {
			out = append(out, benchOutput{
				Algorithm:  stat.Algorithm,
				Indices:    stat.Result.Indices,
				Iterations: stat.Iterations,
				MeanNs:     stat.Mean().Nanoseconds(),
				MinNs:      stat.Min.Nanoseconds(),
				MaxNs:      stat.Max.Nanoseconds(),
			})
		}
		return writeJSON(cmd.OutOrStdout(), out)
	case "human":
		s, err := stylesFor(resolveString(cmd, "color", benchColor, cfg.Color))
		if err != nil {
			return err
		}
		outputBenchHuman(cmd, s, report)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// benchMatchers returns the matchers selected by --algorithm, or all of them.
func benchMatchers(cfg matcher.Config) ([]matcher.Matcher, error) {
	if len(benchAlgorithms) == 0 {
		return matcher.NewAll(cfg)
	}

	matchers := make([]matcher.Matcher, 0, len(benchAlgorithms))
	for _, name := range benchAlgorithms {
		algo, err := matcher.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		c := cfg
		c.Algorithm = algo
		m, err := matcher.New(c)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

func outputBenchHuman(cmd *cobra.Command, s *styles, report *bench.Report) {
	out := cmd.OutOrStdout()

	for _, stat := range report.Stats {
		fmt.Fprintln(out, s.algorithm.Sprint(stat.Algorithm))

		if stat.Result.Found() {
			for _, idx := range stat.Result.Indices {
				fmt.Fprintf(out, "Pattern found at index %s\n", s.index.Sprint(idx))
			}
		} else {
			fmt.Fprintln(out, "Pattern not found")
		}

		fmt.Fprintf(out, "Elapsed Time in nano seconds: %d\n", stat.Mean().Nanoseconds())
		if stat.Iterations > 1 {
			fmt.Fprintln(out, s.metadata.Sprintf("(mean of %d iterations, min %d, max %d)",
				stat.Iterations, stat.Min.Nanoseconds(), stat.Max.Nanoseconds()))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Fastest:"), report.Summary.Fastest)
	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Slowest:"), report.Summary.Slowest)
}
