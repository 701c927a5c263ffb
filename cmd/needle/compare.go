package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/needle"
	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/verify"
	"github.com/spf13/cobra"
)

var (
	comparePattern string
	compareText    string
	compareModulus int
	compareBase    int
	compareFormat  string
	compareColor   string
)

var compareCmd = newCompareCmd()

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [file | -]",
		Short: "Run every algorithm and check them against a reference",
		Long: `Run all four algorithms on the same input and compare each result with
the occurrences found by an independent regular-expression engine.
Boyer-Moore is held to the leftmost non-overlapping subset.

Exits non-zero when any algorithm disagrees.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompare,
	}
	cmd.Flags().StringVarP(&comparePattern, "pattern", "p", "", "Pattern to search for")
	cmd.Flags().StringVarP(&compareText, "text", "t", "", "Literal text to search")
	cmd.Flags().IntVar(&compareModulus, "modulus", needle.DefaultModulus, "Rabin-Karp modulus")
	cmd.Flags().IntVar(&compareBase, "base", matcher.DefaultBase, "Rabin-Karp positional base")
	cmd.Flags().StringVar(&compareFormat, "format", "human", "Output format: human, json")
	cmd.Flags().StringVar(&compareColor, "color", "auto", "Color output: auto, always, never")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	searcher, err := needle.NewSearcher(
		needle.WithModulus(resolveInt(cmd, "modulus", compareModulus, cfg.Modulus)),
		needle.WithBase(resolveInt(cmd, "base", compareBase, cfg.Base)),
	)
	if err != nil {
		return err
	}

	in, err := readInput(cmd, args, compareText, comparePattern)
	if err != nil {
		return err
	}

	report, err := searcher.Verify(in.text, in.pattern)
	if err != nil {
		return fmt.Errorf("comparing: %w", err)
	}

	switch format := resolveFormat(cmd, compareFormat, cfg.Format, "human", "json"); format {
	case "json":
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	case "human":
		s, err := stylesFor(resolveString(cmd, "color", compareColor, cfg.Color))
		if err != nil {
			return err
		}
		outputCompareHuman(cmd, s, report)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	if !report.OK() {
		return fmt.Errorf("%d of %d algorithms disagree with the reference", len(report.Disagreements()), len(report.Verdicts))
	}
	return nil
}

func outputCompareHuman(cmd *cobra.Command, s *styles, report *verify.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s %v\n", s.heading.Sprint("Reference:"), report.Reference)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, v := range report.Verdicts {
		status := s.ok.Sprint("ok")
		if !v.Agree {
			status = s.fail.Sprintf("MISMATCH (want %v)", v.Want)
		}
		fmt.Fprintf(w, "%s\t%v\t%s\n", s.algorithm.Sprint(v.Algorithm), v.Got, status)
	}
	w.Flush()

	if !report.Found {
		fmt.Fprintln(out, "Pattern not found")
	}
}
