package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/praetorian-inc/needle"
	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/sarif"
	"github.com/praetorian-inc/needle/pkg/store"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/spf13/cobra"
)

// maxSnippetLen bounds the snippet printed per occurrence in human output.
const maxSnippetLen = 160

var (
	findPattern      string
	findText         string
	findAlgorithm    string
	findModulus      int
	findBase         int
	findFormat       string
	findColor        string
	findContextLines int
	findRecord       string
)

var findCmd = newFindCmd()

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [file | -]",
		Short: "Find every occurrence of a pattern",
		Long: `Search a text for a pattern with one algorithm.

The text comes from --text, a file argument or "-" for stdin. Without any of
them the text and the pattern are read as two lines from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFind,
	}
	cmd.Flags().StringVarP(&findPattern, "pattern", "p", "", "Pattern to search for")
	cmd.Flags().StringVarP(&findText, "text", "t", "", "Literal text to search")
	cmd.Flags().StringVarP(&findAlgorithm, "algorithm", "a", string(matcher.AlgorithmKMP), "Algorithm: naive, rabin-karp, kmp, boyer-moore")
	cmd.Flags().IntVar(&findModulus, "modulus", needle.DefaultModulus, "Rabin-Karp modulus")
	cmd.Flags().IntVar(&findBase, "base", matcher.DefaultBase, "Rabin-Karp positional base")
	cmd.Flags().StringVar(&findFormat, "format", "human", "Output format: human, json, sarif")
	cmd.Flags().StringVar(&findColor, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().IntVar(&findContextLines, "context-lines", 0, "Lines of context before/after each occurrence")
	cmd.Flags().StringVar(&findRecord, "record", "", "Record the run to this history database")
	return cmd
}

// findOutput is the JSON shape of a search.
type findOutput struct {
	Algorithm   string             `json:"algorithm"`
	Pattern     string             `json:"pattern"`
	Source      string             `json:"source,omitempty"`
	TextID      types.TextID       `json:"text_id"`
	TextLen     int                `json:"text_len"`
	Indices     []int              `json:"indices"`
	Occurrences []occurrenceOutput `json:"occurrences"`
	ElapsedNs   int64              `json:"elapsed_ns"`
}

type occurrenceOutput struct {
	Index  int    `json:"index"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Before string `json:"before,omitempty"`
	Match  string `json:"match"`
	After  string `json:"after,omitempty"`
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr())

	cfg.Algorithm = resolveString(cmd, "algorithm", findAlgorithm, cfg.Algorithm)
	cfg.Modulus = resolveInt(cmd, "modulus", findModulus, cfg.Modulus)
	cfg.Base = resolveInt(cmd, "base", findBase, cfg.Base)
	mc, err := cfg.MatcherConfig()
	if err != nil {
		return err
	}
	algo := mc.Algorithm
	contextLines := resolveInt(cmd, "context-lines", findContextLines, cfg.ContextLines)

	searcher, err := needle.NewSearcher(
		needle.WithAlgorithm(algo),
		needle.WithModulus(mc.Modulus),
		needle.WithBase(mc.Base),
		needle.WithContextLines(contextLines),
	)
	if err != nil {
		return err
	}

	in, err := readInput(cmd, args, findText, findPattern)
	if err != nil {
		return err
	}
	logger.Debug("searching", "algorithm", algo, "text_len", len(in.text), "pattern_len", len(in.pattern))

	start := time.Now()
	result, err := searcher.Search(in.text, in.pattern)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	logger.Debug("search complete", "count", result.Count(), "elapsed", elapsed)
	occurrences := types.Locate(in.text, result, len(in.pattern), contextLines)

	if findRecord != "" {
		if err := recordRuns(logger, findRecord, types.NewRun(in.text, in.pattern, result, elapsed)); err != nil {
			return err
		}
		logger.Info("recorded run", "database", findRecord)
	}

	switch format := resolveFormat(cmd, findFormat, cfg.Format, "human", "json", "sarif"); format {
	case "json":
		return outputFindJSON(cmd, in, result, occurrences, elapsed)
	case "sarif":
		return outputFindSARIF(cmd, algo, in, occurrences)
	case "human":
		s, err := stylesFor(resolveString(cmd, "color", findColor, cfg.Color))
		if err != nil {
			return err
		}
		outputFindHuman(cmd, s, occurrences, contextLines > 0)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// recordRuns appends runs to the history database at path.
func recordRuns(logger *slog.Logger, path string, runs ...*types.Run) error {
	s, err := store.New(store.Config{Path: path})
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer s.Close()

	for _, run := range runs {
		seen, err := s.TextExists(run.TextID)
		if err != nil {
			return fmt.Errorf("checking text: %w", err)
		}
		if seen {
			logger.Debug("text seen before", "text_id", run.TextID.Hex(), "algorithm", run.Algorithm)
		}
		if err := s.AddRun(run); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}
	return nil
}

func outputFindHuman(cmd *cobra.Command, s *styles, occurrences []*types.Occurrence, showSnippet bool) {
	out := cmd.OutOrStdout()

	if len(occurrences) == 0 {
		fmt.Fprintln(out, "Pattern not found")
		return
	}

	for _, occ := range occurrences {
		fmt.Fprintf(out, "Pattern found at index %s %s\n",
			s.index.Sprint(occ.Index),
			s.metadata.Sprintf("(line %d, column %d)", occ.Location.Source.Start.Line, occ.Location.Source.Start.Column))

		if !showSnippet {
			continue
		}
		parts := formatSnippetWithParts(occ.Snippet.Before, occ.Snippet.Matching, occ.Snippet.After, maxSnippetLen)
		snippet := parts.prefix + parts.before + s.match.Sprint(parts.matching) + parts.after + parts.suffix
		for _, line := range strings.Split(snippet, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
}

func outputFindJSON(cmd *cobra.Command, in *input, result *types.MatchResult, occurrences []*types.Occurrence, elapsed time.Duration) error {
	out := findOutput{
		Algorithm:   result.Algorithm,
		Pattern:     string(in.pattern),
		Source:      in.source,
		TextID:      types.ComputeTextID(in.text),
		TextLen:     len(in.text),
		Indices:     result.Indices,
		Occurrences: make([]occurrenceOutput, 0, len(occurrences)),
		ElapsedNs:   elapsed.Nanoseconds(),
	}
	for _, occ := range occurrences {
		out.Occurrences = append(out.Occurrences, occurrenceOutput{
			Index:  occ.Index,
			Line:   occ.Location.Source.Start.Line,
			Column: occ.Location.Source.Start.Column,
			Before: string(occ.Snippet.Before),
			Match:  string(occ.Snippet.Matching),
			After:  string(occ.Snippet.After),
		})
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func outputFindSARIF(cmd *cobra.Command, algo matcher.Algorithm, in *input, occurrences []*types.Occurrence) error {
	report := sarif.NewReport()
	report.AddRule(algo)
	for _, occ := range occurrences {
		report.AddResult(algo, string(in.pattern), occ, in.source)
	}

	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding SARIF: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
