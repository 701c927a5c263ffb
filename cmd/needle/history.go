package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/praetorian-inc/needle/pkg/store"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/spf13/cobra"
)

var (
	historyDatabase string
	historyPattern  string
	historyFile     string
	historyFormat   string
	historyColor    string
)

var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long:  "Read runs recorded with --record from a history database",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().StringVar(&historyDatabase, "db", "needle.db", "Path to history database")
	cmd.Flags().StringVarP(&historyPattern, "pattern", "p", "", "Only runs that searched for this pattern")
	cmd.Flags().StringVar(&historyFile, "file", "", "Only runs over the contents of this file")
	cmd.Flags().StringVar(&historyFormat, "format", "human", "Output format: human, json")
	cmd.Flags().StringVar(&historyColor, "color", "auto", "Color output: auto, always, never")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := resolveString(cmd, "db", historyDatabase, cfg.Database)
	if dbPath == ":memory:" {
		return fmt.Errorf("cannot read history from in-memory store")
	}
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("history database not found: %s", dbPath)
		}
		return fmt.Errorf("checking history database: %w", err)
	}

	s, err := store.New(store.Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer s.Close()

	runs, err := queryHistory(s)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	switch format := resolveFormat(cmd, historyFormat, cfg.Format, "human", "json"); format {
	case "json":
		if runs == nil {
			runs = []*types.Run{}
		}
		return writeJSON(cmd.OutOrStdout(), runs)
	case "human":
		st, err := stylesFor(resolveString(cmd, "color", historyColor, cfg.Color))
		if err != nil {
			return err
		}
		outputHistoryHuman(cmd, st, dbPath, runs)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// queryHistory applies the --pattern and --file filters.
func queryHistory(s store.Store) ([]*types.Run, error) {
	var textID *types.TextID
	if historyFile != "" {
		content, err := os.ReadFile(historyFile)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		id := types.ComputeTextID(content)
		textID = &id
	}

	var (
		runs []*types.Run
		err  error
	)
	switch {
	case historyPattern != "":
		runs, err = s.GetRunsByPattern(types.ComputePatternID([]byte(historyPattern)))
	case textID != nil:
		runs, err = s.GetRunsByText(*textID)
	default:
		runs, err = s.GetRuns()
	}
	if err != nil {
		return nil, err
	}

	if historyPattern == "" || textID == nil {
		return runs, nil
	}

	filtered := runs[:0]
	for _, r := range runs {
		if r.TextID == *textID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func outputHistoryHuman(cmd *cobra.Command, s *styles, dbPath string, runs []*types.Run) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("History:"), dbPath)
	fmt.Fprintf(out, "%s %d\n\n", s.heading.Sprint("Total runs:"), len(runs))
	if len(runs) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECORDED\tALGORITHM\tTEXT\tLEN\tPATTERN\tMATCHES\tELAPSED (ns)")
	for _, r := range runs {
		matches := s.index.Sprint(len(r.Indices))
		if !r.Found() {
			matches = "none"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%q\t%s\t%d\n",
			r.ID,
			r.RecordedAt.Format("2006-01-02 15:04:05"),
			s.algorithm.Sprint(r.Algorithm),
			s.metadata.Sprint(r.TextID.Short()),
			r.TextLen,
			r.Pattern,
			matches,
			r.Elapsed.Nanoseconds())
	}
	w.Flush()
}
