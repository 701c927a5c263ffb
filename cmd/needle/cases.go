package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/needle/pkg/cases"
	"github.com/spf13/cobra"
)

var (
	casesFile  string
	casesColor string
)

var casesCmd = newCasesCmd()

func newCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Manage and run search case suites",
		Long:  "List and run YAML suites of search cases against every algorithm",
	}
	cmd.PersistentFlags().StringVar(&casesFile, "file", "", "Path to a case suite YAML file (default builtin suite)")
	cmd.PersistentFlags().StringVar(&casesColor, "color", "auto", "Color output: auto, always, never")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cases",
		Args:  cobra.NoArgs,
		RunE:  runCasesList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run cases against every algorithm",
		Args:  cobra.NoArgs,
		RunE:  runCasesRun,
	})
	return cmd
}

// loadCases loads the suite named by --file, or the builtin suite.
func loadCases() ([]*cases.Case, error) {
	loader := cases.NewLoader()
	if casesFile != "" {
		return loader.LoadSuiteFile(casesFile)
	}
	return loader.LoadBuiltinCases()
}

func runCasesList(cmd *cobra.Command, args []string) error {
	suite, err := loadCases()
	if err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPATTERN\tEXPECTED")
	for _, c := range suite {
		expected := fmt.Sprint(c.Expected)
		if c.Error {
			expected = "error"
		}
		fmt.Fprintf(w, "%s\t%s\t%q\t%s\n", c.ID, c.Name, c.Pattern, expected)
	}
	return w.Flush()
}

func runCasesRun(cmd *cobra.Command, args []string) error {
	suite, err := loadCases()
	if err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}

	s, err := stylesFor(casesColor)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr())

	checks, failed := 0, 0
	for _, c := range suite {
		outcomes := cases.Check(c)
		checks += len(outcomes)

		failures := cases.Failures(outcomes)
		if len(failures) == 0 {
			logger.Debug("case passed", "id", c.ID)
			fmt.Fprintf(out, "%s %s\n", s.ok.Sprint("PASS"), c.ID)
			continue
		}

		failed += len(failures)
		fmt.Fprintf(out, "%s %s\n", s.fail.Sprint("FAIL"), c.ID)
		for _, f := range failures {
			if f.Err != nil {
				fmt.Fprintf(out, "    %s: %v\n", s.algorithm.Sprint(f.Algorithm), f.Err)
				continue
			}
			fmt.Fprintf(out, "    %s: got %v, want %v\n", s.algorithm.Sprint(f.Algorithm), f.Got, f.Want)
		}
	}

	fmt.Fprintf(out, "\n%d cases, %d checks, %d failures\n", len(suite), checks, failed)
	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	return nil
}
