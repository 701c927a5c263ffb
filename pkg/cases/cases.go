// Package cases loads and runs YAML suites of search scenarios.
//
// A suite file holds a top-level "cases" list. Each case names a text, a
// pattern and the occurrences every overlapping matcher must report.
// Matchers that resume after a full match are held to
// expected_non_overlapping, which defaults to the leftmost non-overlapping
// subset of expected.
package cases

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/praetorian-inc/needle/pkg/verify"
	"gopkg.in/yaml.v3"
)

// DefaultModulus is used for Rabin-Karp when a case does not set one.
const DefaultModulus = 101

// Case is a single search scenario.
type Case struct {
	ID                     string
	Name                   string
	Description            string
	Text                   string
	Pattern                string
	Modulus                int   // Rabin-Karp modulus (0 = DefaultModulus)
	Expected               []int // overlapping occurrences
	ExpectedNonOverlapping []int // occurrences for non-overlapping matchers
	Error                  bool  // every matcher must reject the input
}

// Want returns the indices algo must report for this case.
func (c *Case) Want(algo matcher.Algorithm) []int {
	if algo.Overlapping() {
		return c.Expected
	}
	return c.ExpectedNonOverlapping
}

// Outcome is the result of running one matcher against one case.
type Outcome struct {
	CaseID    string
	Algorithm string
	Got       []int
	Want      []int
	Err       error
	Passed    bool
}

// Loader handles loading suites from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for the builtin suite
}

// NewLoader creates a loader backed by the embedded builtin suite.
func NewLoader() *Loader {
	return &Loader{fs: builtinCasesFS}
}

// NewLoaderWithFS creates a loader with a custom filesystem. Builtin cases
// are read from its "builtin" directory.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// LoadSuite parses a suite from YAML bytes.
func (l *Loader) LoadSuite(data []byte) ([]*Case, error) {
	var file yamlCasesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("no cases found in YAML")
	}

	cases := make([]*Case, 0, len(file.Cases))
	seen := make(map[string]bool)
	for i, yc := range file.Cases {
		c, err := convertYAMLCase(yc)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = true
		cases = append(cases, c)
	}
	return cases, nil
}

// LoadSuiteFile loads a suite from a YAML file path.
func (l *Loader) LoadSuiteFile(path string) ([]*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadSuite(data)
}

// LoadBuiltinCases loads every suite in the embedded filesystem.
func (l *Loader) LoadBuiltinCases() ([]*Case, error) {
	var all []*Case

	err := fs.WalkDir(l.fs, "builtin", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		cases, err := l.LoadSuite(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		all = append(all, cases...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return all, nil
}

// convertYAMLCase validates a parsed case and fills derived fields.
func convertYAMLCase(yc yamlCase) (*Case, error) {
	if yc.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if yc.Modulus < 0 {
		return nil, fmt.Errorf("%s: modulus must be positive", yc.ID)
	}

	c := &Case{
		ID:          yc.ID,
		Name:        yc.Name,
		Description: yc.Description,
		Text:        yc.Text,
		Pattern:     yc.Pattern,
		Modulus:     yc.Modulus,
		Expected:    append([]int{}, yc.Expected...),
		Error:       yc.Error,
	}
	if c.Modulus == 0 {
		c.Modulus = DefaultModulus
	}

	if yc.ExpectedNonOverlapping != nil {
		c.ExpectedNonOverlapping = append([]int{}, yc.ExpectedNonOverlapping...)
	} else {
		c.ExpectedNonOverlapping = verify.NonOverlapping(c.Expected, len(c.Pattern))
	}
	return c, nil
}

// Check runs every algorithm against c and reports one outcome per
// algorithm.
func Check(c *Case) []Outcome {
	outcomes := make([]Outcome, 0, len(matcher.Algorithms()))
	for _, algo := range matcher.Algorithms() {
		outcomes = append(outcomes, checkOne(c, algo))
	}
	return outcomes
}

func checkOne(c *Case, algo matcher.Algorithm) Outcome {
	out := Outcome{CaseID: c.ID, Algorithm: string(algo), Want: c.Want(algo)}

	m, err := matcher.New(matcher.Config{Algorithm: algo, Modulus: c.Modulus})
	if err != nil {
		out.Err = err
		return out
	}

	result, err := m.Find([]byte(c.Text), []byte(c.Pattern))
	if c.Error {
		switch {
		case err == nil:
			out.Err = fmt.Errorf("expected an error, got %v", result.Indices)
		case errors.Is(err, matcher.ErrInvalidArgument):
			out.Passed = true
		default:
			out.Err = err
		}
		return out
	}
	if err != nil {
		out.Err = err
		return out
	}

	out.Got = result.Indices
	out.Passed = types.EqualIndices(out.Got, out.Want)
	return out
}

// Failures filters outcomes that did not pass.
func Failures(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}
