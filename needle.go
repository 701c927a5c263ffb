// Package needle provides exact substring search over byte texts.
//
// Four interchangeable algorithms are available: naive brute force,
// Rabin-Karp, Knuth-Morris-Pratt and Boyer-Moore. All report the start
// index of every occurrence; Boyer-Moore resumes after each match and so
// reports non-overlapping occurrences only.
//
// # Basic Usage
//
// Create a searcher and search a text:
//
//	s, err := needle.NewSearcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := s.SearchString("AABAACAADAABAAABAA", "AABA")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Indices) // [0 9 13]
//
// # Locating Occurrences
//
// Locate resolves each index to a line/column span with context lines:
//
//	s, err := needle.NewSearcher(
//	    needle.WithAlgorithm(needle.AlgorithmRabinKarp),
//	    needle.WithModulus(101),
//	    needle.WithContextLines(1),
//	)
//	occs, err := s.Locate(text, pattern)
//	for _, occ := range occs {
//	    fmt.Printf("%d:%d\n", occ.Location.Source.Start.Line, occ.Location.Source.Start.Column)
//	}
package needle

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/praetorian-inc/needle/pkg/verify"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/needle" without subpackages.
type (
	// MatchResult lists the start indices found by one algorithm.
	MatchResult = types.MatchResult

	// Occurrence is a match resolved to a location with a snippet.
	Occurrence = types.Occurrence

	// Location describes where an occurrence was found within a text.
	Location = types.Location

	// Snippet contains the matched text with surrounding context.
	Snippet = types.Snippet

	// Algorithm names a matching strategy.
	Algorithm = matcher.Algorithm
)

// Re-export algorithm constants.
const (
	AlgorithmNaive      = matcher.AlgorithmNaive
	AlgorithmRabinKarp  = matcher.AlgorithmRabinKarp
	AlgorithmKMP        = matcher.AlgorithmKMP
	AlgorithmBoyerMoore = matcher.AlgorithmBoyerMoore
)

// DefaultModulus is the Rabin-Karp modulus used when none is configured.
const DefaultModulus = matcher.DefaultModulus

// Searcher runs one configured matcher. It holds no per-search state and is
// safe for concurrent use.
type Searcher struct {
	matcher matcher.Matcher
	config  *searcherConfig
}

// searcherConfig holds searcher configuration.
type searcherConfig struct {
	algorithm    Algorithm
	modulus      int
	base         int
	contextLines int
}

// Option configures a Searcher.
type Option func(*searcherConfig)

// WithAlgorithm selects the matching algorithm. Default is KMP.
func WithAlgorithm(algo Algorithm) Option {
	return func(c *searcherConfig) {
		c.algorithm = algo
	}
}

// WithModulus sets the Rabin-Karp modulus. Ignored by other algorithms.
func WithModulus(q int) Option {
	return func(c *searcherConfig) {
		c.modulus = q
	}
}

// WithBase sets the Rabin-Karp positional base. Ignored by other algorithms.
func WithBase(base int) Option {
	return func(c *searcherConfig) {
		c.base = base
	}
}

// WithContextLines sets the number of context lines Locate includes around
// each occurrence. Default is 0.
func WithContextLines(lines int) Option {
	return func(c *searcherConfig) {
		c.contextLines = lines
	}
}

// NewSearcher creates a new Searcher with the given options.
//
// By default, the searcher:
//   - Uses KMP
//   - Uses DefaultModulus and base 10 if Rabin-Karp is selected
//   - Includes no context lines in located snippets
func NewSearcher(opts ...Option) (*Searcher, error) {
	config := &searcherConfig{
		algorithm: AlgorithmKMP,
		modulus:   DefaultModulus,
		base:      matcher.DefaultBase,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.contextLines < 0 {
		return nil, fmt.Errorf("%w: negative context lines %d", matcher.ErrInvalidArgument, config.contextLines)
	}

	m, err := matcher.New(matcher.Config{
		Algorithm: config.algorithm,
		Modulus:   config.modulus,
		Base:      config.base,
	})
	if err != nil {
		return nil, fmt.Errorf("creating matcher: %w", err)
	}

	return &Searcher{
		matcher: m,
		config:  config,
	}, nil
}

// Algorithm returns the algorithm this searcher runs.
func (s *Searcher) Algorithm() Algorithm {
	return Algorithm(s.matcher.Name())
}

// Search returns every start index of pattern in text.
func (s *Searcher) Search(text, pattern []byte) (*MatchResult, error) {
	return s.matcher.Find(text, pattern)
}

// SearchString is Search for string inputs.
func (s *Searcher) SearchString(text, pattern string) (*MatchResult, error) {
	return s.Search([]byte(text), []byte(pattern))
}

// SearchFile reads a file and searches its contents.
func (s *Searcher) SearchFile(path string, pattern []byte) (*MatchResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return s.Search(content, pattern)
}

// Locate searches text and resolves each occurrence to its byte span,
// line/column span and snippet.
func (s *Searcher) Locate(text, pattern []byte) ([]*Occurrence, error) {
	res, err := s.Search(text, pattern)
	if err != nil {
		return nil, err
	}
	return types.Locate(text, res, len(pattern), s.config.contextLines), nil
}

// Verify runs every algorithm on the same input and compares each result
// with the reference positions. The configured modulus and base are used
// for Rabin-Karp.
func (s *Searcher) Verify(text, pattern []byte) (*verify.Report, error) {
	matchers, err := matcher.NewAll(matcher.Config{
		Modulus: s.config.modulus,
		Base:    s.config.base,
	})
	if err != nil {
		return nil, err
	}
	return verify.CrossCheck(text, pattern, matchers)
}

// Algorithms lists the available algorithms in canonical order.
func Algorithms() []Algorithm {
	return matcher.Algorithms()
}
