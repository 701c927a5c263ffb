// Package matcher implements exact single-pattern substring search.
//
// Four interchangeable strategies satisfy the Matcher contract: Naive
// (brute force), RabinKarp (modular hash plus verification), KMP (prefix
// function) and BoyerMoore (bad-character shifts). Symbols are bytes and
// comparison is exact and case-sensitive.
//
// Every matcher is a pure function of its inputs. Tables are rebuilt on each
// call and nothing is shared between calls, so a single value may be used
// from many goroutines at once.
package matcher

import (
	"fmt"

	"github.com/praetorian-inc/needle/pkg/types"
)

// Matcher finds every occurrence of a pattern in a text.
type Matcher interface {
	// Name returns the algorithm name recorded in results.
	Name() string

	// Find returns the start index of each occurrence of pattern in text,
	// in increasing order. A pattern longer than the text yields an empty
	// result. An empty pattern fails with ErrEmptyPattern.
	Find(text, pattern []byte) (*types.MatchResult, error)
}

// Config selects and parameterizes a matcher.
type Config struct {
	// Algorithm to use. Empty selects AlgorithmKMP.
	Algorithm Algorithm

	// Modulus for Rabin-Karp hashing. Must be positive when Algorithm is
	// AlgorithmRabinKarp; ignored otherwise.
	Modulus int

	// Base for Rabin-Karp positional weights (0 = DefaultBase).
	Base int
}

// New creates the matcher described by cfg.
func New(cfg Config) (Matcher, error) {
	algo := cfg.Algorithm
	if algo == "" {
		algo = AlgorithmKMP
	}

	switch algo {
	case AlgorithmNaive:
		return Naive{}, nil
	case AlgorithmRabinKarp:
		rk := RabinKarp{Modulus: cfg.Modulus, Base: cfg.Base}
		if err := rk.validate(); err != nil {
			return nil, err
		}
		return rk, nil
	case AlgorithmKMP:
		return KMP{}, nil
	case AlgorithmBoyerMoore:
		return BoyerMoore{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}

// NewAll creates one matcher per algorithm, in Algorithms() order.
func NewAll(cfg Config) ([]Matcher, error) {
	algos := Algorithms()
	matchers := make([]Matcher, 0, len(algos))
	for _, algo := range algos {
		c := cfg
		c.Algorithm = algo
		m, err := New(c)
		if err != nil {
			return nil, fmt.Errorf("creating %s matcher: %w", algo, err)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// FindString is Find for string inputs. Strings are searched byte by byte.
func FindString(m Matcher, text, pattern string) (*types.MatchResult, error) {
	return m.Find([]byte(text), []byte(pattern))
}

// checkPattern enforces the empty-pattern policy shared by all matchers.
func checkPattern(pattern []byte) error {
	if len(pattern) == 0 {
		return ErrEmptyPattern
	}
	return nil
}

// windowEqual compares pattern against text[start:start+len(pattern)]
// symbol by symbol. The caller guarantees the window is in range.
func windowEqual(text []byte, start int, pattern []byte) bool {
	for j := range pattern {
		if text[start+j] != pattern[j] {
			return false
		}
	}
	return true
}
