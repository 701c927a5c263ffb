package matcher

import (
	"fmt"
	"strings"
)

// Algorithm names a matching strategy.
type Algorithm string

const (
	AlgorithmNaive      Algorithm = "naive"
	AlgorithmRabinKarp  Algorithm = "rabin-karp"
	AlgorithmKMP        Algorithm = "kmp"
	AlgorithmBoyerMoore Algorithm = "boyer-moore"
)

// Algorithms returns every supported algorithm in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmNaive,
		AlgorithmRabinKarp,
		AlgorithmKMP,
		AlgorithmBoyerMoore,
	}
}

var algorithmAliases = map[string]Algorithm{
	"naive":       AlgorithmNaive,
	"brute":       AlgorithmNaive,
	"brute-force": AlgorithmNaive,
	"rabin-karp":  AlgorithmRabinKarp,
	"rabinkarp":   AlgorithmRabinKarp,
	"rk":          AlgorithmRabinKarp,
	"kmp":         AlgorithmKMP,
	"boyer-moore": AlgorithmBoyerMoore,
	"boyermoore":  AlgorithmBoyerMoore,
	"bm":          AlgorithmBoyerMoore,
}

// ParseAlgorithm resolves a name or alias, ignoring case and surrounding
// whitespace.
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if algo, ok := algorithmAliases[key]; ok {
		return algo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Overlapping reports whether the algorithm reports occurrences that overlap
// an earlier occurrence. Boyer-Moore resumes after a full match instead.
func (a Algorithm) Overlapping() bool {
	return a != AlgorithmBoyerMoore
}

// Description is a one-line summary for listings.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmNaive:
		return "compare the pattern against every window"
	case AlgorithmRabinKarp:
		return "modular hash per window, verified on hash equality"
	case AlgorithmKMP:
		return "prefix-function driven single pass"
	case AlgorithmBoyerMoore:
		return "right-to-left windows with bad-character shifts"
	default:
		return "unknown"
	}
}

func (a Algorithm) String() string {
	return string(a)
}
