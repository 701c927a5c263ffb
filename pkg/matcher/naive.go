package matcher

import "github.com/praetorian-inc/needle/pkg/types"

// Naive compares the pattern against every candidate window of the text.
// Time O((N-M+1)*M), no preprocessing.
type Naive struct{}

// Name implements Matcher.
func (Naive) Name() string { return string(AlgorithmNaive) }

// Find implements Matcher.
func (n Naive) Find(text, pattern []byte) (*types.MatchResult, error) {
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}

	result := types.NewMatchResult(n.Name())
	last := len(text) - len(pattern)
	for i := 0; i <= last; i++ {
		if windowEqual(text, i, pattern) {
			result.Add(i)
		}
	}
	return result, nil
}
