package matcher

import "github.com/praetorian-inc/needle/pkg/types"

// KMP scans the text once, using the pattern's prefix function to avoid
// re-comparing symbols that are already known to match. Time O(N+M)
// regardless of alphabet size.
type KMP struct{}

// Name implements Matcher.
func (KMP) Name() string { return string(AlgorithmKMP) }

// Find implements Matcher. After a full match the scan continues from the
// longest proper border of the pattern, so overlapping occurrences are all
// reported.
func (k KMP) Find(text, pattern []byte) (*types.MatchResult, error) {
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}

	result := types.NewMatchResult(k.Name())
	m := len(pattern)
	if m > len(text) {
		return result, nil
	}

	lps := PrefixTable(pattern)
	j := 0 // length of the pattern prefix matched so far
	for i := 0; i < len(text); {
		switch {
		case text[i] == pattern[j]:
			i++
			j++
			if j == m {
				result.Add(i - m)
				j = lps[m-1]
			}
		case j > 0:
			j = lps[j-1]
		default:
			i++
		}
	}
	return result, nil
}

// PrefixTable computes the prefix function (LPS table) of pattern: entry i
// is the length of the longest proper prefix of pattern[:i+1] that is also a
// suffix of it. Entry 0 is always 0 and 0 <= lps[i] <= i holds throughout.
func PrefixTable(pattern []byte) []int {
	lps := make([]int, len(pattern))

	length := 0 // previous longest prefix-suffix
	for i := 1; i < len(pattern); {
		switch {
		case pattern[i] == pattern[length]:
			length++
			lps[i] = length
			i++
		case length != 0:
			// fall back without advancing i
			length = lps[length-1]
		default:
			lps[i] = 0
			i++
		}
	}
	return lps
}
