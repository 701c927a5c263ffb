package matcher

import "github.com/praetorian-inc/needle/pkg/types"

// BoyerMoore slides a window left to right and compares it right to left,
// skipping ahead with the bad-character rule on mismatch. No good-suffix
// rule is applied.
//
// After a full match the window advances by the pattern length, so
// occurrences that overlap an earlier one are NOT reported. For "AA" in
// "AAA" Boyer-Moore returns [0] where the other matchers return [0 1].
type BoyerMoore struct{}

// Name implements Matcher.
func (BoyerMoore) Name() string { return string(AlgorithmBoyerMoore) }

// Find implements Matcher.
func (b BoyerMoore) Find(text, pattern []byte) (*types.MatchResult, error) {
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}

	result := types.NewMatchResult(b.Name())
	m, n := len(pattern), len(text)
	if m > n {
		return result, nil
	}

	table := NewBadCharTable(pattern)
	for s := 0; s <= n-m; {
		j := m - 1
		for j >= 0 && pattern[j] == text[s+j] {
			j--
		}

		if j < 0 {
			result.Add(s)
			s += m
			continue
		}

		// Align the mismatched text byte with its last occurrence in the
		// pattern, always moving at least one position.
		s += max(1, j-table.Last(text[s+j]))
	}
	return result, nil
}

// BadCharTable maps every byte value to the index of its rightmost
// occurrence in a pattern, or -1 when the byte does not occur.
type BadCharTable [256]int

// NewBadCharTable builds the bad-character table for pattern.
func NewBadCharTable(pattern []byte) *BadCharTable {
	var t BadCharTable
	for i := range t {
		t[i] = -1
	}
	// later occurrences overwrite earlier ones
	for i, c := range pattern {
		t[c] = i
	}
	return &t
}

// Last returns the rightmost index of c in the pattern, or -1.
func (t *BadCharTable) Last(c byte) int {
	return t[c]
}

// Symbols returns the distinct bytes present in the pattern with their
// rightmost index.
func (t *BadCharTable) Symbols() map[byte]int {
	symbols := make(map[byte]int)
	for c, idx := range t {
		if idx >= 0 {
			symbols[byte(c)] = idx
		}
	}
	return symbols
}
