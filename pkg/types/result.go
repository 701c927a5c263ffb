package types

// MatchResult is the outcome of one matcher invocation: the start index of
// every occurrence of the pattern in the text, in increasing order.
//
// An empty result is the normal representation of "pattern absent"; it is
// never reported as an error.
type MatchResult struct {
	Algorithm string `json:"algorithm"`
	Indices   []int  `json:"indices"`
}

// NewMatchResult returns an empty result for algorithm. Indices is non-nil so
// JSON output renders [] rather than null.
func NewMatchResult(algorithm string) *MatchResult {
	return &MatchResult{
		Algorithm: algorithm,
		Indices:   []int{},
	}
}

// Add records an occurrence at index. Callers add indices in increasing order.
func (r *MatchResult) Add(index int) {
	r.Indices = append(r.Indices, index)
}

// Found reports whether at least one occurrence was recorded.
func (r *MatchResult) Found() bool {
	return len(r.Indices) > 0
}

// Count returns the number of occurrences.
func (r *MatchResult) Count() int {
	return len(r.Indices)
}

// EqualIndices compares two index sequences element-wise. A nil slice equals
// an empty one.
func EqualIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
