package types

import "time"

// Run records a single timed matcher invocation for history reporting.
type Run struct {
	ID         int64         `json:"id"`
	Algorithm  string        `json:"algorithm"`
	TextID     TextID        `json:"text_id"`
	TextLen    int           `json:"text_len"`
	Pattern    string        `json:"pattern"`
	PatternID  PatternID     `json:"pattern_id"`
	Indices    []int         `json:"indices"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// NewRun builds a run record from the inputs and result of one invocation.
func NewRun(text, pattern []byte, result *MatchResult, elapsed time.Duration) *Run {
	indices := []int{}
	algorithm := ""
	if result != nil {
		indices = append(indices, result.Indices...)
		algorithm = result.Algorithm
	}
	return &Run{
		Algorithm:  algorithm,
		TextID:     ComputeTextID(text),
		TextLen:    len(text),
		Pattern:    string(pattern),
		PatternID:  ComputePatternID(pattern),
		Indices:    indices,
		Elapsed:    elapsed,
		RecordedAt: time.Now().UTC(),
	}
}

// Found reports whether the run produced any occurrence.
func (r *Run) Found() bool {
	return len(r.Indices) > 0
}
