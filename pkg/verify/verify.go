// Package verify cross-checks matchers against independent reference
// implementations.
//
// Positions come from a regexp2 lookahead, (?=P), which matches the empty
// string before every occurrence of P and therefore reports overlapping
// occurrences. Presence is confirmed separately with an Aho-Corasick
// automaton over a single-entry dictionary. Neither oracle shares code with
// the matchers under test.
package verify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
)

// DefaultTimeout bounds a single reference regexp evaluation.
const DefaultTimeout = 5 * time.Second

// ErrOracleDisagreement is returned when the two reference oracles disagree
// on whether the pattern is present at all.
var ErrOracleDisagreement = errors.New("reference oracles disagree")

// Verdict compares one matcher's result with the expected indices.
type Verdict struct {
	Algorithm string `json:"algorithm"`
	Got       []int  `json:"got"`
	Want      []int  `json:"want"`
	Agree     bool   `json:"agree"`
}

// Report is the outcome of a cross-check.
type Report struct {
	Pattern   string    `json:"pattern"`
	TextLen   int       `json:"text_len"`
	Reference []int     `json:"reference"`
	Found     bool      `json:"found"`
	Verdicts  []Verdict `json:"verdicts"`
}

// OK reports whether every matcher agreed with the reference.
func (r *Report) OK() bool {
	for _, v := range r.Verdicts {
		if !v.Agree {
			return false
		}
	}
	return true
}

// Disagreements returns the verdicts that did not agree.
func (r *Report) Disagreements() []Verdict {
	var out []Verdict
	for _, v := range r.Verdicts {
		if !v.Agree {
			out = append(out, v)
		}
	}
	return out
}

// ReferenceIndices returns every (overlapping) start index of pattern in
// text using regexp2. Each byte is lifted to the rune of the same value, so
// rune offsets equal byte offsets and arbitrary binary input is supported.
func ReferenceIndices(text, pattern []byte, timeout time.Duration) ([]int, error) {
	if len(pattern) == 0 {
		return nil, matcher.ErrEmptyPattern
	}

	var expr strings.Builder
	expr.WriteString("(?=")
	for _, b := range pattern {
		fmt.Fprintf(&expr, `\x%02X`, b)
	}
	expr.WriteString(")")

	re, err := regexp2.Compile(expr.String(), regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling reference expression: %w", err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	runes := make([]rune, len(text))
	for i, b := range text {
		runes[i] = rune(b)
	}

	indices := []int{}
	m, err := re.FindRunesMatch(runes)
	for m != nil {
		indices = append(indices, m.Index)
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluating reference expression: %w", err)
	}
	return indices, nil
}

// Contains reports whether pattern occurs in text using Aho-Corasick.
func Contains(text, pattern []byte) bool {
	if len(pattern) == 0 {
		return true
	}
	ac := ahocorasick.NewMatcher([][]byte{pattern})
	return len(ac.Match(text)) > 0
}

// NonOverlapping keeps the leftmost occurrences that do not overlap an
// occurrence already kept. This is the set a matcher that resumes after each
// full match must report.
func NonOverlapping(indices []int, patternLen int) []int {
	kept := []int{}
	var last *types.OffsetSpan
	for _, idx := range indices {
		span := types.OffsetSpan{Start: int64(idx), End: int64(idx + patternLen)}
		if last != nil && span.Overlaps(*last) {
			continue
		}
		kept = append(kept, idx)
		last = &span
	}
	return kept
}

// CrossCheck runs every matcher and compares it with the reference. Matchers
// whose algorithm does not report overlapping occurrences are compared with
// NonOverlapping(reference).
func CrossCheck(text, pattern []byte, matchers []matcher.Matcher) (*Report, error) {
	reference, err := ReferenceIndices(text, pattern, DefaultTimeout)
	if err != nil {
		return nil, err
	}

	found := Contains(text, pattern)
	if found != (len(reference) > 0) {
		return nil, fmt.Errorf("%w: aho-corasick found=%t, regexp found %d occurrences", ErrOracleDisagreement, found, len(reference))
	}

	report := &Report{
		Pattern:   string(pattern),
		TextLen:   len(text),
		Reference: reference,
		Found:     found,
		Verdicts:  make([]Verdict, 0, len(matchers)),
	}

	for _, m := range matchers {
		result, err := m.Find(text, pattern)
		if err != nil {
			return nil, fmt.Errorf("running %s: %w", m.Name(), err)
		}

		want := reference
		if !matcher.Algorithm(m.Name()).Overlapping() {
			want = NonOverlapping(reference, len(pattern))
		}

		report.Verdicts = append(report.Verdicts, Verdict{
			Algorithm: m.Name(),
			Got:       result.Indices,
			Want:      want,
			Agree:     types.EqualIndices(result.Indices, want),
		})
	}

	return report, nil
}
