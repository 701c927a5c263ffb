package verify

import (
	"math/rand"
	"testing"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceIndices(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    []int
	}{
		{name: "overlap scenario", text: "AABAACAADAABAAABAA", pattern: "AABA", want: []int{0, 9, 13}},
		{name: "overlapping run", text: "AAA", pattern: "AA", want: []int{0, 1}},
		{name: "no match", text: "XYZXYZXYZ", pattern: "ABC", want: []int{}},
		{name: "metacharacters are literal", text: "a.b*c.b*", pattern: ".b*", want: []int{1, 5}},
		{name: "case sensitive", text: "abcABC", pattern: "ABC", want: []int{3}},
		{name: "binary", text: "\x00\xff\x00\xff", pattern: "\xff\x00", want: []int{1}},
		{name: "pattern longer than text", text: "AB", pattern: "ABC", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReferenceIndices([]byte(tt.text), []byte(tt.pattern), DefaultTimeout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferenceIndices_EmptyPattern(t *testing.T) {
	_, err := ReferenceIndices([]byte("abc"), nil, 0)
	assert.ErrorIs(t, err, matcher.ErrEmptyPattern)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]byte("haystack with needle"), []byte("needle")))
	assert.False(t, Contains([]byte("haystack"), []byte("needle")))
	assert.False(t, Contains([]byte("AB"), []byte("ABC")))
	assert.True(t, Contains([]byte("abc"), nil))
}

func TestNonOverlapping(t *testing.T) {
	assert.Equal(t, []int{0}, NonOverlapping([]int{0, 1}, 2))
	assert.Equal(t, []int{0, 2}, NonOverlapping([]int{0, 1, 2}, 2))
	assert.Equal(t, []int{0, 9, 13}, NonOverlapping([]int{0, 9, 13}, 4))
	assert.Equal(t, []int{}, NonOverlapping(nil, 3))
}

func TestCrossCheck_AllAgree(t *testing.T) {
	matchers, err := matcher.NewAll(matcher.Config{Modulus: 17})
	require.NoError(t, err)

	report, err := CrossCheck([]byte("ABABCABCABC"), []byte("ABC"), matchers)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.True(t, report.Found)
	assert.Equal(t, []int{2, 5, 8}, report.Reference)
	require.Len(t, report.Verdicts, 4)
	for _, v := range report.Verdicts {
		assert.Equal(t, []int{2, 5, 8}, v.Got, v.Algorithm)
	}
	assert.Empty(t, report.Disagreements())
}

func TestCrossCheck_BoyerMooreAsymmetry(t *testing.T) {
	matchers, err := matcher.NewAll(matcher.Config{Modulus: 17})
	require.NoError(t, err)

	report, err := CrossCheck([]byte("AAA"), []byte("AA"), matchers)
	require.NoError(t, err)
	require.True(t, report.OK())

	byName := map[string]Verdict{}
	for _, v := range report.Verdicts {
		byName[v.Algorithm] = v
	}
	assert.Equal(t, []int{0, 1}, byName["kmp"].Got)
	assert.Equal(t, []int{0}, byName["boyer-moore"].Got)
	assert.Equal(t, []int{0}, byName["boyer-moore"].Want)
}

func TestCrossCheck_NoMatch(t *testing.T) {
	matchers, err := matcher.NewAll(matcher.Config{Modulus: 17})
	require.NoError(t, err)

	report, err := CrossCheck([]byte("XYZXYZXYZ"), []byte("ABC"), matchers)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.False(t, report.Found)
	for _, v := range report.Verdicts {
		assert.Empty(t, v.Got, v.Algorithm)
	}
}

// brokenMatcher claims a match at index 0 for every input.
type brokenMatcher struct{}

func (brokenMatcher) Name() string { return "naive" }

func (brokenMatcher) Find(text, pattern []byte) (*types.MatchResult, error) {
	r := types.NewMatchResult("naive")
	r.Add(0)
	return r, nil
}

func TestCrossCheck_DetectsDisagreement(t *testing.T) {
	report, err := CrossCheck([]byte("XYZ"), []byte("ABC"), []matcher.Matcher{brokenMatcher{}})
	require.NoError(t, err)

	assert.False(t, report.OK())
	require.Len(t, report.Disagreements(), 1)
	assert.Equal(t, []int{0}, report.Disagreements()[0].Got)
}

func TestCrossCheck_PropagatesMatcherError(t *testing.T) {
	_, err := CrossCheck([]byte("abc"), nil, []matcher.Matcher{matcher.KMP{}})
	assert.ErrorIs(t, err, matcher.ErrEmptyPattern)
}

func TestCrossCheck_Randomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	matchers, err := matcher.NewAll(matcher.Config{Modulus: 9})
	require.NoError(t, err)

	for n := 0; n < 200; n++ {
		text := make([]byte, rng.Intn(60))
		for i := range text {
			text[i] = "ab"[rng.Intn(2)]
		}
		pattern := make([]byte, 1+rng.Intn(4))
		for i := range pattern {
			pattern[i] = "ab"[rng.Intn(2)]
		}

		report, err := CrossCheck(text, pattern, matchers)
		require.NoError(t, err)
		assert.True(t, report.OK(), "text %q pattern %q: %+v", text, pattern, report.Disagreements())
	}
}
