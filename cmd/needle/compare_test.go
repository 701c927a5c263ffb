package main

import (
	"encoding/json"
	"testing"

	"github.com/praetorian-inc/needle/pkg/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCommand_Agreement(t *testing.T) {
	stdout, _, err := execute(t, newCompareCmd(), "",
		"--text", "AAAA", "--pattern", "AA", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Reference: [0 1 2]")
	assert.Contains(t, stdout, "boyer-moore")
	assert.Contains(t, stdout, "[0 2]")
	assert.NotContains(t, stdout, "MISMATCH")
}

func TestCompareCommand_NotFound(t *testing.T) {
	stdout, _, err := execute(t, newCompareCmd(), "",
		"--text", "XYZXYZXYZ", "--pattern", "ABC", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reference: []")
	assert.Contains(t, stdout, "Pattern not found")
}

func TestCompareCommand_CollidingModulus(t *testing.T) {
	// "AB" and "BA" share a hash modulo 9
	stdout, _, err := execute(t, newCompareCmd(), "",
		"--text", "BABA", "--pattern", "AB", "--modulus", "9", "--format", "json")
	require.NoError(t, err)

	var report verify.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.OK())
	assert.Equal(t, []int{1}, report.Reference)
	assert.Len(t, report.Verdicts, 4)
}

func TestCompareCommand_LineInput(t *testing.T) {
	stdout, _, err := execute(t, newCompareCmd(), "ABAAABCHDBSHJBABCCJDCABDCDHCAJBCH\nABC\n", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reference: [4 14]")
}

func TestCompareCommand_EmptyPattern(t *testing.T) {
	_, _, err := execute(t, newCompareCmd(), "", "--text", "abc", "--pattern", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty pattern")
}
