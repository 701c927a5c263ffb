package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/sarif"
	"github.com/praetorian-inc/needle/pkg/store"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCommand_LiteralText(t *testing.T) {
	stdout, _, err := execute(t, newFindCmd(), "",
		"--text", "AABAACAADAABAAABAA", "--pattern", "AABA", "--color", "never")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Pattern found at index 0 (line 1, column 1)",
		"Pattern found at index 9 (line 1, column 10)",
		"Pattern found at index 13 (line 1, column 14)",
	}, strings.Split(strings.TrimSpace(stdout), "\n"))
}

func TestFindCommand_NotFound(t *testing.T) {
	for _, algo := range matcher.Algorithms() {
		t.Run(string(algo), func(t *testing.T) {
			stdout, _, err := execute(t, newFindCmd(), "",
				"--text", "XYZXYZXYZ", "--pattern", "ABC", "--algorithm", string(algo), "--color", "never")
			require.NoError(t, err)
			assert.Equal(t, "Pattern not found\n", stdout)
		})
	}
}

func TestFindCommand_AlgorithmAliases(t *testing.T) {
	for _, name := range []string{"rk", "rabin_karp", "BM", "brute"} {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := execute(t, newFindCmd(), "",
				"--text", "ABABCABCABC", "--pattern", "ABC", "--algorithm", name, "--color", "never")
			require.NoError(t, err)
			assert.Equal(t, 3, strings.Count(stdout, "Pattern found at index"))
		})
	}
}

func TestFindCommand_FileWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta needle gamma\ndelta\n"), 0o644))

	stdout, _, err := execute(t, newFindCmd(), "",
		path, "--pattern", "needle", "--context-lines", "1", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Pattern found at index 11 (line 2, column 6)")
	assert.Contains(t, stdout, "    alpha\n")
	assert.Contains(t, stdout, "    beta needle gamma\n")
	assert.Contains(t, stdout, "    delta\n")
}

func TestFindCommand_LongPatternWithContext(t *testing.T) {
	pattern := strings.Repeat("P", 157)
	text := strings.Repeat("x", 20) + pattern + strings.Repeat("y", 20)

	stdout, _, err := execute(t, newFindCmd(), "",
		"--text", text, "--pattern", pattern, "--context-lines", "1", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Pattern found at index 20 (line 1, column 21)")
	assert.Contains(t, stdout, "    ..."+strings.Repeat("P", 154)+"...\n")
}

func TestFindCommand_Stdin(t *testing.T) {
	stdout, _, err := execute(t, newFindCmd(), "THIS IS A TEST TEXT",
		"-", "--pattern", "TEST", "--algorithm", "boyer-moore", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pattern found at index 10")
}

func TestFindCommand_LineInput(t *testing.T) {
	stdout, _, err := execute(t, newFindCmd(), "ABABCABCABC\nABC\n", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Pattern found at index 2")
	assert.Contains(t, stdout, "Pattern found at index 5")
	assert.Contains(t, stdout, "Pattern found at index 8")
}

func TestFindCommand_LineInputWithPatternFlag(t *testing.T) {
	stdout, _, err := execute(t, newFindCmd(), "needle in a haystack\r\n", "--pattern", "hay", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pattern found at index 12")
}

func TestFindCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, newFindCmd(), "",
		"--text", "one\ntwo one", "--pattern", "one", "--format", "json")
	require.NoError(t, err)

	var out findOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "kmp", out.Algorithm)
	assert.Equal(t, "one", out.Pattern)
	assert.Equal(t, types.ComputeTextID([]byte("one\ntwo one")), out.TextID)
	assert.Equal(t, 11, out.TextLen)
	assert.Equal(t, []int{0, 8}, out.Indices)
	require.Len(t, out.Occurrences, 2)
	assert.Equal(t, 2, out.Occurrences[1].Line)
	assert.Equal(t, 5, out.Occurrences[1].Column)
	assert.Equal(t, "one", out.Occurrences[1].Match)
}

func TestFindCommand_JSONNotFound(t *testing.T) {
	stdout, _, err := execute(t, newFindCmd(), "", "--text", "abc", "--pattern", "abcd", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"indices": []`)
	assert.Contains(t, stdout, `"occurrences": []`)
}

func TestFindCommand_SARIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("ABABCABCABC"), 0o644))

	stdout, _, err := execute(t, newFindCmd(), "",
		path, "--pattern", "ABC", "--algorithm", "naive", "--format", "sarif")
	require.NoError(t, err)

	var report sarif.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Runs, 1)
	assert.Equal(t, "needle.naive", report.Runs[0].Tool.Driver.Rules[0].ID)
	require.Len(t, report.Runs[0].Results, 3)
	assert.Equal(t, "file://"+filepath.ToSlash(path), report.Runs[0].Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestFindCommand_Record(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, newFindCmd(), "",
		"--text", "AABAACAADAABAAABAA", "--pattern", "AABA",
		"--algorithm", "rabin-karp", "--modulus", "17", "--record", dbPath, "--color", "never")
	require.NoError(t, err)

	s, err := store.New(store.Config{Path: dbPath})
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "rabin-karp", runs[0].Algorithm)
	assert.Equal(t, []int{0, 9, 13}, runs[0].Indices)
	assert.Equal(t, 18, runs[0].TextLen)
}

func TestFindCommand_RecordSameTextTwice(t *testing.T) {
	defer func() { verbose = false }()
	verbose = true
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, stderr, err := execute(t, newFindCmd(), "", "--text", "ABCABC", "--pattern", "BC", "--record", dbPath, "--color", "never")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "text seen before")

	_, stderr, err = execute(t, newFindCmd(), "", "--text", "ABCABC", "--pattern", "CA", "--record", dbPath, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stderr, "text seen before")
	assert.Contains(t, stderr, types.ComputeTextID([]byte("ABCABC")).Hex())
}

func TestFindCommand_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"empty pattern", []string{"--text", "abc", "--pattern", ""}, "empty pattern"},
		{"missing pattern", []string{"--text", "abc"}, "--pattern is required"},
		{"text and file", []string{path, "--text", "abc", "--pattern", "a"}, "mutually exclusive"},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope"), "--pattern", "a"}, "reading file"},
		{"unknown algorithm", []string{"--text", "abc", "--pattern", "a", "--algorithm", "z"}, "unknown algorithm"},
		{"zero modulus", []string{"--text", "abc", "--pattern", "a", "--algorithm", "rk", "--modulus", "0"}, "modulus"},
		{"unknown format", []string{"--text", "abc", "--pattern", "a", "--format", "xml"}, "unknown output format"},
		{"unknown color", []string{"--text", "abc", "--pattern", "a", "--color", "rainbow"}, "unknown color mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, newFindCmd(), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindCommand_EmptyPatternIsInvalidArgument(t *testing.T) {
	_, _, err := execute(t, newFindCmd(), "", "--text", "abc", "--pattern", "")
	assert.ErrorIs(t, err, matcher.ErrEmptyPattern)
	assert.ErrorIs(t, err, matcher.ErrInvalidArgument)
}
