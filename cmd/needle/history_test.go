package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedHistory records three runs: two over "AAAA" and one over "BBBB".
func seedHistory(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	for _, args := range [][]string{
		{"--text", "AAAA", "--pattern", "AA", "--algorithm", "kmp"},
		{"--text", "AAAA", "--pattern", "AA", "--algorithm", "boyer-moore"},
		{"--text", "BBBB", "--pattern", "B", "--algorithm", "naive"},
	} {
		args = append(args, "--record", dbPath, "--color", "never")
		_, _, err := execute(t, newFindCmd(), "", args...)
		require.NoError(t, err)
	}
	return dbPath
}

func TestHistoryCommand_Human(t *testing.T) {
	dbPath := seedHistory(t)

	stdout, _, err := execute(t, newHistoryCmd(), "", "--db", dbPath, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "History: "+dbPath)
	assert.Contains(t, stdout, "Total runs: 3")
	assert.Contains(t, stdout, "ALGORITHM")
	assert.Contains(t, stdout, "boyer-moore")
	assert.Contains(t, stdout, types.ComputeTextID([]byte("BBBB")).Short())
}

func TestHistoryCommand_JSON(t *testing.T) {
	dbPath := seedHistory(t)

	stdout, _, err := execute(t, newHistoryCmd(), "", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var runs []*types.Run
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 3)
	assert.Equal(t, "kmp", runs[0].Algorithm)
	assert.Equal(t, []int{0, 1, 2}, runs[0].Indices)
	assert.Equal(t, []int{0, 2}, runs[1].Indices)
	assert.Equal(t, 4, runs[2].TextLen)
}

func TestHistoryCommand_Filters(t *testing.T) {
	dbPath := seedHistory(t)

	stdout, _, err := execute(t, newHistoryCmd(), "", "--db", dbPath, "--pattern", "B", "--format", "json")
	require.NoError(t, err)
	var runs []*types.Run
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "naive", runs[0].Algorithm)

	textFile := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("AAAA"), 0o644))

	stdout, _, err = execute(t, newHistoryCmd(), "", "--db", dbPath, "--file", textFile, "--format", "json")
	require.NoError(t, err)
	runs = nil
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	assert.Len(t, runs, 2)

	stdout, _, err = execute(t, newHistoryCmd(), "", "--db", dbPath, "--file", textFile, "--pattern", "B", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)
}

func TestHistoryCommand_NotFoundRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	_, _, err := execute(t, newFindCmd(), "", "--text", "XYZXYZ", "--pattern", "ABC", "--record", dbPath, "--color", "never")
	require.NoError(t, err)

	stdout, _, err := execute(t, newHistoryCmd(), "", "--db", dbPath, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total runs: 1")
	assert.Regexp(t, `"ABC"\s+none\s+\d+`, stdout)
}

func TestHistoryCommand_Errors(t *testing.T) {
	_, _, err := execute(t, newHistoryCmd(), "", "--db", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history database not found")

	_, _, err = execute(t, newHistoryCmd(), "", "--db", ":memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in-memory")
}
