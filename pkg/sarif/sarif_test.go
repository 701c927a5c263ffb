package sarif

import (
	"encoding/json"
	"testing"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"github.com/praetorian-inc/needle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locate(t *testing.T, text, pattern string) []*types.Occurrence {
	t.Helper()
	res, err := matcher.FindString(matcher.KMP{}, text, pattern)
	require.NoError(t, err)
	return types.Locate([]byte(text), res, len(pattern), 0)
}

func TestNewReport(t *testing.T) {
	report := NewReport()

	assert.Equal(t, SchemaURI, report.Schema)
	assert.Equal(t, Version, report.Version)
	assert.NotNil(t, report.Runs)
	assert.Len(t, report.Runs, 1)
	assert.Equal(t, "needle", report.Runs[0].Tool.Driver.Name)
	assert.Equal(t, ToolVersion, report.Runs[0].Tool.Driver.Version)
}

func TestAddRule(t *testing.T) {
	report := NewReport()

	report.AddRule(matcher.AlgorithmKMP)

	require.Len(t, report.Runs[0].Tool.Driver.Rules, 1)
	rule := report.Runs[0].Tool.Driver.Rules[0]
	assert.Equal(t, "needle.kmp", rule.ID)
	assert.Equal(t, "kmp", rule.Name)
	assert.Equal(t, matcher.AlgorithmKMP.Description(), rule.ShortDescription.Text)
}

func TestAddRule_Idempotent(t *testing.T) {
	report := NewReport()

	report.AddRule(matcher.AlgorithmBoyerMoore)
	report.AddRule(matcher.AlgorithmBoyerMoore)
	report.AddRule(matcher.AlgorithmNaive)

	assert.Len(t, report.Runs[0].Tool.Driver.Rules, 2)
}

func TestAddResult(t *testing.T) {
	report := NewReport()
	report.AddRule(matcher.AlgorithmKMP)

	occs := locate(t, "abc\nxx TEST yy", "TEST")
	require.Len(t, occs, 1)

	report.AddResult(matcher.AlgorithmKMP, "TEST", occs[0], "/path/to/input.txt")

	require.Len(t, report.Runs[0].Results, 1)
	result := report.Runs[0].Results[0]
	assert.Equal(t, "needle.kmp", result.RuleID)
	assert.Equal(t, "note", result.Level)
	assert.Equal(t, `Pattern "TEST" found at index 7`, result.Message.Text)
	require.Len(t, result.Locations, 1)

	location := result.Locations[0].PhysicalLocation
	assert.Equal(t, "file:///path/to/input.txt", location.ArtifactLocation.URI)
	assert.Equal(t, 2, location.Region.StartLine)
	assert.Equal(t, 4, location.Region.StartColumn)
	assert.Equal(t, 2, location.Region.EndLine)
	assert.Equal(t, 8, location.Region.EndColumn)
	assert.Equal(t, "TEST", location.Region.Snippet.Text)
}

func TestToJSON(t *testing.T) {
	report := NewReport()
	report.AddRule(matcher.AlgorithmNaive)

	for _, occ := range locate(t, "ABABCABCABC", "ABC") {
		report.AddResult(matcher.AlgorithmNaive, "ABC", occ, "")
	}

	jsonBytes, err := report.ToJSON()
	require.NoError(t, err)

	var parsed map[string]interface{}
	err = json.Unmarshal(jsonBytes, &parsed)
	require.NoError(t, err)

	assert.Equal(t, SchemaURI, parsed["$schema"])
	assert.Equal(t, Version, parsed["version"])

	runs := parsed["runs"].([]interface{})
	results := runs[0].(map[string]interface{})["results"].([]interface{})
	assert.Len(t, results, 3)
}

func TestEmptyReportHasNoNullArrays(t *testing.T) {
	jsonBytes, err := NewReport().ToJSON()
	require.NoError(t, err)

	assert.Contains(t, string(jsonBytes), `"results": []`)
	assert.NotContains(t, string(jsonBytes), "null")
}

func TestArtifactURIs(t *testing.T) {
	occ := locate(t, "needle", "needle")[0]

	tests := []struct {
		path string
		want string
	}{
		{"/absolute/path/file.txt", "file:///absolute/path/file.txt"},
		{"relative/path/file.txt", "relative/path/file.txt"},
		{"", "stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			report := NewReport()
			report.AddResult(matcher.AlgorithmKMP, "needle", occ, tt.path)
			assert.Equal(t, tt.want, report.Runs[0].Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
		})
	}
}
