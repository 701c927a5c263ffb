package types

// Occurrence is a located match: where the pattern starts in the text, the
// line/column span it covers and a snippet of surrounding context.
type Occurrence struct {
	Index    int // start index, identical to the MatchResult entry
	Location Location
	Snippet  Snippet
}

// Locate resolves every index of result against text. patternLen is the
// length of the searched pattern; contextLines controls snippet size.
func Locate(text []byte, result *MatchResult, patternLen, contextLines int) []*Occurrence {
	if result == nil || !result.Found() {
		return []*Occurrence{}
	}

	lines := NewLineIndex(text)
	occurrences := make([]*Occurrence, 0, len(result.Indices))
	for _, idx := range result.Indices {
		end := idx + patternLen
		occurrences = append(occurrences, &Occurrence{
			Index: idx,
			Location: Location{
				Offset: OffsetSpan{Start: int64(idx), End: int64(end)},
				Source: SourceSpan{
					Start: lines.Position(idx),
					End:   lines.Position(end),
				},
			},
			Snippet: NewSnippet(text, idx, end, contextLines),
		})
	}
	return occurrences
}
