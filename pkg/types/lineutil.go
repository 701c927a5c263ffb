package types

import "sort"

// LineIndex maps byte offsets to line/column positions in O(log lines).
// Lines and columns are 1-indexed (first line is 1, first column is 1).
type LineIndex struct {
	starts []int // byte offset at which each line begins
	size   int
}

// NewLineIndex records the start offset of every line in content.
func NewLineIndex(content []byte) *LineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, size: len(content)}
}

// Position returns the 1-based line and column of byteOffset. Offsets past
// the end are clamped to the end of content.
func (x *LineIndex) Position(byteOffset int) SourcePoint {
	if byteOffset > x.size {
		byteOffset = x.size
	}
	if byteOffset < 0 {
		byteOffset = 0
	}
	// first line start strictly greater than offset, minus one
	line := sort.SearchInts(x.starts, byteOffset+1) - 1
	return SourcePoint{
		Line:   line + 1,
		Column: byteOffset - x.starts[line] + 1,
	}
}

// Lines returns the number of lines in the indexed content.
func (x *LineIndex) Lines() int {
	return len(x.starts)
}
