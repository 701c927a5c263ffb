package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var lineColumnTests = []struct {
	name       string
	content    []byte
	byteOffset int
	wantLine   int
	wantColumn int
}{
	{name: "empty content at offset 0", content: []byte{}, byteOffset: 0, wantLine: 1, wantColumn: 1},
	{name: "single line at offset 2", content: []byte("hello"), byteOffset: 2, wantLine: 1, wantColumn: 3},
	{name: "multi-line at offset 7", content: []byte("hello\nworld"), byteOffset: 7, wantLine: 2, wantColumn: 2},
	{name: "offset at newline", content: []byte("hello\nworld"), byteOffset: 5, wantLine: 1, wantColumn: 6},
	{name: "offset beyond content length", content: []byte("hello"), byteOffset: 100, wantLine: 1, wantColumn: 6},
	{name: "offset at start of second line", content: []byte("hello\nworld"), byteOffset: 6, wantLine: 2, wantColumn: 1},
	{name: "multiple newlines", content: []byte("line1\nline2\nline3"), byteOffset: 12, wantLine: 3, wantColumn: 1},
	{name: "trailing newline", content: []byte("a\n"), byteOffset: 2, wantLine: 2, wantColumn: 1},
	{name: "blank lines", content: []byte("\n\n\nx"), byteOffset: 3, wantLine: 4, wantColumn: 1},
}

func TestLineIndex_Position(t *testing.T) {
	for _, tt := range lineColumnTests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLineIndex(tt.content).Position(tt.byteOffset)
			assert.Equal(t, SourcePoint{Line: tt.wantLine, Column: tt.wantColumn}, got)
		})
	}
}

func TestLineIndex_EveryOffset(t *testing.T) {
	content := []byte("first\n\nthird line\nfourth\n")
	index := NewLineIndex(content)
	assert.Equal(t, 5, index.Lines())

	line, column := 1, 1
	for offset := 0; offset <= len(content); offset++ {
		assert.Equal(t, SourcePoint{Line: line, Column: column}, index.Position(offset), "offset %d", offset)
		if offset < len(content) && content[offset] == '\n' {
			line, column = line+1, 1
		} else {
			column++
		}
	}
}

func TestLineIndex_NegativeOffset(t *testing.T) {
	got := NewLineIndex([]byte("abc")).Position(-4)
	assert.Equal(t, SourcePoint{Line: 1, Column: 1}, got)
}
