package types

// Snippet contains context around an occurrence.
type Snippet struct {
	Before   []byte // bytes before the occurrence
	Matching []byte // the occurrence itself
	After    []byte // bytes after the occurrence
}

// NewSnippet copies the occurrence at [start, end) out of content together
// with up to lines full lines of context on each side. The returned slices
// never alias content. Out-of-range offsets yield an empty snippet.
func NewSnippet(content []byte, start, end, lines int) Snippet {
	if start < 0 || end > len(content) || start > end {
		return Snippet{}
	}

	s := Snippet{Matching: append([]byte{}, content[start:end]...)}
	if lines <= 0 {
		return s
	}
	if b := contextBefore(content, start, lines); len(b) > 0 {
		s.Before = append([]byte{}, b...)
	}
	if a := contextAfter(content, end, lines); len(a) > 0 {
		s.After = append([]byte{}, a...)
	}
	return s
}

// contextBefore walks backward from start until it has crossed lines
// newlines, returning the text from the beginning of that line to start.
// The partial line holding the occurrence always counts as context.
func contextBefore(content []byte, start, lines int) []byte {
	if start == 0 {
		return nil
	}

	seen := 0
	for pos := start - 1; pos >= 0; pos-- {
		if content[pos] != '\n' {
			continue
		}
		seen++
		if seen == lines+1 {
			return content[pos+1 : start]
		}
	}
	return content[:start]
}

// contextAfter returns the rest of the occurrence's line plus up to lines
// following lines, excluding the final newline.
func contextAfter(content []byte, end, lines int) []byte {
	if end >= len(content) {
		return nil
	}

	seen := 0
	for pos := end; pos < len(content); pos++ {
		if content[pos] != '\n' {
			continue
		}
		seen++
		if seen == lines+1 {
			return content[end:pos]
		}
	}
	return content[end:]
}
