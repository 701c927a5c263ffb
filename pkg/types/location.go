package types

// OffsetSpan is byte range [Start, End) - half-open interval.
type OffsetSpan struct {
	Start int64
	End   int64
}

// Len returns the number of bytes covered by the span.
func (s OffsetSpan) Len() int64 {
	return s.End - s.Start
}

// Overlaps reports whether both spans share at least one byte.
func (s OffsetSpan) Overlaps(other OffsetSpan) bool {
	return s.Start < other.End && other.Start < s.End
}

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int
	Column int
}

// SourceSpan is start-end line:column range.
type SourceSpan struct {
	Start SourcePoint
	End   SourcePoint
}

// Location combines byte offsets and source positions.
type Location struct {
	Offset OffsetSpan
	Source SourceSpan
}
