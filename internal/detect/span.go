package detect

import "fmt"

// Span is a half-open interval [Start, End) of rune offsets into a specific
// text buffer. Offsets are character positions, not byte positions, so a
// span computed here lines up with the indices an external reviewer sees.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan builds a span validated against the buffer it indexes into.
func NewSpan(start, end int, buffer string) (Span, error) {
	if start < 0 || end <= start {
		return Span{}, fmt.Errorf("invalid span [%d, %d)", start, end)
	}
	if n := len([]rune(buffer)); end > n {
		return Span{}, fmt.Errorf("span [%d, %d) exceeds buffer length %d", start, end, n)
	}
	return Span{Start: start, End: end}, nil
}

// Overlaps reports whether s and other share at least one offset.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int { return s.End - s.Start }
