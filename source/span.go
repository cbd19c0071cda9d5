// Package source holds byte spans and line/column mapping shared by every
// layer of the front end.
package source

import "fmt"

// Span is a half-open byte range [Start, End) into a source buffer.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func NewSpan(start, end int) Span {
	if start > end {
		panic(fmt.Sprintf("source: invalid span %d..%d", start, end))
	}
	return Span{Start: start, End: end}
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset lies inside the span. An empty span
// contains its own start offset.
func (s Span) Contains(offset int) bool {
	if s.IsEmpty() {
		return offset == s.Start
	}
	return offset >= s.Start && offset < s.End
}

// ContainsSpan reports whether other lies completely inside s.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
