package source

import (
	"fmt"
	"sort"
)

// Position is a 1-based line and column. Columns count bytes, not runes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps byte offsets to positions. LF and CRLF both end a line;
// the CR belongs to the line it terminates.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// Position returns the position of offset, clamping out-of-range offsets to
// the buffer bounds.
func (li *LineIndex) Position(offset int) Position {
	offset = max(0, min(offset, len(li.text)))
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	return Position{Line: line + 1, Column: offset - li.starts[line] + 1}
}

// Offset is the inverse of Position. It returns -1 for lines that do not
// exist; columns past the end of a line clamp to the line end.
func (li *LineIndex) Offset(line, column int) int {
	if line < 1 || line > len(li.starts) {
		return -1
	}
	start := li.starts[line-1]
	end := li.lineEnd(line - 1)
	return max(start, min(start+column-1, end))
}

// LineText returns the text of line without its terminator.
func (li *LineIndex) LineText(line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	return li.text[li.starts[line-1]:li.lineEnd(line-1)]
}

func (li *LineIndex) lineEnd(i int) int {
	end := len(li.text)
	if i+1 < len(li.starts) {
		end = li.starts[i+1] - 1
	}
	if end > li.starts[i] && li.text[end-1] == '\r' {
		end--
	}
	return end
}
