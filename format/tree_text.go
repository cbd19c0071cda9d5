package format

import (
	"io"

	"github.com/danue1/danube/syntax"
)

// TreeTextEncoder writes the indented Kind@range listing of a tree, or its
// compact S-expression shape.
type TreeTextEncoder struct {
	w       io.Writer
	compact bool
}

func NewTreeTextEncoder(w io.Writer) *TreeTextEncoder {
	return &TreeTextEncoder{w: w}
}

// Compact switches to the one-line shape without trivia.
func (e *TreeTextEncoder) Compact(on bool) *TreeTextEncoder {
	e.compact = on
	return e
}

func (e *TreeTextEncoder) Encode(root *syntax.SyntaxNode) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeTextEncoder) MarshalText(root *syntax.SyntaxNode) ([]byte, error) {
	if e.compact {
		return []byte(syntax.Shape(root) + "\n"), nil
	}
	return []byte(syntax.Debug(root)), nil
}
