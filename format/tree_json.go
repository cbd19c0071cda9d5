package format

import (
	"encoding/json"
	"io"

	"github.com/danue1/danube/source"
	"github.com/danue1/danube/syntax"
)

// TreeJSONEncoder writes a syntax tree as nested JSON objects. Token text
// is included verbatim, so concatenating the token leaves in order yields
// the input again.
type TreeJSONEncoder struct {
	w      io.Writer
	lines  *source.LineIndex
	trivia bool
}

// NewTreeJSONEncoder returns an encoder for trees parsed from text. Trivia
// leaves are included.
func NewTreeJSONEncoder(w io.Writer, text string) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w, lines: source.NewLineIndex(text), trivia: true}
}

// WithTrivia controls whether whitespace and comment leaves are written.
func (e *TreeJSONEncoder) WithTrivia(on bool) *TreeJSONEncoder {
	e.trivia = on
	return e
}

func (e *TreeJSONEncoder) Encode(root *syntax.SyntaxNode) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalText(root *syntax.SyntaxNode) ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(root), "", "  ")
}

type treeJSONNode struct {
	Kind     string          `json:"kind"`
	Span     treeJSONSpan    `json:"span"`
	Token    *string         `json:"token,omitempty"`
	Children []*treeJSONNode `json:"children,omitempty"`
}

type treeJSONSpan struct {
	Start treeJSONPosition `json:"start"`
	End   treeJSONPosition `json:"end"`
}

type treeJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *TreeJSONEncoder) span(s source.Span) treeJSONSpan {
	return treeJSONSpan{Start: e.position(s.Start), End: e.position(s.End)}
}

func (e *TreeJSONEncoder) position(offset int) treeJSONPosition {
	p := e.lines.Position(offset)
	return treeJSONPosition{Offset: offset, Line: p.Line, Column: p.Column}
}

func (e *TreeJSONEncoder) nodeToJSON(n *syntax.SyntaxNode) *treeJSONNode {
	jn := &treeJSONNode{
		Kind: n.Kind().String(),
		Span: e.span(n.Span()),
	}
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *syntax.SyntaxNode:
			jn.Children = append(jn.Children, e.nodeToJSON(c))
		case *syntax.SyntaxToken:
			if !e.trivia && c.Kind().IsTrivia() {
				continue
			}
			text := c.Text()
			jn.Children = append(jn.Children, &treeJSONNode{
				Kind:  c.Kind().String(),
				Span:  e.span(c.Span()),
				Token: &text,
			})
		}
	}
	return jn
}
