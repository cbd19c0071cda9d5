// Package syntax implements the lossless syntax tree: an immutable green
// tree that owns the text, a cursor-based red view over it with parent and
// offset information, and the builder that assembles green trees.
package syntax

import "strings"

// GreenElement is either a *GreenNode or a *GreenToken.
type GreenElement interface {
	Kind() SyntaxKind
	Width() int
	writeText(sb *strings.Builder)
}

// GreenToken is a leaf: a kind and the exact source text it covers.
type GreenToken struct {
	kind SyntaxKind
	text string
}

func NewGreenToken(kind SyntaxKind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) Kind() SyntaxKind { return t.kind }
func (t *GreenToken) Width() int       { return len(t.text) }
func (t *GreenToken) Text() string     { return t.text }

func (t *GreenToken) writeText(sb *strings.Builder) {
	sb.WriteString(t.text)
}

// GreenNode is an interior node. Its width is the sum of its children's
// widths; it stores no absolute offsets, so identical subtrees can be
// shared between positions.
type GreenNode struct {
	kind     SyntaxKind
	width    int
	children []GreenElement
}

func NewGreenNode(kind SyntaxKind, children []GreenElement) *GreenNode {
	width := 0
	for _, c := range children {
		width += c.Width()
	}
	return &GreenNode{kind: kind, width: width, children: children}
}

func (n *GreenNode) Kind() SyntaxKind { return n.kind }
func (n *GreenNode) Width() int       { return n.width }

// Children returns the node's children. The slice must not be modified.
func (n *GreenNode) Children() []GreenElement {
	return n.children
}

// Text reconstructs the source text covered by the node.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(n.width)
	n.writeText(&sb)
	return sb.String()
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeText(sb)
	}
}
