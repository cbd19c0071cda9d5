package syntax

import "github.com/danue1/danube/source"

// SyntaxElement is a *SyntaxNode or a *SyntaxToken.
type SyntaxElement interface {
	Kind() SyntaxKind
	Span() source.Span
	Parent() *SyntaxNode
	Text() string
}

// SyntaxNode is a cursor over a green node that knows its parent and its
// absolute offset. Cursors are created on demand; two cursors for the same
// position compare Equal but are not the same pointer.
type SyntaxNode struct {
	green  *GreenNode
	parent *SyntaxNode
	index  int
	offset int
}

// SyntaxToken is a cursor over a green token.
type SyntaxToken struct {
	green  *GreenToken
	parent *SyntaxNode
	index  int
	offset int
}

func NewRoot(green *GreenNode) *SyntaxNode {
	return &SyntaxNode{green: green, index: -1}
}

func (n *SyntaxNode) Kind() SyntaxKind    { return n.green.kind }
func (n *SyntaxNode) Green() *GreenNode   { return n.green }
func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }
func (n *SyntaxNode) Text() string        { return n.green.Text() }
func (n *SyntaxNode) String() string      { return n.green.Text() }

func (n *SyntaxNode) Span() source.Span {
	return source.NewSpan(n.offset, n.offset+n.green.width)
}

// Equal reports whether both cursors point at the same tree position.
func (n *SyntaxNode) Equal(other *SyntaxNode) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.green == other.green && n.offset == other.offset && n.index == other.index
}

func (n *SyntaxNode) element(i, offset int) SyntaxElement {
	switch g := n.green.children[i].(type) {
	case *GreenNode:
		return &SyntaxNode{green: g, parent: n, index: i, offset: offset}
	case *GreenToken:
		return &SyntaxToken{green: g, parent: n, index: i, offset: offset}
	}
	return nil
}

// childOffset is the absolute offset of the i-th child.
func (n *SyntaxNode) childOffset(i int) int {
	offset := n.offset
	for _, c := range n.green.children[:i] {
		offset += c.Width()
	}
	return offset
}

// ChildrenWithTokens returns every direct child, nodes and tokens, in order.
func (n *SyntaxNode) ChildrenWithTokens() []SyntaxElement {
	out := make([]SyntaxElement, 0, len(n.green.children))
	offset := n.offset
	for i, c := range n.green.children {
		out = append(out, n.element(i, offset))
		offset += c.Width()
	}
	return out
}

// Children returns the direct child nodes, skipping tokens.
func (n *SyntaxNode) Children() []*SyntaxNode {
	var out []*SyntaxNode
	offset := n.offset
	for i, c := range n.green.children {
		if g, ok := c.(*GreenNode); ok {
			out = append(out, &SyntaxNode{green: g, parent: n, index: i, offset: offset})
		}
		offset += c.Width()
	}
	return out
}

func (n *SyntaxNode) FirstChild() *SyntaxNode {
	return n.nodeFrom(0, 1)
}

func (n *SyntaxNode) LastChild() *SyntaxNode {
	return n.nodeFrom(len(n.green.children)-1, -1)
}

// nodeFrom scans children starting at index i in direction step and returns
// the first interior node found.
func (n *SyntaxNode) nodeFrom(i, step int) *SyntaxNode {
	for ; i >= 0 && i < len(n.green.children); i += step {
		if g, ok := n.green.children[i].(*GreenNode); ok {
			return &SyntaxNode{green: g, parent: n, index: i, offset: n.childOffset(i)}
		}
	}
	return nil
}

func (n *SyntaxNode) NextSibling() *SyntaxNode {
	if n.parent == nil {
		return nil
	}
	return n.parent.nodeFrom(n.index+1, 1)
}

func (n *SyntaxNode) PrevSibling() *SyntaxNode {
	if n.parent == nil {
		return nil
	}
	return n.parent.nodeFrom(n.index-1, -1)
}

// FirstToken returns the first leaf under n, or nil for an empty node.
func (n *SyntaxNode) FirstToken() *SyntaxToken {
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *SyntaxToken:
			return c
		case *SyntaxNode:
			if tok := c.FirstToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// LastToken returns the last leaf under n, or nil for an empty node.
func (n *SyntaxNode) LastToken() *SyntaxToken {
	children := n.ChildrenWithTokens()
	for i := len(children) - 1; i >= 0; i-- {
		switch c := children[i].(type) {
		case *SyntaxToken:
			return c
		case *SyntaxNode:
			if tok := c.LastToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// Ancestors returns n followed by its parent chain up to the root.
func (n *SyntaxNode) Ancestors() []*SyntaxNode {
	var out []*SyntaxNode
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// Preorder visits n and its descendant nodes depth-first. Returning false
// from visit skips the children of that node.
func (n *SyntaxNode) Preorder(visit func(*SyntaxNode) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children() {
		c.Preorder(visit)
	}
}

// Descendants returns n and every node below it in preorder.
func (n *SyntaxNode) Descendants() []*SyntaxNode {
	var out []*SyntaxNode
	n.Preorder(func(c *SyntaxNode) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Tokens returns every leaf under n in source order.
func (n *SyntaxNode) Tokens() []*SyntaxToken {
	var out []*SyntaxToken
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *SyntaxToken:
			out = append(out, c)
		case *SyntaxNode:
			out = append(out, c.Tokens()...)
		}
	}
	return out
}

// TokenAtOffset returns the leaf whose span contains offset. An offset at
// the very end of the node yields the last token.
func (n *SyntaxNode) TokenAtOffset(offset int) *SyntaxToken {
	span := n.Span()
	if offset < span.Start || offset > span.End {
		return nil
	}
	if offset == span.End {
		return n.LastToken()
	}
	cur := n
	for cur != nil {
		var next *SyntaxNode
	scan:
		for _, c := range cur.ChildrenWithTokens() {
			s := c.Span()
			if offset < s.Start || offset >= s.End {
				continue
			}
			switch c := c.(type) {
			case *SyntaxToken:
				return c
			case *SyntaxNode:
				next = c
				break scan
			}
		}
		cur = next
	}
	return nil
}

// CoveringNode returns the deepest node whose span contains span.
func (n *SyntaxNode) CoveringNode(span source.Span) *SyntaxNode {
	if !n.Span().ContainsSpan(span) {
		return nil
	}
	cur := n
	for {
		var next *SyntaxNode
		for _, c := range cur.Children() {
			if c.Span().ContainsSpan(span) && !(c.Span().IsEmpty() && !span.IsEmpty()) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// ContainsError reports whether n or any node below it is an Error node.
func (n *SyntaxNode) ContainsError() bool {
	found := false
	n.Preorder(func(c *SyntaxNode) bool {
		if c.Kind() == Error {
			found = true
		}
		return !found
	})
	return found
}

func (t *SyntaxToken) Kind() SyntaxKind    { return t.green.kind }
func (t *SyntaxToken) Green() *GreenToken  { return t.green }
func (t *SyntaxToken) Parent() *SyntaxNode { return t.parent }
func (t *SyntaxToken) Text() string        { return t.green.text }
func (t *SyntaxToken) String() string      { return t.green.text }

func (t *SyntaxToken) Span() source.Span {
	return source.NewSpan(t.offset, t.offset+len(t.green.text))
}

// NextToken returns the following leaf in source order, crossing node
// boundaries.
func (t *SyntaxToken) NextToken() *SyntaxToken {
	parent, index := t.parent, t.index
	for parent != nil {
		children := parent.ChildrenWithTokens()
		for _, c := range children[index+1:] {
			switch c := c.(type) {
			case *SyntaxToken:
				return c
			case *SyntaxNode:
				if tok := c.FirstToken(); tok != nil {
					return tok
				}
			}
		}
		parent, index = parent.parent, parent.index
	}
	return nil
}

// PrevToken returns the preceding leaf in source order.
func (t *SyntaxToken) PrevToken() *SyntaxToken {
	parent, index := t.parent, t.index
	for parent != nil {
		children := parent.ChildrenWithTokens()
		for i := index - 1; i >= 0; i-- {
			switch c := children[i].(type) {
			case *SyntaxToken:
				return c
			case *SyntaxNode:
				if tok := c.LastToken(); tok != nil {
					return tok
				}
			}
		}
		parent, index = parent.parent, parent.index
	}
	return nil
}
