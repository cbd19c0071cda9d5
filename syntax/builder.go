package syntax

import "fmt"

type tokenKey struct {
	kind SyntaxKind
	text string
}

// Builder assembles a green tree from a balanced sequence of StartNode,
// Token and FinishNode calls. Identical tokens are shared.
type Builder struct {
	stack  []frame
	tokens map[tokenKey]*GreenToken
	root   *GreenNode
}

type frame struct {
	kind     SyntaxKind
	children []GreenElement
}

func NewBuilder() *Builder {
	return &Builder{tokens: make(map[tokenKey]*GreenToken)}
}

func (b *Builder) StartNode(kind SyntaxKind) {
	if kind.IsToken() {
		panic(fmt.Sprintf("syntax: StartNode with token kind %v", kind))
	}
	if b.root != nil {
		panic("syntax: StartNode after the root node was finished")
	}
	b.stack = append(b.stack, frame{kind: kind})
}

func (b *Builder) Token(kind SyntaxKind, text string) {
	if len(b.stack) == 0 {
		panic(fmt.Sprintf("syntax: token %v outside of any node", kind))
	}
	key := tokenKey{kind: kind, text: text}
	tok, ok := b.tokens[key]
	if !ok {
		tok = NewGreenToken(kind, text)
		b.tokens[key] = tok
	}
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, tok)
}

func (b *Builder) FinishNode() {
	if len(b.stack) == 0 {
		panic("syntax: FinishNode without matching StartNode")
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	node := NewGreenNode(top.kind, top.children)
	if len(b.stack) == 0 {
		b.root = node
		return
	}
	parent := &b.stack[len(b.stack)-1]
	parent.children = append(parent.children, node)
}

// Depth is the number of currently open nodes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Finish returns the root node. It panics if nodes are still open or no
// node was ever built.
func (b *Builder) Finish() *GreenNode {
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("syntax: %d nodes still open", len(b.stack)))
	}
	if b.root == nil {
		panic("syntax: no root node")
	}
	return b.root
}
