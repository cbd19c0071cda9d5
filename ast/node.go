// Package ast is a typed view over the syntax tree. Every production has a
// wrapper struct holding a *syntax.SyntaxNode; accessors look up children
// by kind and never fail on malformed trees, they just report absence.
package ast

import (
	"fmt"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/source"
	"github.com/danue1/danube/syntax"
)

// Node is implemented by every wrapper.
type Node interface {
	Syntax() *syntax.SyntaxNode
}

type view struct {
	node *syntax.SyntaxNode
}

func (v view) Syntax() *syntax.SyntaxNode { return v.node }
func (v view) Span() source.Span          { return v.node.Span() }
func (v view) Text() string               { return v.node.Text() }

func cast[T ~struct{ view }](n *syntax.SyntaxNode, kind syntax.SyntaxKind) (T, bool) {
	if n == nil || n.Kind() != kind {
		var zero T
		return zero, false
	}
	return T{view{n}}, true
}

func child[T any](n *syntax.SyntaxNode, cast func(*syntax.SyntaxNode) (T, bool)) (T, bool) {
	for _, c := range n.Children() {
		if v, ok := cast(c); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func children[T any](n *syntax.SyntaxNode, cast func(*syntax.SyntaxNode) (T, bool)) []T {
	var out []T
	for _, c := range n.Children() {
		if v, ok := cast(c); ok {
			out = append(out, v)
		}
	}
	return out
}

// nth returns the i-th child accepted by cast.
func nth[T any](n *syntax.SyntaxNode, cast func(*syntax.SyntaxNode) (T, bool), i int) (T, bool) {
	for _, c := range n.Children() {
		if v, ok := cast(c); ok {
			if i == 0 {
				return v, true
			}
			i--
		}
	}
	var zero T
	return zero, false
}

// token returns the first direct child token of the given kind.
func token(n *syntax.SyntaxNode, kind lexer.TokenKind) (*syntax.SyntaxToken, bool) {
	want := syntax.TokenKind(kind)
	for _, el := range n.ChildrenWithTokens() {
		if t, ok := el.(*syntax.SyntaxToken); ok && t.Kind() == want {
			return t, true
		}
	}
	return nil, false
}

func hasToken(n *syntax.SyntaxNode, kind lexer.TokenKind) bool {
	_, ok := token(n, kind)
	return ok
}

// firstSignificant returns the first direct child token that is not trivia.
func firstSignificant(n *syntax.SyntaxNode) (*syntax.SyntaxToken, bool) {
	for _, el := range n.ChildrenWithTokens() {
		if t, ok := el.(*syntax.SyntaxToken); ok && !t.Kind().IsTrivia() {
			return t, true
		}
	}
	return nil, false
}

// InternalError reports a tree that lacks a child the grammar always
// produces for error-free input. Lowering panics with it and
// LowerSourceFile turns the panic into an error.
type InternalError struct {
	Kind  syntax.SyntaxKind
	Span  source.Span
	Child string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("ast: %s at %s has no %s", e.Kind, e.Span, e.Child)
}

func must[T any](v T, ok bool, n Node, what string) T {
	if !ok {
		s := n.Syntax()
		panic(&InternalError{Kind: s.Kind(), Span: s.Span(), Child: what})
	}
	return v
}
