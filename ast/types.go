package ast

import (
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

type Path struct{ view }

func CastPath(n *syntax.SyntaxNode) (Path, bool) { return cast[Path](n, syntax.Path) }

func (p Path) Segments() []PathSegment { return children(p.node, CastPathSegment) }

type PathSegment struct{ view }

func CastPathSegment(n *syntax.SyntaxNode) (PathSegment, bool) {
	return cast[PathSegment](n, syntax.PathSegment)
}

func (s PathSegment) NameRef() (NameRef, bool) { return child(s.node, CastNameRef) }
func (s PathSegment) IsSelf() bool             { return hasToken(s.node, lexer.KwSelf) }

// Ident returns the segment text: the name, or "self".
func (s PathSegment) Ident() string {
	if r, ok := s.NameRef(); ok {
		return r.Ident()
	}
	if s.IsSelf() {
		return "self"
	}
	return ""
}

// Type is one of PathType, TupleType or ArrayType.
type Type interface {
	Node
	typ()
}

func CastType(n *syntax.SyntaxNode) (Type, bool) {
	if n == nil {
		return nil, false
	}
	v := view{n}
	switch n.Kind() {
	case syntax.PathType:
		return PathType{v}, true
	case syntax.TupleType:
		return TupleType{v}, true
	case syntax.ArrayType:
		return ArrayType{v}, true
	}
	return nil, false
}

func (PathType) typ()  {}
func (TupleType) typ() {}
func (ArrayType) typ() {}

type PathType struct{ view }

func CastPathType(n *syntax.SyntaxNode) (PathType, bool) {
	return cast[PathType](n, syntax.PathType)
}

func (t PathType) Path() (Path, bool) { return child(t.node, CastPath) }

type TupleType struct{ view }

func CastTupleType(n *syntax.SyntaxNode) (TupleType, bool) {
	return cast[TupleType](n, syntax.TupleType)
}

func (t TupleType) Elements() []Type { return children(t.node, CastType) }

type ArrayType struct{ view }

func CastArrayType(n *syntax.SyntaxNode) (ArrayType, bool) {
	return cast[ArrayType](n, syntax.ArrayType)
}

func (t ArrayType) Element() (Type, bool) { return child(t.node, CastType) }
func (t ArrayType) Len() (Expr, bool)     { return child(t.node, CastExpr) }

// Pattern is one of IdentPattern, WildcardPattern, LiteralPattern,
// PathPattern, TupleStructPattern or TuplePattern.
type Pattern interface {
	Node
	pattern()
}

func CastPattern(n *syntax.SyntaxNode) (Pattern, bool) {
	if n == nil {
		return nil, false
	}
	v := view{n}
	switch n.Kind() {
	case syntax.IdentPattern:
		return IdentPattern{v}, true
	case syntax.WildcardPattern:
		return WildcardPattern{v}, true
	case syntax.LiteralPattern:
		return LiteralPattern{v}, true
	case syntax.PathPattern:
		return PathPattern{v}, true
	case syntax.TupleStructPattern:
		return TupleStructPattern{v}, true
	case syntax.TuplePattern:
		return TuplePattern{v}, true
	}
	return nil, false
}

func (IdentPattern) pattern()       {}
func (WildcardPattern) pattern()    {}
func (LiteralPattern) pattern()     {}
func (PathPattern) pattern()        {}
func (TupleStructPattern) pattern() {}
func (TuplePattern) pattern()       {}

type IdentPattern struct{ view }

func CastIdentPattern(n *syntax.SyntaxNode) (IdentPattern, bool) {
	return cast[IdentPattern](n, syntax.IdentPattern)
}

func (p IdentPattern) IsMut() bool        { return hasToken(p.node, lexer.KwMut) }
func (p IdentPattern) Name() (Name, bool) { return child(p.node, CastName) }

type WildcardPattern struct{ view }

func CastWildcardPattern(n *syntax.SyntaxNode) (WildcardPattern, bool) {
	return cast[WildcardPattern](n, syntax.WildcardPattern)
}

type LiteralPattern struct{ view }

func CastLiteralPattern(n *syntax.SyntaxNode) (LiteralPattern, bool) {
	return cast[LiteralPattern](n, syntax.LiteralPattern)
}

func (p LiteralPattern) IsNegative() bool { return hasToken(p.node, lexer.Minus) }

// Token returns the literal token, after any leading minus.
func (p LiteralPattern) Token() (*syntax.SyntaxToken, bool) {
	for _, el := range p.node.ChildrenWithTokens() {
		t, ok := el.(*syntax.SyntaxToken)
		if !ok {
			continue
		}
		if k, _ := t.Kind().AsToken(); k.IsLiteral() {
			return t, true
		}
	}
	return nil, false
}

type PathPattern struct{ view }

func CastPathPattern(n *syntax.SyntaxNode) (PathPattern, bool) {
	return cast[PathPattern](n, syntax.PathPattern)
}

func (p PathPattern) Path() (Path, bool) { return child(p.node, CastPath) }

type TupleStructPattern struct{ view }

func CastTupleStructPattern(n *syntax.SyntaxNode) (TupleStructPattern, bool) {
	return cast[TupleStructPattern](n, syntax.TupleStructPattern)
}

func (p TupleStructPattern) Path() (Path, bool)  { return child(p.node, CastPath) }
func (p TupleStructPattern) Fields() []Pattern { return children(p.node, CastPattern) }

type TuplePattern struct{ view }

func CastTuplePattern(n *syntax.SyntaxNode) (TuplePattern, bool) {
	return cast[TuplePattern](n, syntax.TuplePattern)
}

func (p TuplePattern) Fields() []Pattern { return children(p.node, CastPattern) }
