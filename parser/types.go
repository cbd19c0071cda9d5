package parser

import (
	"fmt"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

// path parses Segment { "::" Segment }. A "::" not followed by a segment is
// left for the caller.
func (p *Parser) path() {
	m := p.reserve()
	p.pathSegment()
	for p.at(lexer.ColonColon) && useTreeStart.contains(p.nth(1)) {
		p.bump()
		p.pathSegment()
	}
	m.Complete(syntax.Path)
}

func (p *Parser) pathSegment() {
	m := p.reserve()
	if p.at(lexer.Ident) {
		p.nameRef()
	} else {
		p.bump()
	}
	m.Complete(syntax.PathSegment)
}

func (p *Parser) typ() {
	switch p.current() {
	case lexer.Ident, lexer.KwSelf:
		m := p.reserve()
		p.path()
		m.Complete(syntax.PathType)
	case lexer.LParen:
		p.list(lexer.LParen, lexer.RParen, syntax.TupleType, typeStart, p.typ, "type")
	case lexer.LBracket:
		m := p.reserve()
		p.bump()
		p.typ()
		if p.eat(lexer.Semicolon) {
			p.expr()
		}
		p.expect(lexer.RBracket)
		m.Complete(syntax.ArrayType)
	default:
		p.errorRecover(fmt.Sprintf("expected a type, found %s", p.found()))
	}
}

func (p *Parser) pattern() {
	switch p.current() {
	case lexer.Underscore:
		m := p.reserve()
		p.bump()
		m.Complete(syntax.WildcardPattern)
	case lexer.KwMut:
		m := p.reserve()
		p.bump()
		p.name()
		m.Complete(syntax.IdentPattern)
	case lexer.Ident, lexer.KwSelf:
		if p.at(lexer.Ident) && p.nth(1) != lexer.ColonColon && p.nth(1) != lexer.LParen {
			m := p.reserve()
			p.name()
			m.Complete(syntax.IdentPattern)
			return
		}
		m := p.reserve()
		p.path()
		if p.eat(lexer.LParen) {
			p.delimited(lexer.RParen, patternStart, p.pattern, "pattern")
			m.Complete(syntax.TupleStructPattern)
			return
		}
		m.Complete(syntax.PathPattern)
	case lexer.Int, lexer.Float, lexer.String, lexer.Char, lexer.KwTrue, lexer.KwFalse:
		m := p.reserve()
		p.bump()
		m.Complete(syntax.LiteralPattern)
	case lexer.Minus:
		m := p.reserve()
		p.bump()
		if p.at(lexer.Int) || p.at(lexer.Float) {
			p.bump()
		} else {
			p.error(fmt.Sprintf("expected a number after '-', found %s", p.found()))
		}
		m.Complete(syntax.LiteralPattern)
	case lexer.LParen:
		p.list(lexer.LParen, lexer.RParen, syntax.TuplePattern, patternStart, p.pattern, "pattern")
	default:
		p.errorRecover(fmt.Sprintf("expected a pattern, found %s", p.found()))
	}
}
