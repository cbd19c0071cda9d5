package parser

import (
	"fmt"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

// item parses one item, or absorbs a single token if nothing item-like
// starts here.
func (p *Parser) item() {
	m := p.reserve()
	hasVis := p.visibility()
	switch p.current() {
	case lexer.KwFn:
		p.function(m)
	case lexer.KwStruct:
		p.structItem(m)
	case lexer.KwEnum:
		p.enumItem(m)
	case lexer.KwUse:
		p.useItem(m)
	case lexer.KwConst:
		p.constItem(m)
	case lexer.KwType:
		p.typeAlias(m)
	case lexer.KwImpl:
		p.implItem(m)
	case lexer.KwTrait:
		p.traitItem(m)
	case lexer.KwMod:
		p.moduleItem(m)
	default:
		if hasVis {
			p.error(fmt.Sprintf("expected an item after 'pub', found %s", p.found()))
			m.Complete(syntax.Error)
			return
		}
		m.Abandon()
		p.errorBump(fmt.Sprintf("expected an item, found %s", p.found()))
	}
}

func (p *Parser) visibility() bool {
	if !p.at(lexer.KwPub) {
		return false
	}
	m := p.reserve()
	p.bump()
	m.Complete(syntax.Visibility)
	return true
}

func (p *Parser) name() bool {
	if !p.at(lexer.Ident) {
		p.error(fmt.Sprintf("expected a name, found %s", p.found()))
		return false
	}
	m := p.reserve()
	p.bump()
	m.Complete(syntax.Name)
	return true
}

func (p *Parser) nameRef() {
	m := p.reserve()
	p.bump()
	m.Complete(syntax.NameRef)
}

func (p *Parser) function(m *Marker) {
	p.bump()
	p.name()
	if p.at(lexer.LParen) {
		p.list(lexer.LParen, lexer.RParen, syntax.ParamList, paramStart, p.param, "parameter")
	} else {
		p.error(fmt.Sprintf("expected '(', found %s", p.found()))
	}
	if p.at(lexer.Arrow) {
		r := p.reserve()
		p.bump()
		p.typ()
		r.Complete(syntax.RetType)
	}
	switch {
	case p.at(lexer.LBrace):
		p.block()
	case p.eat(lexer.Semicolon):
	default:
		p.error(fmt.Sprintf("expected '{' or ';', found %s", p.found()))
	}
	m.Complete(syntax.Function)
}

var paramStart = newSet(lexer.Ident, lexer.KwMut, lexer.KwSelf)

func (p *Parser) param() {
	m := p.reserve()
	if p.eat(lexer.KwSelf) {
		m.Complete(syntax.SelfParam)
		return
	}
	p.eat(lexer.KwMut)
	p.name()
	if p.expect(lexer.Colon) {
		p.typ()
	}
	m.Complete(syntax.Param)
}

func (p *Parser) structItem(m *Marker) {
	p.bump()
	p.name()
	switch {
	case p.at(lexer.LBrace):
		p.namedFields()
	case p.at(lexer.LParen):
		p.tupleFields()
		p.expect(lexer.Semicolon)
	case p.eat(lexer.Semicolon):
	default:
		p.error(fmt.Sprintf("expected '{', '(' or ';', found %s", p.found()))
	}
	m.Complete(syntax.Struct)
}

func (p *Parser) namedFields() {
	p.list(lexer.LBrace, lexer.RBrace, syntax.NamedFieldList, newSet(lexer.Ident, lexer.KwPub), p.namedField, "field")
}

func (p *Parser) namedField() {
	m := p.reserve()
	p.visibility()
	p.name()
	if p.expect(lexer.Colon) {
		p.typ()
	}
	m.Complete(syntax.NamedField)
}

func (p *Parser) tupleFields() {
	p.list(lexer.LParen, lexer.RParen, syntax.TupleFieldList, typeStart.union(newSet(lexer.KwPub)), p.tupleField, "field type")
}

func (p *Parser) tupleField() {
	m := p.reserve()
	p.visibility()
	p.typ()
	m.Complete(syntax.TupleField)
}

func (p *Parser) enumItem(m *Marker) {
	p.bump()
	p.name()
	if p.at(lexer.LBrace) {
		p.list(lexer.LBrace, lexer.RBrace, syntax.VariantList, newSet(lexer.Ident), p.variant, "variant")
	} else {
		p.error(fmt.Sprintf("expected '{', found %s", p.found()))
	}
	m.Complete(syntax.Enum)
}

func (p *Parser) variant() {
	m := p.reserve()
	p.name()
	switch {
	case p.at(lexer.LBrace):
		p.namedFields()
	case p.at(lexer.LParen):
		p.tupleFields()
	}
	m.Complete(syntax.Variant)
}

func (p *Parser) useItem(m *Marker) {
	p.bump()
	p.useTree()
	p.expect(lexer.Semicolon)
	m.Complete(syntax.Use)
}

var useTreeStart = newSet(lexer.Ident, lexer.KwSelf)

func (p *Parser) useTree() {
	m := p.reserve()
	if !p.atSet(useTreeStart) {
		p.error(fmt.Sprintf("expected a path, found %s", p.found()))
		m.Complete(syntax.UseTree)
		return
	}
	p.path()
	if p.eat(lexer.ColonColon) {
		switch {
		case p.eat(lexer.Star):
		case p.at(lexer.LBrace):
			p.list(lexer.LBrace, lexer.RBrace, syntax.UseTreeList, useTreeStart, p.useTree, "use tree")
		default:
			p.error(fmt.Sprintf("expected '*' or '{', found %s", p.found()))
		}
	}
	m.Complete(syntax.UseTree)
}

func (p *Parser) constItem(m *Marker) {
	p.bump()
	p.name()
	if p.expect(lexer.Colon) {
		p.typ()
	}
	if p.expect(lexer.Eq) {
		p.expr()
	}
	p.expect(lexer.Semicolon)
	m.Complete(syntax.Const)
}

func (p *Parser) typeAlias(m *Marker) {
	p.bump()
	p.name()
	if p.expect(lexer.Eq) {
		p.typ()
	}
	p.expect(lexer.Semicolon)
	m.Complete(syntax.TypeAlias)
}

func (p *Parser) implItem(m *Marker) {
	p.bump()
	p.typ()
	if p.eat(lexer.KwFor) {
		p.typ()
	}
	p.itemListOrError()
	m.Complete(syntax.Impl)
}

func (p *Parser) traitItem(m *Marker) {
	p.bump()
	p.name()
	p.itemListOrError()
	m.Complete(syntax.Trait)
}

func (p *Parser) moduleItem(m *Marker) {
	p.bump()
	p.name()
	if !p.eat(lexer.Semicolon) {
		p.itemListOrError()
	}
	m.Complete(syntax.Module)
}

func (p *Parser) itemListOrError() {
	if !p.at(lexer.LBrace) {
		p.error(fmt.Sprintf("expected '{', found %s", p.found()))
		return
	}
	m := p.reserve()
	p.bump()
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		guard := p.mustProgress()
		p.item()
		guard()
	}
	p.expect(lexer.RBrace)
	m.Complete(syntax.ItemList)
}

// list parses open, a comma separated list of elements with an optional
// trailing comma, and close, all inside one node of the given kind.
func (p *Parser) list(open, close lexer.TokenKind, kind syntax.SyntaxKind, start tokenSet, elem func(), what string) {
	m := p.reserve()
	p.expect(open)
	p.delimited(close, start, elem, what)
	m.Complete(kind)
}

// delimited parses the body and closer of a list whose opener was already
// consumed. A token that can neither start an element nor separate two is
// absorbed into an Error node; tokens in listRecovery end the list.
func (p *Parser) delimited(close lexer.TokenKind, start tokenSet, elem func(), what string) {
	needSep := false
	for !p.at(close) && !p.at(lexer.EOF) {
		if needSep {
			if p.eat(lexer.Comma) {
				needSep = false
				continue
			}
			if p.atSet(listRecovery) {
				break
			}
			p.errorBump(fmt.Sprintf("expected ',' or %s, found %s", describe(close), p.found()))
			needSep = false
			continue
		}
		if !p.atSet(start) {
			if p.atSet(listRecovery) {
				break
			}
			p.errorBump(fmt.Sprintf("expected %s, found %s", what, p.found()))
			continue
		}
		guard := p.mustProgress()
		elem()
		guard()
		needSep = true
	}
	p.expect(close)
}
