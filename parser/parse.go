package parser

import (
	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

// Parse parses a whole source file. The root is always a SourceFile node
// whose text equals src.
func Parse(src string, opts ...Option) *Result {
	p := newParser(src, opts...)
	p.sourceFile()
	return p.finish()
}

// ParseExpression parses src as a single expression. The expression node
// sits under a SourceFile root; anything after it becomes an Error node.
func ParseExpression(src string, opts ...Option) *Result {
	return parseFragment(src, opts, "expression", (*Parser).expr)
}

// ParseType parses src as a single type, like ParseExpression.
func ParseType(src string, opts ...Option) *Result {
	return parseFragment(src, opts, "type", (*Parser).typ)
}

// ParsePattern parses src as a single pattern, like ParseExpression.
func ParsePattern(src string, opts ...Option) *Result {
	return parseFragment(src, opts, "pattern", (*Parser).pattern)
}

func parseFragment(src string, opts []Option, what string, entry func(*Parser)) *Result {
	p := newParser(src, opts...)
	m := p.reserve()
	entry(p)
	if !p.at(lexer.EOF) {
		e := p.reserve()
		p.report(diag.Errorf(p.token(0).Span, "unexpected %s after %s", p.found(), what))
		for !p.at(lexer.EOF) {
			p.bump()
		}
		e.Complete(syntax.Error)
	}
	m.Complete(syntax.SourceFile)
	return p.finish()
}

func (p *Parser) sourceFile() {
	m := p.reserve()
	for !p.at(lexer.EOF) {
		guard := p.mustProgress()
		p.item()
		guard()
	}
	m.Complete(syntax.SourceFile)
}
