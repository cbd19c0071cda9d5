// Package parser turns Danube source text into a lossless syntax tree.
//
// Grammar routines never build nodes directly. They record an event log
// through markers and checkpoints, and the log is replayed into a green
// tree once parsing finishes. Malformed input is absorbed into Error nodes
// and reported as diagnostics; parsing always consumes the whole input.
package parser

import (
	"fmt"

	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/logging"
	"github.com/danue1/danube/source"
	"github.com/danue1/danube/syntax"
)

type Option func(*Parser)

// WithFile names the file the text came from; it is copied into every
// diagnostic.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithSink forwards diagnostics to s as they are produced, in addition to
// collecting them in the Result.
func WithSink(s diag.Sink) Option {
	return func(p *Parser) {
		p.sink = s
	}
}

type Parser struct {
	file       string
	src        string
	tokens     []lexer.Token
	sig        []int
	pos        int
	events     []event
	open       map[int]struct{}
	sink       diag.Sink
	diags      []diag.Diagnostic
	incomplete bool
}

func newParser(src string, opts ...Option) *Parser {
	p := &Parser{
		src:  src,
		open: make(map[int]struct{}),
		sink: diag.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	tokens, lexErrors := lexer.Lex(src)
	p.tokens = tokens
	for i, tok := range tokens {
		if !tok.Kind.IsTrivia() {
			p.sig = append(p.sig, i)
		}
	}
	for _, e := range lexErrors {
		p.report(diag.Diagnostic{Severity: diag.Error, Message: e.Message, Span: e.Span})
	}
	return p
}

// Result is a finished parse: the tree plus every diagnostic found while
// lexing and parsing, ordered by position.
type Result struct {
	Green       *syntax.GreenNode
	Diagnostics []diag.Diagnostic
	incomplete  bool
}

// Root returns a fresh cursor at the root of the tree.
func (r *Result) Root() *syntax.SyntaxNode {
	return syntax.NewRoot(r.Green)
}

// Text reconstructs the input.
func (r *Result) Text() string {
	return r.Green.Text()
}

func (r *Result) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// Incomplete reports whether the parser ran out of input while it still
// expected more, e.g. an unclosed brace.
func (r *Result) Incomplete() bool {
	return r.incomplete
}

func (p *Parser) finish() *Result {
	p.checkBalanced()
	green := finalize(p.events, p.tokens, p.src)
	diag.Sort(p.diags)
	logging.GetLogger("danube.parser").Debugf("parsed %s: %d tokens, %d events, %d diagnostics",
		p.displayName(), len(p.tokens), len(p.events), len(p.diags))
	return &Result{Green: green, Diagnostics: p.diags, incomplete: p.incomplete}
}

func (p *Parser) displayName() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

func (p *Parser) token(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.sig) {
		i = len(p.sig) - 1
	}
	return p.tokens[p.sig[i]]
}

func (p *Parser) nth(n int) lexer.TokenKind {
	return p.token(n).Kind
}

func (p *Parser) current() lexer.TokenKind {
	return p.nth(0)
}

func (p *Parser) at(kind lexer.TokenKind) bool {
	return p.current() == kind
}

func (p *Parser) atSet(set tokenSet) bool {
	return set.contains(p.current())
}

// bump consumes the current significant token.
func (p *Parser) bump() {
	if p.at(lexer.EOF) {
		panic("parser: bump at end of input")
	}
	p.events = append(p.events, event{kind: evToken})
	p.pos++
}

func (p *Parser) eat(kind lexer.TokenKind) bool {
	if !p.at(kind) {
		return false
	}
	p.bump()
	return true
}

// expect consumes kind or reports it as missing. Nothing is consumed on
// failure.
func (p *Parser) expect(kind lexer.TokenKind) bool {
	if p.eat(kind) {
		return true
	}
	p.error(fmt.Sprintf("expected %s, found %s", describe(kind), p.found()))
	return false
}

// prevEnd is the end offset of the last consumed significant token.
func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return p.token(0).Span.Start
	}
	return p.tokens[p.sig[p.pos-1]].Span.End
}

// error reports a problem at the end of the previous token without
// consuming anything.
func (p *Parser) error(msg string) {
	if p.at(lexer.EOF) {
		p.incomplete = true
	}
	at := p.prevEnd()
	p.report(diag.Errorf(source.NewSpan(at, at), "%s", msg))
}

// errorBump wraps the current token in an Error node and reports msg on it.
// At end of input it only reports.
func (p *Parser) errorBump(msg string) {
	if p.at(lexer.EOF) {
		p.error(msg)
		return
	}
	m := p.reserve()
	p.report(diag.Errorf(p.token(0).Span, "%s", msg))
	p.bump()
	m.Complete(syntax.Error)
}

// errorRecover reports msg, consuming the current token into an Error node
// unless it belongs to the recovery set.
func (p *Parser) errorRecover(msg string) {
	if p.atSet(recovery) || p.at(lexer.EOF) {
		p.error(msg)
		return
	}
	p.errorBump(msg)
}

func (p *Parser) report(d diag.Diagnostic) {
	d.File = p.file
	p.diags = append(p.diags, d)
	p.sink.Report(d)
}

// mustProgress returns a check to run at the end of a loop iteration. If
// the iteration consumed nothing, the check absorbs the current token into
// an Error node so the loop always advances.
func (p *Parser) mustProgress() func() {
	saved := p.pos
	return func() {
		if p.pos == saved && !p.at(lexer.EOF) {
			p.errorBump(fmt.Sprintf("unexpected %s", p.found()))
		}
	}
}

// found describes the current token for diagnostics.
func (p *Parser) found() string {
	tok := p.token(0)
	switch tok.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.Ident, lexer.Int, lexer.Float, lexer.String, lexer.Char, lexer.Unknown:
		return fmt.Sprintf("%s `%s`", describe(tok.Kind), tok.Text(p.src))
	}
	return describe(tok.Kind)
}

func describe(kind lexer.TokenKind) string {
	switch kind {
	case lexer.EOF:
		return "end of input"
	case lexer.Ident:
		return "identifier"
	case lexer.Int:
		return "integer"
	case lexer.Float:
		return "float"
	case lexer.String:
		return "string"
	case lexer.Char:
		return "character"
	case lexer.Unknown:
		return "unknown character"
	}
	return fmt.Sprintf("'%s'", kind)
}
