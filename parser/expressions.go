package parser

import (
	"fmt"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

type exprFlags uint8

const (
	// flagNoStruct forbids struct literals, for conditions and scrutinees.
	flagNoStruct exprFlags = 1 << iota
	// flagStmt marks an expression in statement position, where a
	// block-like expression ends the statement.
	flagStmt
)

const (
	prefixPower  = 25
	postfixPower = 27
)

// infixPower returns the binding powers of a binary operator. Left
// associative operators bind tighter on the right (rbp = lbp+1), right
// associative ones looser (rbp = lbp-1).
func infixPower(kind lexer.TokenKind) (lbp, rbp int, ok bool) {
	switch kind {
	case lexer.Eq, lexer.PlusEq, lexer.MinusEq, lexer.StarEq, lexer.SlashEq, lexer.PercentEq:
		return 2, 1, true
	case lexer.DotDot:
		return 4, 5, true
	case lexer.PipePipe:
		return 6, 7, true
	case lexer.AmpAmp:
		return 8, 9, true
	case lexer.EqEq, lexer.BangEq, lexer.Lt, lexer.LtEq, lexer.Gt, lexer.GtEq:
		return 10, 11, true
	case lexer.Pipe:
		return 12, 13, true
	case lexer.Caret:
		return 14, 15, true
	case lexer.Amp:
		return 16, 17, true
	case lexer.Shl, lexer.Shr:
		return 18, 19, true
	case lexer.Plus, lexer.Minus:
		return 20, 21, true
	case lexer.Star, lexer.Slash, lexer.Percent:
		return 22, 23, true
	}
	return 0, 0, false
}

func isPostfix(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.Dot, lexer.LParen, lexer.LBracket, lexer.Question:
		return true
	}
	return false
}

func (p *Parser) expr() {
	p.exprBp(0, 0)
}

// exprBp parses an expression whose operators all bind tighter than minBp.
// It reports whether an operand was found and whether the result is a bare
// block-like expression.
func (p *Parser) exprBp(minBp int, flags exprFlags) (ok, blockLike bool) {
	cp := p.checkpoint()
	ok, blockLike = p.unary(flags)
	if !ok {
		return false, false
	}
	if flags&flagStmt != 0 && blockLike {
		return true, true
	}
	inner := flags &^ flagStmt
	for {
		op := p.current()
		if isPostfix(op) && postfixPower > minBp {
			p.postfix(cp, op)
			blockLike = false
			continue
		}
		lbp, rbp, isInfix := infixPower(op)
		if !isInfix || lbp <= minBp {
			break
		}
		m := p.startAt(cp)
		p.bump()
		p.exprBp(rbp, inner)
		m.Complete(syntax.BinaryExpression)
		blockLike = false
	}
	return true, blockLike
}

func (p *Parser) postfix(cp Checkpoint, op lexer.TokenKind) {
	m := p.startAt(cp)
	switch op {
	case lexer.Dot:
		p.bump()
		switch {
		case p.at(lexer.Ident):
			p.nameRef()
		case p.at(lexer.Int):
			p.bump()
		default:
			p.error(fmt.Sprintf("expected a field name, found %s", p.found()))
		}
		m.Complete(syntax.FieldExpression)
	case lexer.LParen:
		p.list(lexer.LParen, lexer.RParen, syntax.ArgList, exprStart, p.expr, "argument")
		m.Complete(syntax.CallExpression)
	case lexer.LBracket:
		p.bump()
		p.expr()
		p.expect(lexer.RBracket)
		m.Complete(syntax.IndexExpression)
	case lexer.Question:
		p.bump()
		m.Complete(syntax.TryExpression)
	}
}

func (p *Parser) unary(flags exprFlags) (ok, blockLike bool) {
	if p.at(lexer.Minus) || p.at(lexer.Bang) {
		m := p.reserve()
		p.bump()
		p.exprBp(prefixPower, flags&^flagStmt)
		m.Complete(syntax.PrefixExpression)
		return true, false
	}
	return p.primary(flags)
}

func (p *Parser) primary(flags exprFlags) (ok, blockLike bool) {
	switch p.current() {
	case lexer.Int, lexer.Float, lexer.String, lexer.Char, lexer.KwTrue, lexer.KwFalse:
		m := p.reserve()
		p.bump()
		m.Complete(syntax.Literal)
	case lexer.Ident, lexer.KwSelf:
		m := p.reserve()
		p.path()
		if p.at(lexer.LBrace) && flags&flagNoStruct == 0 {
			p.list(lexer.LBrace, lexer.RBrace, syntax.RecordFieldList, newSet(lexer.Ident), p.recordField, "field")
			m.Complete(syntax.StructExpression)
		} else {
			m.Complete(syntax.PathExpression)
		}
	case lexer.LParen:
		p.parenOrTuple()
	case lexer.LBracket:
		p.list(lexer.LBracket, lexer.RBracket, syntax.ArrayExpression, exprStart, p.expr, "expression")
	case lexer.LBrace:
		p.block()
		return true, true
	case lexer.KwIf:
		p.ifExpr()
		return true, true
	case lexer.KwWhile:
		m := p.reserve()
		p.bump()
		p.condition()
		p.blockOrError()
		m.Complete(syntax.WhileExpression)
		return true, true
	case lexer.KwLoop:
		m := p.reserve()
		p.bump()
		p.blockOrError()
		m.Complete(syntax.LoopExpression)
		return true, true
	case lexer.KwFor:
		m := p.reserve()
		p.bump()
		p.pattern()
		p.expect(lexer.KwIn)
		p.condition()
		p.blockOrError()
		m.Complete(syntax.ForExpression)
		return true, true
	case lexer.KwMatch:
		p.matchExpr()
		return true, true
	case lexer.KwReturn:
		p.jump(syntax.ReturnExpression, flags)
	case lexer.KwBreak:
		p.jump(syntax.BreakExpression, flags)
	case lexer.KwContinue:
		m := p.reserve()
		p.bump()
		m.Complete(syntax.ContinueExpression)
	default:
		p.errorRecover(fmt.Sprintf("expected an expression, found %s", p.found()))
		return false, false
	}
	return true, false
}

// jump parses return or break with an optional operand.
func (p *Parser) jump(kind syntax.SyntaxKind, flags exprFlags) {
	m := p.reserve()
	p.bump()
	if p.atSet(exprStart) {
		p.exprBp(0, flags&flagNoStruct)
	}
	m.Complete(kind)
}

func (p *Parser) recordField() {
	m := p.reserve()
	p.nameRef()
	if p.eat(lexer.Colon) {
		p.expr()
	}
	m.Complete(syntax.RecordField)
}

// parenOrTuple distinguishes (e), () and (e, ...).
func (p *Parser) parenOrTuple() {
	m := p.reserve()
	p.bump()
	if p.eat(lexer.RParen) {
		m.Complete(syntax.TupleExpression)
		return
	}
	p.expr()
	if p.eat(lexer.RParen) {
		m.Complete(syntax.ParenExpression)
		return
	}
	if p.eat(lexer.Comma) {
		p.delimited(lexer.RParen, exprStart, p.expr, "expression")
		m.Complete(syntax.TupleExpression)
		return
	}
	p.expect(lexer.RParen)
	m.Complete(syntax.ParenExpression)
}

func (p *Parser) ifExpr() {
	m := p.reserve()
	p.bump()
	p.condition()
	p.blockOrError()
	if p.eat(lexer.KwElse) {
		switch {
		case p.at(lexer.KwIf):
			p.ifExpr()
		case p.at(lexer.LBrace):
			p.block()
		default:
			p.error(fmt.Sprintf("expected '{' or 'if' after 'else', found %s", p.found()))
		}
	}
	m.Complete(syntax.IfExpression)
}

// condition parses the head of if, while, for and match, where a struct
// literal would be ambiguous with the following block.
func (p *Parser) condition() {
	if p.at(lexer.LBrace) {
		p.error("expected a condition before '{'")
		return
	}
	p.exprBp(0, flagNoStruct)
}

func (p *Parser) blockOrError() {
	if !p.at(lexer.LBrace) {
		p.error(fmt.Sprintf("expected '{', found %s", p.found()))
		return
	}
	p.block()
}

func (p *Parser) matchExpr() {
	m := p.reserve()
	p.bump()
	p.condition()
	if !p.at(lexer.LBrace) {
		p.error(fmt.Sprintf("expected '{', found %s", p.found()))
		m.Complete(syntax.MatchExpression)
		return
	}
	arms := p.reserve()
	p.bump()
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		if !p.atSet(patternStart) {
			p.errorBump(fmt.Sprintf("expected a match arm, found %s", p.found()))
			continue
		}
		guard := p.mustProgress()
		p.matchArm()
		guard()
	}
	p.expect(lexer.RBrace)
	arms.Complete(syntax.MatchArmList)
	m.Complete(syntax.MatchExpression)
}

func (p *Parser) matchArm() {
	m := p.reserve()
	p.pattern()
	if p.at(lexer.KwIf) {
		g := p.reserve()
		p.bump()
		p.expr()
		g.Complete(syntax.MatchGuard)
	}
	p.expect(lexer.FatArrow)
	_, blockLike := p.exprBp(0, flagStmt)
	if !p.eat(lexer.Comma) && !blockLike && !p.at(lexer.RBrace) {
		p.error(fmt.Sprintf("expected ',' after match arm, found %s", p.found()))
	}
	m.Complete(syntax.MatchArm)
}

// block parses "{" { Stmt } [ Expr ] "}". A trailing expression without a
// semicolon stays a direct child of the block.
func (p *Parser) block() {
	m := p.reserve()
	p.bump()
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		guard := p.mustProgress()
		p.statement()
		guard()
	}
	p.expect(lexer.RBrace)
	m.Complete(syntax.BlockExpression)
}

func (p *Parser) statement() {
	switch {
	case p.eat(lexer.Semicolon):
	case p.at(lexer.KwLet):
		p.letStatement()
	case p.atSet(exprStart):
		cp := p.checkpoint()
		_, blockLike := p.exprBp(0, flagStmt)
		switch {
		case p.at(lexer.Semicolon):
			m := p.startAt(cp)
			p.bump()
			m.Complete(syntax.ExpressionStatement)
		case p.at(lexer.RBrace):
		case blockLike:
			p.startAt(cp).Complete(syntax.ExpressionStatement)
		default:
			m := p.startAt(cp)
			p.error(fmt.Sprintf("expected ';' or '}', found %s", p.found()))
			m.Complete(syntax.ExpressionStatement)
		}
	default:
		p.errorBump(fmt.Sprintf("expected a statement, found %s", p.found()))
	}
}

func (p *Parser) letStatement() {
	m := p.reserve()
	p.bump()
	p.pattern()
	if p.eat(lexer.Colon) {
		p.typ()
	}
	if p.eat(lexer.Eq) {
		p.expr()
	}
	p.expect(lexer.Semicolon)
	m.Complete(syntax.LetStatement)
}
