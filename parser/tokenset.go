package parser

import "github.com/danue1/danube/lexer"

type tokenSet [2]uint64

func newSet(kinds ...lexer.TokenKind) tokenSet {
	var s tokenSet
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s tokenSet) contains(k lexer.TokenKind) bool {
	if int(k) >= 128 {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

func (s tokenSet) union(other tokenSet) tokenSet {
	return tokenSet{s[0] | other[0], s[1] | other[1]}
}

var (
	itemStart = newSet(
		lexer.KwPub, lexer.KwFn, lexer.KwStruct, lexer.KwEnum, lexer.KwUse,
		lexer.KwConst, lexer.KwType, lexer.KwImpl, lexer.KwTrait, lexer.KwMod,
	)

	literalStart = newSet(
		lexer.Int, lexer.Float, lexer.String, lexer.Char, lexer.KwTrue, lexer.KwFalse,
	)

	exprStart = literalStart.union(newSet(
		lexer.Ident, lexer.KwSelf, lexer.LParen, lexer.LBracket, lexer.LBrace,
		lexer.KwIf, lexer.KwWhile, lexer.KwLoop, lexer.KwFor, lexer.KwMatch,
		lexer.KwReturn, lexer.KwBreak, lexer.KwContinue, lexer.Minus, lexer.Bang,
	))

	typeStart = newSet(lexer.Ident, lexer.KwSelf, lexer.LParen, lexer.LBracket)

	patternStart = literalStart.union(newSet(
		lexer.Underscore, lexer.Ident, lexer.KwMut, lexer.KwSelf, lexer.Minus, lexer.LParen,
	))

	// recovery holds tokens a missing construct is reported in front of
	// rather than swallowed.
	recovery = itemStart.union(newSet(
		lexer.Semicolon, lexer.Comma, lexer.RParen, lexer.RBracket, lexer.RBrace,
		lexer.LBrace, lexer.FatArrow, lexer.Eq, lexer.KwLet,
	))

	// listRecovery ends a delimited list early so the enclosing construct
	// can deal with the token.
	listRecovery = itemStart.union(newSet(
		lexer.Semicolon, lexer.RParen, lexer.RBracket, lexer.RBrace, lexer.KwLet,
	))
)
