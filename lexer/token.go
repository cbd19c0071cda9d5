package lexer

import "github.com/danue1/danube/source"

type TokenKind uint16

const (
	EOF TokenKind = iota
	Unknown

	// Trivia
	Whitespace
	Newline
	LineComment
	BlockComment

	// Literals
	Ident
	Int
	Float
	String
	Char

	// Keywords
	KwFn
	KwLet
	KwMut
	KwPub
	KwStruct
	KwEnum
	KwUse
	KwConst
	KwType
	KwImpl
	KwTrait
	KwMod
	KwFor
	KwIn
	KwIf
	KwElse
	KwWhile
	KwLoop
	KwMatch
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwSelf
	Underscore

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Dot
	DotDot
	Arrow
	FatArrow
	Question

	// Operators
	Eq
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	AmpAmp
	Pipe
	PipePipe
	Caret
	Shl
	Shr
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq

	// KindCount is the number of token kinds. Syntax kinds for tree nodes
	// are numbered from here.
	KindCount
)

var tokenKindNames = map[TokenKind]string{
	EOF:          "EOF",
	Unknown:      "Unknown",
	Whitespace:   "Whitespace",
	Newline:      "Newline",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Ident:        "Ident",
	Int:          "Int",
	Float:        "Float",
	String:       "String",
	Char:         "Char",
	KwFn:         "fn",
	KwLet:        "let",
	KwMut:        "mut",
	KwPub:        "pub",
	KwStruct:     "struct",
	KwEnum:       "enum",
	KwUse:        "use",
	KwConst:      "const",
	KwType:       "type",
	KwImpl:       "impl",
	KwTrait:      "trait",
	KwMod:        "mod",
	KwFor:        "for",
	KwIn:         "in",
	KwIf:         "if",
	KwElse:       "else",
	KwWhile:      "while",
	KwLoop:       "loop",
	KwMatch:      "match",
	KwReturn:     "return",
	KwBreak:      "break",
	KwContinue:   "continue",
	KwTrue:       "true",
	KwFalse:      "false",
	KwSelf:       "self",
	Underscore:   "_",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Comma:        ",",
	Semicolon:    ";",
	Colon:        ":",
	ColonColon:   "::",
	Dot:          ".",
	DotDot:       "..",
	Arrow:        "->",
	FatArrow:     "=>",
	Question:     "?",
	Eq:           "=",
	EqEq:         "==",
	Bang:         "!",
	BangEq:       "!=",
	Lt:           "<",
	LtEq:         "<=",
	Gt:           ">",
	GtEq:         ">=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Amp:          "&",
	AmpAmp:       "&&",
	Pipe:         "|",
	PipePipe:     "||",
	Caret:        "^",
	Shl:          "<<",
	Shr:          ">>",
	PlusEq:       "+=",
	MinusEq:      "-=",
	StarEq:       "*=",
	SlashEq:      "/=",
	PercentEq:    "%=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// IsTrivia reports whether tokens of this kind are invisible to the grammar.
func (k TokenKind) IsTrivia() bool {
	return k >= Whitespace && k <= BlockComment
}

func (k TokenKind) IsKeyword() bool {
	return k >= KwFn && k <= Underscore
}

func (k TokenKind) IsLiteral() bool {
	switch k {
	case Int, Float, String, Char, KwTrue, KwFalse:
		return true
	}
	return false
}

// Token is a kind tag plus the exact source range it covers. Value carries
// the decoded payload of string and char literals and the digits of numeric
// literals with separators removed; it is empty for every other kind.
type Token struct {
	Kind  TokenKind
	Span  source.Span
	Value string
}

// Text returns the source slice the token covers.
func (t Token) Text(src string) string {
	return src[t.Span.Start:t.Span.End]
}

var keywords = map[string]TokenKind{
	"fn":       KwFn,
	"let":      KwLet,
	"mut":      KwMut,
	"pub":      KwPub,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"use":      KwUse,
	"const":    KwConst,
	"type":     KwType,
	"impl":     KwImpl,
	"trait":    KwTrait,
	"mod":      KwMod,
	"for":      KwFor,
	"in":       KwIn,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"loop":     KwLoop,
	"match":    KwMatch,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
	"self":     KwSelf,
	"_":        Underscore,
}

// LookupKeyword classifies an identifier-shaped word by exact text.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Ident
}
