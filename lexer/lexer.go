// Package lexer turns Danube source text into a flat stream of tokens that
// tiles the input exactly: trivia is kept, malformed input becomes Unknown
// or best-effort literal tokens, and the stream always ends with EOF.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/danue1/danube/source"
)

// Error is a lexical defect. The offending text is still covered by a
// token; errors are surfaced as diagnostics, never as a failed lex.
type Error struct {
	Span    source.Span
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

type Lexer struct {
	input    string
	pos      int
	prev     TokenKind
	errors   []Error
	finished bool
}

func New(input string) *Lexer {
	return &Lexer{input: input, prev: EOF}
}

// Lex scans the whole input. The returned tokens cover every byte of src
// in order and end with a zero-width EOF token.
func Lex(src string) ([]Token, []Error) {
	l := New(src)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return tokens, l.Errors()
}

func (l *Lexer) Errors() []Error {
	return l.errors
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peekRune() (rune, int) {
	if l.atEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) errorf(start int, format string, args ...any) {
	l.errors = append(l.errors, Error{
		Span:    source.NewSpan(start, l.pos),
		Message: fmt.Sprintf(format, args...),
	})
}

// Next returns the next token. Every call makes progress until EOF, after
// which EOF is returned forever.
func (l *Lexer) Next() Token {
	if l.atEnd() {
		return Token{Kind: EOF, Span: source.NewSpan(len(l.input), len(l.input))}
	}
	start := l.pos
	tok := l.scan()
	if l.pos <= start {
		panic(fmt.Sprintf("lexer: no progress at offset %d", start))
	}
	tok.Span = source.NewSpan(start, l.pos)
	if !tok.Kind.IsTrivia() {
		l.prev = tok.Kind
	}
	return tok
}

func (l *Lexer) scan() Token {
	ch := l.peek()
	switch {
	case ch == '\n':
		l.pos++
		return Token{Kind: Newline}
	case ch == '\r' && l.peekN(1) == '\n':
		l.pos += 2
		return Token{Kind: Newline}
	case isSpace(ch):
		for isSpace(l.peek()) && !(l.peek() == '\r' && l.peekN(1) == '\n') {
			l.pos++
		}
		return Token{Kind: Whitespace}
	case ch == '/' && l.peekN(1) == '/':
		for !l.atEnd() && l.peek() != '\n' && !(l.peek() == '\r' && l.peekN(1) == '\n') {
			l.pos++
		}
		return Token{Kind: LineComment}
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment()
	case isDigit(ch):
		return l.scanNumber()
	case ch == '"':
		return l.scanString()
	case ch == '\'':
		return l.scanChar()
	}

	if r, size := l.peekRune(); isIdentStart(r) {
		start := l.pos
		l.pos += size
		for {
			r, size := l.peekRune()
			if size == 0 || !isIdentContinue(r) {
				break
			}
			l.pos += size
		}
		return Token{Kind: LookupKeyword(l.input[start:l.pos])}
	}

	if kind, n := matchPunct(l.input[l.pos:]); n > 0 {
		l.pos += n
		return Token{Kind: kind}
	}

	start := l.pos
	_, size := l.peekRune()
	l.pos += size
	l.errorf(start, "unexpected character %q", l.input[start:l.pos])
	return Token{Kind: Unknown}
}

// Block comments nest. An unterminated comment extends to end of input.
func (l *Lexer) scanBlockComment() Token {
	start := l.pos
	l.pos += 2
	depth := 1
	for depth > 0 {
		switch {
		case l.atEnd():
			l.errorf(start, "unterminated block comment")
			return Token{Kind: BlockComment}
		case l.peek() == '/' && l.peekN(1) == '*':
			depth++
			l.pos += 2
		case l.peek() == '*' && l.peekN(1) == '/':
			depth--
			l.pos += 2
		default:
			l.pos++
		}
	}
	return Token{Kind: BlockComment}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	if l.peek() == '0' {
		if base := basePrefix(l.peekN(1)); base != 0 {
			return l.scanPrefixedInt(start, base)
		}
	}

	l.scanDigits(isDigit)
	kind := Int

	// A fraction needs a digit after the dot so that `1..2` and `1.foo`
	// keep their dots; after a `.` token the number is a tuple index.
	if l.peek() == '.' && isDigit(l.peekN(1)) && l.prev != Dot {
		kind = Float
		l.pos++
		l.scanDigits(isDigit)
	}
	if e := l.peek(); e == 'e' || e == 'E' {
		next := 1
		if s := l.peekN(1); s == '+' || s == '-' {
			next = 2
		}
		if isDigit(l.peekN(next)) {
			kind = Float
			l.pos += next
			l.scanDigits(isDigit)
		}
	}
	return Token{Kind: kind, Value: stripSeparators(l.input[start:l.pos])}
}

func (l *Lexer) scanPrefixedInt(start int, base int) Token {
	l.pos += 2
	digitsStart := l.pos
	for {
		r, size := l.peekRune()
		if size == 0 || !isIdentContinue(r) {
			break
		}
		l.pos += size
	}
	digits := stripSeparators(l.input[digitsStart:l.pos])
	switch {
	case digits == "":
		l.errorf(start, "missing digits after integer base prefix")
	default:
		for _, d := range digits {
			if !isDigitInBase(d, base) {
				l.errorf(start, "invalid digit %q in base %d literal", d, base)
				break
			}
		}
	}
	return Token{Kind: Int, Value: stripSeparators(l.input[start:l.pos])}
}

func (l *Lexer) scanDigits(accept func(byte) bool) {
	for accept(l.peek()) || (l.peek() == '_' && !l.atEnd()) {
		l.pos++
	}
}

// Strings may not span lines. An unterminated string stops before the line
// break (or at end of input) and is reported.
func (l *Lexer) scanString() Token {
	start := l.pos
	l.pos++
	bodyStart := l.pos
	for {
		switch ch := l.peek(); {
		case l.atEnd() || ch == '\n' || (ch == '\r' && l.peekN(1) == '\n'):
			value, errs := Unescape(l.input[bodyStart:l.pos])
			l.escapeErrors(bodyStart, errs)
			l.errorf(start, "unterminated string literal")
			return Token{Kind: String, Value: value}
		case ch == '"':
			value, errs := Unescape(l.input[bodyStart:l.pos])
			l.escapeErrors(bodyStart, errs)
			l.pos++
			return Token{Kind: String, Value: value}
		case ch == '\\':
			l.pos++
			if !l.atEnd() && l.peek() != '\n' {
				_, size := l.peekRune()
				l.pos += size
			}
		default:
			_, size := l.peekRune()
			l.pos += size
		}
	}
}

func (l *Lexer) scanChar() Token {
	start := l.pos
	l.pos++
	bodyStart := l.pos
	for {
		switch ch := l.peek(); {
		case l.atEnd() || ch == '\n' || (ch == '\r' && l.peekN(1) == '\n'):
			value, _ := Unescape(l.input[bodyStart:l.pos])
			l.errorf(start, "unterminated character literal")
			return Token{Kind: Char, Value: value}
		case ch == '\'':
			value, errs := Unescape(l.input[bodyStart:l.pos])
			l.escapeErrors(bodyStart, errs)
			l.pos++
			switch utf8.RuneCountInString(value) {
			case 0:
				l.errorf(start, "empty character literal")
			case 1:
			default:
				l.errorf(start, "character literal must contain exactly one character")
			}
			return Token{Kind: Char, Value: value}
		case ch == '\\':
			l.pos++
			if !l.atEnd() && l.peek() != '\n' {
				_, size := l.peekRune()
				l.pos += size
			}
		default:
			_, size := l.peekRune()
			l.pos += size
		}
	}
}

func (l *Lexer) escapeErrors(base int, errs []EscapeError) {
	for _, e := range errs {
		l.errors = append(l.errors, Error{
			Span:    source.NewSpan(base+e.Offset, base+e.Offset+e.Len),
			Message: e.Message,
		})
	}
}

type punct struct {
	text string
	kind TokenKind
}

// Ordered longest first so the first prefix match is the maximal munch.
var puncts = []punct{
	{"::", ColonColon}, {"..", DotDot}, {"->", Arrow}, {"=>", FatArrow},
	{"==", EqEq}, {"!=", BangEq}, {"<=", LtEq}, {">=", GtEq},
	{"&&", AmpAmp}, {"||", PipePipe}, {"<<", Shl}, {">>", Shr},
	{"+=", PlusEq}, {"-=", MinusEq}, {"*=", StarEq}, {"/=", SlashEq}, {"%=", PercentEq},
	{"(", LParen}, {")", RParen}, {"{", LBrace}, {"}", RBrace},
	{"[", LBracket}, {"]", RBracket}, {",", Comma}, {";", Semicolon},
	{":", Colon}, {".", Dot}, {"?", Question}, {"=", Eq}, {"!", Bang},
	{"<", Lt}, {">", Gt}, {"+", Plus}, {"-", Minus}, {"*", Star},
	{"/", Slash}, {"%", Percent}, {"&", Amp}, {"|", Pipe}, {"^", Caret},
}

func matchPunct(s string) (TokenKind, int) {
	for _, p := range puncts {
		if len(s) >= len(p.text) && s[:len(p.text)] == p.text {
			return p.kind, len(p.text)
		}
	}
	return Unknown, 0
}

func basePrefix(ch byte) int {
	switch ch {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func isDigitInBase(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	default:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
}

func stripSeparators(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(r rune) bool {
	if r < utf8.RuneSelf {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
	}
	return unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStart(r) || (r >= '0' && r <= '9')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
