package lexer

import (
	"strings"
	"unicode/utf8"
)

// EscapeError describes a bad escape sequence relative to the start of the
// literal body passed to Unescape.
type EscapeError struct {
	Offset  int
	Len     int
	Message string
}

// Unescape decodes the body of a string or char literal (without quotes).
// \n, \t, \r and \0 map to their control characters and \X maps to X for
// any other character X. A trailing lone backslash is kept and reported.
func Unescape(body string) (string, []EscapeError) {
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	var errs []EscapeError
	for i := 0; i < len(body); {
		ch := body[i]
		if ch != '\\' {
			b.WriteByte(ch)
			i++
			continue
		}
		if i+1 >= len(body) {
			errs = append(errs, EscapeError{Offset: i, Len: 1, Message: "incomplete escape sequence"})
			b.WriteByte('\\')
			i++
			continue
		}
		switch body[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			_, size := utf8.DecodeRuneInString(body[i+1:])
			b.WriteString(body[i+1 : i+1+size])
			i += 1 + size
			continue
		}
		i += 2
	}
	return b.String(), errs
}
