package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/source"
)

// TokenEncoder writes a token stream, one token per line as
// "kind<TAB>line:col<TAB>start..end<TAB>text[<TAB>value]", or as a JSON array.
type TokenEncoder struct {
	w      io.Writer
	src    string
	lines  *source.LineIndex
	json   bool
	trivia bool
}

func NewTokenEncoder(w io.Writer, src string) *TokenEncoder {
	return &TokenEncoder{w: w, src: src, lines: source.NewLineIndex(src), trivia: true}
}

func (e *TokenEncoder) JSON(on bool) *TokenEncoder {
	e.json = on
	return e
}

func (e *TokenEncoder) WithTrivia(on bool) *TokenEncoder {
	e.trivia = on
	return e
}

func (e *TokenEncoder) Encode(tokens []lexer.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

type jsonToken struct {
	Kind   string      `json:"kind"`
	Span   source.Span `json:"span"`
	Line   int         `json:"line"`
	Column int         `json:"column"`
	Text   string      `json:"text"`
	Value  string      `json:"value,omitempty"`
}

func (e *TokenEncoder) MarshalText(tokens []lexer.Token) ([]byte, error) {
	if e.json {
		out := []jsonToken{}
		for _, t := range e.filter(tokens) {
			pos := e.lines.Position(t.Span.Start)
			out = append(out, jsonToken{
				Kind:   t.Kind.String(),
				Span:   t.Span,
				Line:   pos.Line,
				Column: pos.Column,
				Text:   t.Text(e.src),
				Value:  t.Value,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var sb strings.Builder
	for _, t := range e.filter(tokens) {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%q", t.Kind, e.lines.Position(t.Span.Start), t.Span, t.Text(e.src))
		if t.Value != "" && t.Value != t.Text(e.src) {
			fmt.Fprintf(&sb, "\t%q", t.Value)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

func (e *TokenEncoder) filter(tokens []lexer.Token) []lexer.Token {
	if e.trivia {
		return tokens
	}
	var out []lexer.Token
	for _, t := range tokens {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}
