package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/danue1/danube/ast"
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/parser"
)

func TestTreeTextEncoder(t *testing.T) {
	res := parser.Parse("fn f() {}")
	var buf bytes.Buffer
	if err := NewTreeTextEncoder(&buf).Encode(res.Root()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "SourceFile@0..9\n  Function@0..9\n    fn@0..2 \"fn\"\n") {
		t.Errorf("unexpected listing:\n%s", buf.String())
	}

	buf.Reset()
	if err := NewTreeTextEncoder(&buf).Compact(true).Encode(res.Root()); err != nil {
		t.Fatal(err)
	}
	want := "(SourceFile (Function fn (Name f) (ParamList ( )) (BlockExpression { })))\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTreeJSONEncoderPositions(t *testing.T) {
	src := "fn f()\n{}"
	res := parser.Parse(src)
	text, err := NewTreeJSONEncoder(nil, src).WithTrivia(false).MarshalText(res.Root())
	if err != nil {
		t.Fatal(err)
	}
	var root treeJSONNode
	if err := json.Unmarshal(text, &root); err != nil {
		t.Fatal(err)
	}
	fn := root.Children[0]
	if fn.Kind != "Function" {
		t.Fatalf("first child is %s", fn.Kind)
	}
	block := fn.Children[len(fn.Children)-1]
	if block.Kind != "BlockExpression" {
		t.Fatalf("last child of function is %s", block.Kind)
	}
	if got := block.Span.Start; got.Line != 2 || got.Column != 1 || got.Offset != 7 {
		t.Errorf("block starts at %+v", got)
	}
	for _, c := range fn.Children {
		if c.Kind == "Newline" || c.Kind == "Whitespace" {
			t.Errorf("trivia leaf %s written with trivia disabled", c.Kind)
		}
	}
}

func TestTokenEncoder(t *testing.T) {
	src := "let x = 1_0;"
	tokens, _ := lexer.Lex(src)

	tests := []struct {
		name   string
		trivia bool
		want   string
	}{
		{
			name:   "significant only",
			trivia: false,
			want: "let\t1:1\t0..3\t\"let\"\n" +
				"Ident\t1:5\t4..5\t\"x\"\n" +
				"=\t1:7\t6..7\t\"=\"\n" +
				"Int\t1:9\t8..11\t\"1_0\"\t\"10\"\n" +
				";\t1:12\t11..12\t\";\"\n" +
				"EOF\t1:13\t12..12\t\"\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTokenEncoder(&buf, src).WithTrivia(tt.trivia).Encode(tokens); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestTokenEncoderJSON(t *testing.T) {
	src := "a\n b"
	tokens, _ := lexer.Lex(src)
	text, err := NewTokenEncoder(nil, src).JSON(true).MarshalText(tokens)
	if err != nil {
		t.Fatal(err)
	}
	var out []jsonToken
	if err := json.Unmarshal(text, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(tokens) {
		t.Fatalf("got %d tokens, want %d", len(out), len(tokens))
	}
	last := out[len(out)-2]
	if last.Text != "b" || last.Line != 2 || last.Column != 2 {
		t.Errorf("unexpected token %+v", last)
	}
}

func TestLoweredEncoder(t *testing.T) {
	src := "fn f() -> i32 { 1 }"
	res := parser.Parse(src)
	file, _ := ast.CastSourceFile(res.Root())
	in := intern.New()
	lowered, err := ast.LowerSourceFile(file, res.Diagnostics, in)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		want   string
	}{
		{SExpr, "(file (items (fn f (params) (path-type i32) (block (stmts) (int 1)))))\n"},
		{JSON, `"kind": "fn"`},
		{YAML, "kind: fn"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewLoweredEncoder(&buf, in, tt.format)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.Encode(lowered); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, buf.String())
			}
		})
	}

	if _, err := NewLoweredEncoder(nil, in, "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
