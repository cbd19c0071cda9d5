package grammar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"

	srcpos "github.com/danue1/danube/source"
)

func recognizer(t *testing.T) *Recognizer {
	t.Helper()
	g, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRecognizer(g, Start)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRecognizeSamples(t *testing.T) {
	r := recognizer(t)
	for _, name := range []string{"exprs.dn", "items.dn"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("..", "testdata", name))
			if err != nil {
				t.Fatal(err)
			}
			if err := r.RecognizeSource(string(data)); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestRecognizeRejectsBrokenFile(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "broken.dn"))
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	err = recognizer(t).RecognizeSource(src)

	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, want a SyntaxError", err)
	}
	if pos := srcpos.NewLineIndex(src).Position(serr.Offset); pos != (srcpos.Position{Line: 3, Column: 12}) {
		t.Errorf("error at %s, want 3:12", pos)
	}
	if serr.Found != `"{"` {
		t.Errorf("found %s", serr.Found)
	}
	if !contains(serr.Expected, `")"`) || !contains(serr.Expected, "ident") {
		t.Errorf("expected set %v lacks \")\" or ident", serr.Expected)
	}
}

func TestRecognizeSnippets(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"empty", "", true},
		{"unit fn", "fn f() {}", true},
		{"tail expr", "fn f() -> i32 { let x = 1; x + 1 }", true},
		{"generic type", "fn f(x: Vec<i32>) {}", false},
		{"missing semicolon", "const X: u8 = 1", false},
		{"struct literal", "fn f() { P { x: 1, y } }", true},
		{"tuple field", "fn f() { t.0 }", true},
		{"trailing commas", "enum E { A(i32,), B { x: u8, }, }", true},
	}
	r := recognizer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.RecognizeSource(tt.src)
			if tt.ok && err != nil {
				t.Errorf("rejected: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("accepted")
			}
		})
	}
}

func TestRecognizeAmbiguousGrammar(t *testing.T) {
	src := `E = E "+" E | "n" .`
	g, err := ebnf.Parse("amb", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRecognizer(g, "E")
	if err != nil {
		t.Fatal(err)
	}
	toks := func(s string) []Terminal {
		var out []Terminal
		for i, f := range strings.Fields(s) {
			out = append(out, Terminal{Text: f, Offset: i})
		}
		return out
	}
	if err := r.Recognize(toks("n + n + n"), 5); err != nil {
		t.Errorf("rejected: %v", err)
	}
	err = r.Recognize(toks("n + n +"), 3)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v", err)
	}
	if serr.Found != "end of input" || serr.Offset != 3 {
		t.Errorf("got %+v", serr)
	}
}

func TestNewRecognizerRejectsRangesInSyntax(t *testing.T) {
	g, err := ebnf.Parse("r", strings.NewReader(`S = "a" … "z" .`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRecognizer(g, "S"); err == nil {
		t.Error("expected an error")
	}
	if _, err := NewRecognizer(g, "T"); err == nil {
		t.Error("expected an error for a missing start")
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
