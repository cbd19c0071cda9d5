package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runAhi(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newEbnfCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEbnfEmbeddedGrammar(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"check", []string{"check"}},
		{"coverage", []string{"coverage"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runAhi(tt.args...)
			if err != nil {
				t.Fatalf("%v\n%s", err, out)
			}
		})
	}
}

func TestEbnfList(t *testing.T) {
	out, err := runAhi("list")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "ArgList" {
		t.Errorf("first production is %q", lines[0])
	}
	if !strings.Contains(out, "\nSourceFile\n") {
		t.Error("SourceFile not listed")
	}
}

func TestEbnfCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.ebnf")
	if err := os.WriteFile(path, []byte("S = A .\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runAhi("check", path, "--start", "S")
	if err == nil {
		t.Fatal("expected an error for an undefined production")
	}
	if !strings.Contains(out, "A") {
		t.Errorf("error output does not name the production:\n%s", out)
	}

	if _, err := runAhi("check", path, "--start", ""); err != nil {
		t.Errorf("syntax-only check failed: %v", err)
	}
}

func TestEbnfRecognize(t *testing.T) {
	good := filepath.Join("..", "..", "testdata", "items.dn")
	out, err := runAhi("recognize", good)
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if !strings.Contains(out, "items.dn: ok") {
		t.Errorf("output: %s", out)
	}

	bad := filepath.Join("..", "..", "testdata", "broken.dn")
	out, err = runAhi("recognize", good, bad)
	if err == nil {
		t.Fatal("broken.dn accepted")
	}
	if !strings.Contains(out, "broken.dn:3:12: unexpected \"{\"") {
		t.Errorf("output: %s", out)
	}
}

func TestEbnfMatch(t *testing.T) {
	tests := []struct {
		args []string
		fail bool
	}{
		{[]string{"match", "int", "0x1f"}, false},
		{[]string{"match", "float", "1.5e3"}, false},
		{[]string{"match", "ident", "9lives"}, true},
		{[]string{"match", "ident", "ok!"}, true},
		{[]string{"match", "nothing", "x"}, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			_, err := runAhi(tt.args...)
			if (err != nil) != tt.fail {
				t.Errorf("err = %v, want failure %v", err, tt.fail)
			}
		})
	}
}
