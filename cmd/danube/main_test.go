package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danue1/danube/config"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvColor, "never")
	t.Setenv(config.EnvLogLevel, "")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "lex",
			stdin: "let x",
			args:  []string{"lex"},
			want:  "let\t1:1\t0..3\t\"let\"\nIdent\t1:5\t4..5\t\"x\"\nEOF\t1:6\t5..5\t\"\"\n",
		},
		{
			name:  "parse compact",
			stdin: "fn f() {}",
			args:  []string{"parse", "-f", "compact"},
			want:  "(SourceFile (Function fn (Name f) (ParamList ( )) (BlockExpression { })))\n",
		},
		{
			name:  "lower sexpr",
			stdin: "fn f() -> i32 { 1 }",
			args:  []string{"lower", "-f", "sexpr"},
			want:  "(file (items (fn f (params) (path-type i32) (block (stmts) (int 1)))))\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error %v\n%s", err, stderr)
			}
			if stdout != tt.want {
				t.Errorf("got %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestParseReportsDiagnostics(t *testing.T) {
	_, stderr, err := run(t, "fn f( {", "parse", "-f", "compact")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("got %v, want errDiagnostics", err)
	}
	if !strings.Contains(stderr, "<stdin>:1:") {
		t.Errorf("diagnostics not rendered:\n%s", stderr)
	}
}

func TestParseUnknownEntry(t *testing.T) {
	_, _, err := run(t, "", "parse", "--entry", "statement")
	if err == nil || !strings.Contains(err.Error(), "unknown entry point") {
		t.Errorf("got %v", err)
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.dn"), []byte("fn ok() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := run(t, "", "check", dir)
	if err != nil {
		t.Fatalf("clean tree failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "1 files: 0 errors, 0 warnings") {
		t.Errorf("unexpected summary:\n%s", stderr)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.dn"), []byte("struct {"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err = run(t, "", "check", dir)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("got %v, want errDiagnostics", err)
	}
	if !strings.Contains(stderr, "bad.dn:1:") {
		t.Errorf("missing diagnostic for bad.dn:\n%s", stderr)
	}
}
