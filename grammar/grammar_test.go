package grammar

import (
	"strings"
	"testing"

	"github.com/danue1/danube/syntax"
)

func TestEmbeddedGrammarVerifies(t *testing.T) {
	g, err := Embedded()
	if err != nil {
		t.Fatalf("embedded grammar: %v\n%s", err, strings.Join(Errors(err), "\n"))
	}
	if _, ok := g[Start]; !ok {
		t.Errorf("no %s production", Start)
	}
}

func TestEveryNodeKindHasAProduction(t *testing.T) {
	g, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range syntax.NodeKinds() {
		if k == syntax.Error {
			continue
		}
		if _, ok := g[k.String()]; !ok {
			t.Errorf("node kind %s has no production", k)
		}
	}
}

func TestVerifyReportsProblems(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start string
		fail  bool
	}{
		{"valid", `A = "a" B . B = "b" .`, "A", false},
		{"syntax only", `A = "a" B .`, "", false},
		{"undefined", `A = "a" B .`, "A", true},
		{"unreachable", `A = "a" . B = "b" .`, "A", true},
		{"bad syntax", `A = "a"`, "A", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.name, strings.NewReader(tt.src), tt.start)
			if tt.fail && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.fail && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.fail && len(Errors(err)) == 0 {
				t.Error("Errors returned nothing")
			}
		})
	}
}

func TestProductionsOrder(t *testing.T) {
	g, err := Verify("t", strings.NewReader(`B = a A . A = "x" . a = "y" .`), "B")
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(Productions(g), " ")
	if got != "A B a" {
		t.Errorf("got %q", got)
	}
}
