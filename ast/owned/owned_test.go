package owned

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/source"
)

func sample(in *intern.Interner) *SourceFile {
	x := in.Intern("x")
	return &SourceFile{
		Base: Base{Range: source.NewSpan(0, 20)},
		Items: []Item{
			&Const{
				Public: true,
				Name:   x,
				Type:   &PathType{Path: Path{Segments: []intern.Symbol{in.Intern("std"), in.Intern("u8")}}},
				Value:  &Unary{Op: Neg, Operand: &Literal{Kind: IntLit, Value: "1"}},
			},
		},
		Skipped: []source.Span{source.NewSpan(21, 30)},
	}
}

func TestDump(t *testing.T) {
	in := intern.New()
	got := Dump(sample(in), in)
	assert.Equal(t, "(file (items (const pub x (path-type std::u8) (unary - (int 1)))) (skipped (span 21..30)))", got)
}

func TestDumpQuotesAtoms(t *testing.T) {
	in := intern.New()
	lit := &Literal{Kind: StringLit, Value: "a b"}
	assert.Equal(t, `(string "a b")`, Dump(lit, in))
	empty := &Literal{Kind: StringLit, Value: ""}
	assert.Equal(t, `(string "")`, Dump(empty, in))
}

func TestTermJSONKeepsOrder(t *testing.T) {
	in := intern.New()
	data, err := json.Marshal(ToTerm(sample(in).Items[0], in))
	require.NoError(t, err)
	assert.Equal(t,
		`{"kind":"const","pub":true,"name":"x","type":{"kind":"path-type","path":"std::u8"},"value":{"kind":"unary","op":"-","operand":{"kind":"int","value":"1"}}}`,
		string(data))
}

func TestTermYAML(t *testing.T) {
	in := intern.New()
	data, err := yaml.Marshal(ToTerm(&Binary{
		Op:  "+",
		LHS: &PathExpr{Path: Path{Segments: []intern.Symbol{in.Intern("a")}}},
		RHS: &Literal{Kind: BoolLit, Value: "true"},
	}, in))
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, "binary", back["kind"])
	assert.Equal(t, "+", back["op"])
	assert.Equal(t, map[string]any{"kind": "path", "path": "a"}, back["lhs"])
	assert.Equal(t, map[string]any{"kind": "bool", "value": "true"}, back["rhs"])
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "named", NamedStruct.String())
	assert.Equal(t, "unit", UnitStruct.String())
	assert.Equal(t, "char", CharLit.String())
}
