package ast

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danue1/danube/ast/owned"
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/parser"
	"github.com/danue1/danube/syntax"
)

func parse(t *testing.T, src string) (SourceFile, *parser.Result) {
	t.Helper()
	res := parser.Parse(src)
	file, ok := CastSourceFile(res.Root())
	require.True(t, ok)
	return file, res
}

// nodeOf builds a detached SourceFile holding one empty node of kind.
func nodeOf(kind syntax.SyntaxKind) *syntax.SyntaxNode {
	b := syntax.NewBuilder()
	b.StartNode(syntax.SourceFile)
	b.StartNode(kind)
	b.FinishNode()
	b.FinishNode()
	return syntax.NewRoot(b.Finish()).FirstChild()
}

func TestCastsCheckKindExactly(t *testing.T) {
	unions := map[string]struct {
		cast  func(*syntax.SyntaxNode) bool
		kinds []syntax.SyntaxKind
	}{
		"Item": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastItem(n); return ok },
			[]syntax.SyntaxKind{syntax.Function, syntax.Struct, syntax.Enum, syntax.Use, syntax.Const,
				syntax.TypeAlias, syntax.Impl, syntax.Trait, syntax.Module},
		},
		"Type": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastType(n); return ok },
			[]syntax.SyntaxKind{syntax.PathType, syntax.TupleType, syntax.ArrayType},
		},
		"Pattern": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastPattern(n); return ok },
			[]syntax.SyntaxKind{syntax.IdentPattern, syntax.WildcardPattern, syntax.LiteralPattern,
				syntax.PathPattern, syntax.TupleStructPattern, syntax.TuplePattern},
		},
		"Stmt": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastStmt(n); return ok },
			[]syntax.SyntaxKind{syntax.LetStatement, syntax.ExpressionStatement},
		},
		"Expr": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastExpr(n); return ok },
			[]syntax.SyntaxKind{syntax.Literal, syntax.PathExpression, syntax.BlockExpression,
				syntax.IfExpression, syntax.WhileExpression, syntax.LoopExpression, syntax.ForExpression,
				syntax.MatchExpression, syntax.ReturnExpression, syntax.BreakExpression,
				syntax.ContinueExpression, syntax.ParenExpression, syntax.TupleExpression,
				syntax.ArrayExpression, syntax.StructExpression, syntax.PrefixExpression,
				syntax.BinaryExpression, syntax.CallExpression, syntax.FieldExpression,
				syntax.IndexExpression, syntax.TryExpression},
		},
		"Function": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastFunction(n); return ok },
			[]syntax.SyntaxKind{syntax.Function},
		},
		"BinaryExpr": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastBinaryExpr(n); return ok },
			[]syntax.SyntaxKind{syntax.BinaryExpression},
		},
		"MatchArm": {
			func(n *syntax.SyntaxNode) bool { _, ok := CastMatchArm(n); return ok },
			[]syntax.SyntaxKind{syntax.MatchArm},
		},
	}

	for name, u := range unions {
		t.Run(name, func(t *testing.T) {
			want := map[syntax.SyntaxKind]bool{}
			for _, k := range u.kinds {
				want[k] = true
			}
			assert.False(t, u.cast(nil))
			for _, k := range syntax.NodeKinds() {
				assert.Equal(t, want[k], u.cast(nodeOf(k)), "kind %s", k)
			}
		})
	}
}

func TestErrorNodesNeverCast(t *testing.T) {
	n := nodeOf(syntax.Error)
	_, ok := CastItem(n)
	assert.False(t, ok)
	_, ok = CastExpr(n)
	assert.False(t, ok)
	_, ok = CastPattern(n)
	assert.False(t, ok)
}

func TestFunctionAccessors(t *testing.T) {
	file, res := parse(t, "pub fn add(self, a: i32, mut b: i32) -> i32 { a + b }")
	require.False(t, res.HasErrors())

	items := file.Items()
	require.Len(t, items, 1)
	fn, ok := items[0].(Function)
	require.True(t, ok)

	assert.True(t, fn.IsPublic())
	name, ok := fn.Name()
	require.True(t, ok)
	assert.Equal(t, "add", name.Ident())

	params, ok := fn.ParamList()
	require.True(t, ok)
	_, ok = params.SelfParam()
	assert.True(t, ok)
	ps := params.Params()
	require.Len(t, ps, 2)
	assert.False(t, ps[0].IsMut())
	assert.True(t, ps[1].IsMut())
	ty, ok := ps[1].Type()
	require.True(t, ok)
	assert.Equal(t, "i32", ty.Syntax().Text())

	ret, ok := fn.RetType()
	require.True(t, ok)
	_, ok = ret.Type()
	assert.True(t, ok)

	body, ok := fn.Body()
	require.True(t, ok)
	assert.Empty(t, body.Statements())
	tail, ok := body.Tail()
	require.True(t, ok)
	bin, ok := tail.(BinaryExpr)
	require.True(t, ok)
	op, ok := bin.Op()
	require.True(t, ok)
	assert.Equal(t, "+", op.Text())
	lhs, _ := bin.LHS()
	rhs, _ := bin.RHS()
	assert.Equal(t, "a", lhs.Syntax().Text())
	assert.Equal(t, "b", rhs.Syntax().Text())
}

func TestPositionalAccessors(t *testing.T) {
	file, res := parse(t, "fn f() { if a { 1 } else if b { 2 } else { 3 } }")
	require.False(t, res.HasErrors())

	fn := file.Items()[0].(Function)
	body, _ := fn.Body()
	tail, ok := body.Tail()
	require.True(t, ok)
	ifx, ok := tail.(IfExpr)
	require.True(t, ok)

	cond, ok := ifx.Condition()
	require.True(t, ok)
	assert.Equal(t, syntax.PathExpression, cond.Syntax().Kind())
	then, ok := ifx.Then()
	require.True(t, ok)
	assert.Equal(t, "{ 1 }", then.Text())
	els, ok := ifx.Else()
	require.True(t, ok)
	nested, ok := els.(IfExpr)
	require.True(t, ok)
	last, ok := nested.Else()
	require.True(t, ok)
	assert.IsType(t, BlockExpr{}, last)
}

func TestImplAccessors(t *testing.T) {
	file, _ := parse(t, "impl Show for Point { fn show(self) {} }\nimpl Point {}")
	items := file.Items()
	require.Len(t, items, 2)

	withTrait := items[0].(Impl)
	tr, ok := withTrait.Trait()
	require.True(t, ok)
	assert.Equal(t, "Show", tr.Syntax().Text())
	self, ok := withTrait.SelfType()
	require.True(t, ok)
	assert.Equal(t, "Point", self.Syntax().Text())
	list, ok := withTrait.ItemList()
	require.True(t, ok)
	assert.Len(t, list.Items(), 1)

	inherent := items[1].(Impl)
	_, ok = inherent.Trait()
	assert.False(t, ok)
	self, ok = inherent.SelfType()
	require.True(t, ok)
	assert.Equal(t, "Point", self.Syntax().Text())
}

func TestUseTreeAccessors(t *testing.T) {
	file, _ := parse(t, "use a::b::{self, c::*};")
	use := file.Items()[0].(Use)
	tree, ok := use.Tree()
	require.True(t, ok)
	path, ok := tree.Path()
	require.True(t, ok)
	segs := path.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, "b", segs[1].Ident())

	kids := tree.Children()
	require.Len(t, kids, 2)
	first, _ := kids[0].Path()
	assert.True(t, first.Segments()[0].IsSelf())
	assert.Equal(t, "self", first.Segments()[0].Ident())
	assert.True(t, kids[1].IsGlob())
}

func TestAccessorsOnBrokenTree(t *testing.T) {
	file, res := parse(t, "fn (")
	require.True(t, res.HasErrors())
	fn, ok := file.Items()[0].(Function)
	require.True(t, ok)
	_, ok = fn.Name()
	assert.False(t, ok)
	_, ok = fn.Body()
	assert.False(t, ok)
	_, ok = fn.RetType()
	assert.False(t, ok)
}

func TestLiteralPatternToken(t *testing.T) {
	res := parser.ParsePattern("-42")
	lit, ok := CastLiteralPattern(res.Root().FirstChild())
	require.True(t, ok)
	assert.True(t, lit.IsNegative())
	tok, ok := lit.Token()
	require.True(t, ok)
	k, _ := tok.Kind().AsToken()
	assert.Equal(t, lexer.Int, k)
	assert.Equal(t, "42", tok.Text())
}

func TestFieldExprField(t *testing.T) {
	res := parser.ParseExpression("t.0.name")
	outer, ok := CastFieldExpr(res.Root().FirstChild())
	require.True(t, ok)
	name, ok := outer.Field()
	require.True(t, ok)
	assert.Equal(t, "name", name)

	recv, ok := outer.Receiver()
	require.True(t, ok)
	inner := recv.(FieldExpr)
	idx, ok := inner.Field()
	require.True(t, ok)
	assert.Equal(t, "0", idx)
}

func TestLowerTestdata(t *testing.T) {
	for _, name := range []string{"items.dn", "exprs.dn"} {
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile("../testdata/" + name)
			require.NoError(t, err)
			file, res := parse(t, string(src))
			require.Empty(t, res.Diagnostics)

			in := intern.New()
			out, err := LowerSourceFile(file, res.Diagnostics, in)
			require.NoError(t, err)
			assert.Empty(t, out.Skipped)
			assert.Len(t, out.Items, len(file.Items()))
			assert.NotPanics(t, func() { owned.Dump(out, in) })
		})
	}
}

func TestLowerSkipsBrokenItems(t *testing.T) {
	src := "fn ok() {}\nfn bad() { let = 1; }\nstruct S;"
	file, res := parse(t, src)
	require.True(t, res.HasErrors())

	out, err := LowerSourceFile(file, res.Diagnostics, intern.New())
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.IsType(t, &owned.Function{}, out.Items[0])
	assert.IsType(t, &owned.Struct{}, out.Items[1])
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, 11, out.Skipped[0].Start)
}

func TestLowerSkipsItemsWithDiagnosticsOnly(t *testing.T) {
	// "fn f() {" reports a missing brace but has no Error node.
	file, res := parse(t, "fn f() {")
	require.True(t, res.HasErrors())
	require.False(t, res.Root().ContainsError())

	out, err := LowerSourceFile(file, res.Diagnostics, intern.New())
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Len(t, out.Skipped, 1)
}

func TestLowerInternalError(t *testing.T) {
	b := syntax.NewBuilder()
	b.StartNode(syntax.SourceFile)
	b.StartNode(syntax.Function)
	b.Token(syntax.TokenKind(lexer.KwFn), "fn")
	b.FinishNode()
	b.FinishNode()
	file, ok := CastSourceFile(syntax.NewRoot(b.Finish()))
	require.True(t, ok)

	_, err := LowerSourceFile(file, nil, intern.New())
	var ie *InternalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, syntax.Function, ie.Kind)
	assert.Equal(t, "name", ie.Child)
	assert.Equal(t, "ast: Function at 0..2 has no name", err.Error())
}

func TestLowerDump(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{
			"fn main() { let x = 1 + 2 * 3; }",
			"(file (items (fn main (params) (block (stmts (let (bind x) (binary + (int 1) (binary * (int 2) (int 3)))))))))",
		},
		{
			"pub struct P { pub x: i32, y: [u8; 4] }",
			"(file (items (struct pub P (named (field pub x (path-type i32)) (field y (array-type (path-type u8) (int 4)))))))",
		},
		{
			"enum E { A, B(i32) }",
			"(file (items (enum E (variants (variant A) (variant B (tuple (field (path-type i32))))))))",
		},
		{
			"use a::{self, b::*};",
			"(file (items (use (use-tree a (children (use-tree self) (use-tree b glob))))))",
		},
		{
			`const S: str = "a\tb";`,
			`(file (items (const S (path-type str) (string "a\tb"))))`,
		},
		{
			"fn f(mut n: i32) { match n { -1 | _ => {} } }",
			"",
		},
		{
			"fn f() { p.0?; g(1, x) }",
			"(file (items (fn f (params) (block (stmts (expr-stmt (try (field (path p) 0)) semi)) (call (path g) (args (int 1) (path x)))))))",
		},
		{
			"fn f() -> (i32, bool) { Point { x, y: 1_000 } }",
			"(file (items (fn f (params) (tuple-type (elems (path-type i32) (path-type bool))) (block (stmts) (struct-lit Point (fields (field x) (field y (int 1000))))))))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			file, res := parse(t, tt.src)
			in := intern.New()
			out, err := LowerSourceFile(file, res.Diagnostics, in)
			require.NoError(t, err)
			if tt.want == "" {
				assert.NotEmpty(t, out.Skipped)
				return
			}
			require.Empty(t, res.Diagnostics)
			assert.Equal(t, tt.want, owned.Dump(out, in))
		})
	}
}
