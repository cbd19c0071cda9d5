package syntax

import (
	"testing"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/source"
)

// buildSample builds the tree for "a + bc;" by hand:
//
//	SourceFile
//	  ExpressionStatement
//	    BinaryExpression
//	      PathExpression "a"
//	      " " "+" " "
//	      PathExpression "bc"
//	    ";"
func buildSample() *GreenNode {
	b := NewBuilder()
	b.StartNode(SourceFile)
	b.StartNode(ExpressionStatement)
	b.StartNode(BinaryExpression)
	b.StartNode(PathExpression)
	b.Token(TokenKind(lexer.Ident), "a")
	b.FinishNode()
	b.Token(TokenKind(lexer.Whitespace), " ")
	b.Token(TokenKind(lexer.Plus), "+")
	b.Token(TokenKind(lexer.Whitespace), " ")
	b.StartNode(PathExpression)
	b.Token(TokenKind(lexer.Ident), "bc")
	b.FinishNode()
	b.FinishNode()
	b.Token(TokenKind(lexer.Semicolon), ";")
	b.FinishNode()
	b.FinishNode()
	return b.Finish()
}

func TestBuilderText(t *testing.T) {
	green := buildSample()
	if got := green.Text(); got != "a + bc;" {
		t.Errorf("Text() = %q", got)
	}
	if green.Width() != 7 {
		t.Errorf("Width() = %d, want 7", green.Width())
	}
}

func TestBuilderSharesTokens(t *testing.T) {
	green := buildSample()
	bin := green.Children()[0].(*GreenNode).Children()[0].(*GreenNode)
	ws1, ws2 := bin.Children()[1], bin.Children()[3]
	if ws1 != ws2 {
		t.Error("identical whitespace tokens should share storage")
	}
}

func TestBuilderPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"finish without start", func() { NewBuilder().FinishNode() }},
		{"token outside node", func() { NewBuilder().Token(TokenKind(lexer.Ident), "x") }},
		{"unbalanced", func() {
			b := NewBuilder()
			b.StartNode(SourceFile)
			b.Finish()
		}},
		{"token kind as node", func() { NewBuilder().StartNode(TokenKind(lexer.Ident)) }},
		{"empty", func() { NewBuilder().Finish() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestSyntaxNodeNavigation(t *testing.T) {
	root := NewRoot(buildSample())
	if root.Parent() != nil {
		t.Fatal("root has a parent")
	}
	stmt := root.FirstChild()
	if stmt.Kind() != ExpressionStatement {
		t.Fatalf("first child = %v", stmt.Kind())
	}
	bin := stmt.FirstChild()
	lhs := bin.FirstChild()
	rhs := bin.LastChild()
	if lhs.Text() != "a" || rhs.Text() != "bc" {
		t.Fatalf("lhs=%q rhs=%q", lhs.Text(), rhs.Text())
	}
	if got := rhs.Span(); got != source.NewSpan(4, 6) {
		t.Errorf("rhs span = %v, want 4..6", got)
	}
	if !lhs.NextSibling().Equal(rhs) {
		t.Error("lhs.NextSibling() should be rhs")
	}
	if !rhs.PrevSibling().Equal(lhs) {
		t.Error("rhs.PrevSibling() should be lhs")
	}
	if rhs.NextSibling() != nil {
		t.Error("rhs has no next sibling node")
	}
	if !rhs.Parent().Equal(bin) {
		t.Error("parent mismatch")
	}
	if n := len(rhs.Ancestors()); n != 4 {
		t.Errorf("len(Ancestors()) = %d, want 4", n)
	}
	if n := len(root.Descendants()); n != 5 {
		t.Errorf("len(Descendants()) = %d, want 5", n)
	}
	if n := len(bin.ChildrenWithTokens()); n != 5 {
		t.Errorf("len(ChildrenWithTokens()) = %d, want 5", n)
	}
}

func TestSyntaxTokenNavigation(t *testing.T) {
	root := NewRoot(buildSample())
	var texts []string
	for tok := root.FirstToken(); tok != nil; tok = tok.NextToken() {
		texts = append(texts, tok.Text())
	}
	want := []string{"a", " ", "+", " ", "bc", ";"}
	if len(texts) != len(want) {
		t.Fatalf("tokens = %q, want %q", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, texts[i], want[i])
		}
	}

	last := root.LastToken()
	if last.Text() != ";" {
		t.Fatalf("LastToken() = %q", last.Text())
	}
	if prev := last.PrevToken(); prev.Text() != "bc" {
		t.Errorf("PrevToken() = %q", prev.Text())
	}
	if root.FirstToken().PrevToken() != nil {
		t.Error("first token has no predecessor")
	}
	if len(root.Tokens()) != 6 {
		t.Errorf("len(Tokens()) = %d", len(root.Tokens()))
	}
}

func TestTokenAtOffsetAndCovering(t *testing.T) {
	root := NewRoot(buildSample())
	tests := []struct {
		offset int
		want   string
	}{
		{0, "a"},
		{1, " "},
		{2, "+"},
		{5, "bc"},
		{6, ";"},
		{7, ";"},
	}
	for _, tt := range tests {
		tok := root.TokenAtOffset(tt.offset)
		if tok == nil || tok.Text() != tt.want {
			t.Errorf("TokenAtOffset(%d) = %v, want %q", tt.offset, tok, tt.want)
		}
	}
	if root.TokenAtOffset(8) != nil {
		t.Error("offset past end should yield nil")
	}

	if n := root.CoveringNode(source.NewSpan(4, 5)); n.Kind() != PathExpression {
		t.Errorf("CoveringNode(4..5) = %v", n.Kind())
	}
	if n := root.CoveringNode(source.NewSpan(0, 6)); n.Kind() != BinaryExpression {
		t.Errorf("CoveringNode(0..6) = %v", n.Kind())
	}
}

func TestContainsError(t *testing.T) {
	if NewRoot(buildSample()).ContainsError() {
		t.Error("sample has no error node")
	}
	b := NewBuilder()
	b.StartNode(SourceFile)
	b.StartNode(Error)
	b.Token(TokenKind(lexer.RBrace), "}")
	b.FinishNode()
	b.FinishNode()
	if !NewRoot(b.Finish()).ContainsError() {
		t.Error("expected error node to be found")
	}
}

func TestShapeAndDebug(t *testing.T) {
	root := NewRoot(buildSample())
	want := "(SourceFile (ExpressionStatement (BinaryExpression (PathExpression a) + (PathExpression bc)) ;))"
	if got := Shape(root); got != want {
		t.Errorf("Shape() =\n%s\nwant\n%s", got, want)
	}
	debug := Debug(root)
	if debug == "" || debug[:len("SourceFile@0..7")] != "SourceFile@0..7" {
		t.Errorf("Debug() = %q", debug)
	}
}

func TestSyntaxKindString(t *testing.T) {
	tests := []struct {
		kind SyntaxKind
		want string
	}{
		{SourceFile, "SourceFile"},
		{Error, "Error"},
		{BinaryExpression, "BinaryExpression"},
		{TokenKind(lexer.KwFn), "fn"},
		{kindEnd + 10, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	for _, k := range NodeKinds() {
		if k.IsToken() || k.String() == "Unknown" {
			t.Errorf("node kind %d is unnamed or a token", k)
		}
	}
	if !TokenKind(lexer.Whitespace).IsTrivia() || SourceFile.IsTrivia() {
		t.Error("IsTrivia misclassifies")
	}
}
