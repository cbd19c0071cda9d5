package syntax

import (
	"fmt"
	"strings"
)

// Debug renders the subtree as an indented listing, one element per line:
// nodes as "Kind@start..end" and tokens with their quoted text.
func Debug(n *SyntaxNode) string {
	var sb strings.Builder
	debugNode(&sb, n, 0)
	return sb.String()
}

func debugNode(sb *strings.Builder, n *SyntaxNode, depth int) {
	fmt.Fprintf(sb, "%s%v@%v\n", strings.Repeat("  ", depth), n.Kind(), n.Span())
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *SyntaxNode:
			debugNode(sb, c, depth+1)
		case *SyntaxToken:
			fmt.Fprintf(sb, "%s%v@%v %q\n", strings.Repeat("  ", depth+1), c.Kind(), c.Span(), c.Text())
		}
	}
}

// Shape renders only the node structure as nested S-expressions, with
// significant tokens inline, e.g. (BinaryExpression (Literal 1) + (Literal 2)).
// Trivia is omitted. It is meant for compact assertions.
func Shape(n *SyntaxNode) string {
	var sb strings.Builder
	shape(&sb, n)
	return sb.String()
}

func shape(sb *strings.Builder, n *SyntaxNode) {
	sb.WriteString("(")
	sb.WriteString(n.Kind().String())
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *SyntaxNode:
			sb.WriteString(" ")
			shape(sb, c)
		case *SyntaxToken:
			if c.Kind().IsTrivia() {
				continue
			}
			sb.WriteString(" ")
			sb.WriteString(c.Text())
		}
	}
	sb.WriteString(")")
}
