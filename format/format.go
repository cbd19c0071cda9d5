// Package format renders syntax trees, token streams and lowered files for
// the command line tools.
package format

import (
	"github.com/danue1/danube/syntax"
)

// TreeEncoder writes a syntax tree.
type TreeEncoder interface {
	Encode(root *syntax.SyntaxNode) error
	MarshalText(root *syntax.SyntaxNode) ([]byte, error)
}

var (
	_ TreeEncoder = (*TreeJSONEncoder)(nil)
	_ TreeEncoder = (*TreeTextEncoder)(nil)
)
