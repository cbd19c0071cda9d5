package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/danue1/danube/ast"
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/source"
	"github.com/danue1/danube/syntax"
)

type named interface {
	ast.Node
	Name() (ast.Name, bool)
}

// documentSymbols lists the items of file as an outline. Items without a
// name (a partially typed `fn`) are left out; impls are named after their
// types.
func documentSymbols(lines *source.LineIndex, items []ast.Item) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, item := range items {
		if sym, ok := itemSymbol(lines, item); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func itemSymbol(lines *source.LineIndex, item ast.Item) (protocol.DocumentSymbol, bool) {
	switch it := item.(type) {
	case ast.Function:
		sym, ok := symbol(lines, it, protocol.SymbolKindFunction)
		if params, has := it.ParamList(); has && ok {
			detail := oneLine(params.Syntax().Text())
			if ret, has := it.RetType(); has {
				detail += " " + oneLine(ret.Syntax().Text())
			}
			sym.Detail = &detail
		}
		return sym, ok
	case ast.Struct:
		sym, ok := symbol(lines, it, protocol.SymbolKindStruct)
		if fields, has := it.NamedFields(); has && ok {
			for _, f := range fields.Fields() {
				if child, ok := symbol(lines, f, protocol.SymbolKindField); ok {
					sym.Children = append(sym.Children, child)
				}
			}
		}
		return sym, ok
	case ast.Enum:
		sym, ok := symbol(lines, it, protocol.SymbolKindEnum)
		if ok {
			for _, v := range it.Variants() {
				if child, ok := symbol(lines, v, protocol.SymbolKindEnumMember); ok {
					sym.Children = append(sym.Children, child)
				}
			}
		}
		return sym, ok
	case ast.Const:
		return symbol(lines, it, protocol.SymbolKindConstant)
	case ast.TypeAlias:
		return symbol(lines, it, protocol.SymbolKindTypeParameter)
	case ast.Trait:
		sym, ok := symbol(lines, it, protocol.SymbolKindInterface)
		if list, has := it.ItemList(); has && ok {
			sym.Children = documentSymbols(lines, list.Items())
		}
		return sym, ok
	case ast.Module:
		sym, ok := symbol(lines, it, protocol.SymbolKindModule)
		if list, has := it.ItemList(); has && ok {
			sym.Children = documentSymbols(lines, list.Items())
		}
		return sym, ok
	case ast.Impl:
		self, ok := it.SelfType()
		if !ok {
			return protocol.DocumentSymbol{}, false
		}
		name := "impl " + oneLine(self.Syntax().Text())
		if trait, ok := it.Trait(); ok {
			name = "impl " + oneLine(trait.Syntax().Text()) + " for " + oneLine(self.Syntax().Text())
		}
		sym := protocol.DocumentSymbol{
			Name:           name,
			Kind:           protocol.SymbolKindClass,
			Range:          toRange(lines, it.Syntax().Span()),
			SelectionRange: toRange(lines, self.Syntax().Span()),
		}
		if list, has := it.ItemList(); has {
			sym.Children = documentSymbols(lines, list.Items())
		}
		return sym, true
	}
	// Use declarations have no outline entry.
	return protocol.DocumentSymbol{}, false
}

func symbol(lines *source.LineIndex, n named, kind protocol.SymbolKind) (protocol.DocumentSymbol, bool) {
	name, ok := n.Name()
	if !ok || name.Ident() == "" {
		return protocol.DocumentSymbol{}, false
	}
	return protocol.DocumentSymbol{
		Name:           name.Ident(),
		Kind:           kind,
		Range:          toRange(lines, n.Syntax().Span()),
		SelectionRange: toRange(lines, name.Syntax().Span()),
	}, true
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var foldable = map[syntax.SyntaxKind]bool{
	syntax.BlockExpression: true,
	syntax.NamedFieldList:  true,
	syntax.VariantList:     true,
	syntax.ItemList:        true,
	syntax.MatchArmList:    true,
	syntax.UseTreeList:     true,
	syntax.RecordFieldList: true,
	syntax.ArgList:         true,
	syntax.ArrayExpression: true,
}

// foldingRanges returns one range per bracketed region or block comment
// that spans more than one line. Lines are zero-based.
func foldingRanges(lines *source.LineIndex, root *syntax.SyntaxNode) []protocol.FoldingRange {
	ranges := []protocol.FoldingRange{}
	add := func(span source.Span, kind *string) {
		start := lines.Position(span.Start).Line
		end := lines.Position(span.End).Line
		if end <= start {
			return
		}
		ranges = append(ranges, protocol.FoldingRange{
			StartLine: protocol.UInteger(start - 1),
			EndLine:   protocol.UInteger(end - 1),
			Kind:      kind,
		})
	}
	root.Preorder(func(n *syntax.SyntaxNode) bool {
		if foldable[n.Kind()] {
			add(n.Span(), nil)
		}
		return true
	})
	comment := string(protocol.FoldingRangeKindComment)
	for _, tok := range root.Tokens() {
		if tok.Kind() == syntax.TokenKind(lexer.BlockComment) {
			add(tok.Span(), &comment)
		}
	}
	return ranges
}
