package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/danue1/danube/source"
)

type recorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last() protocol.PublishDiagnosticsParams {
	return r.published[len(r.published)-1]
}

func start(t *testing.T, files map[string]string) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	s := NewServer("test")
	uri := pathToURI(root)
	result, err := s.initialize(nil, &protocol.InitializeParams{RootURI: &uri})
	require.NoError(t, err)
	init := result.(protocol.InitializeResult)
	assert.NotNil(t, init.Capabilities.DocumentSymbolProvider)
	assert.NotNil(t, init.Capabilities.FoldingRangeProvider)
	return s, root
}

func TestInitializedPublishesBrokenFiles(t *testing.T) {
	s, root := start(t, map[string]string{
		"ok.dn":  "fn ok() {}",
		"bad.dn": "fn bad( {}",
	})
	rec := &recorder{}
	require.NoError(t, s.initialized(rec.context(), &protocol.InitializedParams{}))

	require.Len(t, rec.published, 1)
	assert.Equal(t, pathToURI(filepath.Join(root, "bad.dn")), rec.last().URI)
	assert.NotEmpty(t, rec.last().Diagnostics)
}

func TestDidOpenAndChangePublishDiagnostics(t *testing.T) {
	s, root := start(t, nil)
	rec := &recorder{}
	uri := pathToURI(filepath.Join(root, "main.dn"))

	require.NoError(t, s.textDocumentDidOpen(rec.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "danube", Version: 1, Text: "fn main() {\n  let x = ;\n}"},
	}))
	require.Len(t, rec.published, 1)
	got := rec.last()
	require.NotEmpty(t, got.Diagnostics)
	d := got.Diagnostics[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "danube", *d.Source)
	assert.Equal(t, protocol.UInteger(1), d.Range.Start.Line)
	require.NotNil(t, got.Version)
	assert.Equal(t, protocol.UInteger(1), *got.Version)

	require.NoError(t, s.textDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "fn main() {\n  let x = 1;\n}"}},
	}))
	require.Len(t, rec.published, 2)
	assert.Empty(t, rec.last().Diagnostics)
}

func TestDidCloseClearsUnsavedDocuments(t *testing.T) {
	s, root := start(t, nil)
	rec := &recorder{}
	uri := pathToURI(filepath.Join(root, "scratch.dn"))

	require.NoError(t, s.textDocumentDidOpen(rec.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "fn ("},
	}))
	require.NoError(t, s.textDocumentDidClose(rec.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, rec.last().Diagnostics)
	assert.Nil(t, s.document(uri))
}

const outline = `struct Point { x: i32, y: i32 }

enum Shape {
    Circle(f64),
    Square,
}

/* a long
   comment */
impl Show for Point {
    fn show(self) -> String {
        "point"
    }
}

mod inner {
    const LIMIT: u32 = 10;
}

fn (
`

func TestDocumentSymbols(t *testing.T) {
	s, root := start(t, nil)
	uri := pathToURI(filepath.Join(root, "outline.dn"))
	require.NoError(t, s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: outline},
	}))

	result, err := s.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols := result.([]protocol.DocumentSymbol)

	var names []string
	for _, sym := range symbols {
		names = append(names, sym.Name)
	}
	assert.Equal(t, []string{"Point", "Shape", "impl Show for Point", "inner"}, names)

	point := symbols[0]
	assert.Equal(t, protocol.SymbolKindStruct, point.Kind)
	require.Len(t, point.Children, 2)
	assert.Equal(t, "y", point.Children[1].Name)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, point.SelectionRange.Start)

	shape := symbols[1]
	require.Len(t, shape.Children, 2)
	assert.Equal(t, protocol.SymbolKindEnumMember, shape.Children[0].Kind)

	impl := symbols[2]
	require.Len(t, impl.Children, 1)
	assert.Equal(t, "show", impl.Children[0].Name)
	require.NotNil(t, impl.Children[0].Detail)
	assert.Equal(t, "(self) -> String", *impl.Children[0].Detail)

	inner := symbols[3]
	assert.Equal(t, protocol.SymbolKindModule, inner.Kind)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, protocol.SymbolKindConstant, inner.Children[0].Kind)
}

func TestFoldingRanges(t *testing.T) {
	s, root := start(t, nil)
	uri := pathToURI(filepath.Join(root, "outline.dn"))
	require.NoError(t, s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: outline},
	}))

	ranges, err := s.textDocumentFoldingRange(nil, &protocol.FoldingRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	type fold struct{ start, end protocol.UInteger }
	var got []fold
	var comments int
	for _, r := range ranges {
		got = append(got, fold{r.StartLine, r.EndLine})
		if r.Kind != nil {
			comments++
		}
	}
	assert.Contains(t, got, fold{2, 5})   // enum variants
	assert.Contains(t, got, fold{9, 13})  // impl items
	assert.Contains(t, got, fold{10, 12}) // fn body
	assert.Contains(t, got, fold{7, 8})   // comment
	assert.NotContains(t, got, fold{0, 0})
	assert.Equal(t, 1, comments)
}

func TestHover(t *testing.T) {
	s, root := start(t, nil)
	uri := pathToURI(filepath.Join(root, "h.dn"))
	require.NoError(t, s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "fn f() { 1 + 2 }"},
	}))

	hover, err := s.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 11},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content := hover.Contents.(protocol.MarkupContent)
	assert.Equal(t, "`+ < BinaryExpression < BlockExpression < Function < SourceFile`", content.Value)

	hover, err = s.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 2},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestPositionCountsUTF16(t *testing.T) {
	text := "let s = \"é😀\"; x"
	lines := source.NewLineIndex(text)
	off := len(text) - 1
	pos := position(lines, off)
	// l e t _ s _ = _ " é 😀(2) " ; _ = 15 units before x
	assert.Equal(t, protocol.Position{Line: 0, Character: 15}, pos)
	assert.Equal(t, off, offset(lines, pos))
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/main.dn")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b/main.dn", path)
	assert.Equal(t, "file:///tmp/a%20b/main.dn", pathToURI("/tmp/a b/main.dn"))

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
