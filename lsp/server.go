// Package lsp serves parse diagnostics, document outlines and folding
// ranges for .dn files over the Language Server Protocol.
package lsp

import (
	"context"
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/danue1/danube/ast"
	"github.com/danue1/danube/logging"
	"github.com/danue1/danube/workspace"
)

const lsName = "danube"

var log = logging.GetLogger("danube.lsp")

type Server struct {
	ws      *workspace.Workspace
	opts    []workspace.Option
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer creates a server; opts configure the workspace opened on
// initialize.
func NewServer(version string, opts ...workspace.Option) *Server {
	s := &Server{
		version: version,
		opts:    opts,
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:   s.textDocumentFoldingRange,
		TextDocumentHover:          s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	s.ws = workspace.New(rootDir, s.opts...)
	log.Infof("workspace root %s", rootDir)

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKind(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

// initialized scans the workspace and reports every file with problems.
func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	docs, err := s.ws.Scan(contextOf(ctx))
	if err != nil {
		log.Errorf("scan: %s", err)
		return nil
	}
	for _, doc := range docs {
		if len(doc.Diagnostics()) > 0 {
			s.publish(ctx, pathToURI(doc.Path), doc)
		}
	}
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := s.ws.Update(path, params.TextDocument.Text, params.TextDocument.Version)
	s.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			doc := s.ws.Update(path, whole.Text, params.TextDocument.Version)
			s.publish(ctx, params.TextDocument.URI, doc)
		}
	}
	return nil
}

// textDocumentDidClose reverts the document to its on-disk content, or
// forgets it and clears its diagnostics when there is no file.
func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if doc, err := s.ws.ScanFile(path); err == nil {
		s.publish(ctx, params.TextDocument.URI, doc)
		return nil
	}
	s.ws.Remove(path)
	notify(ctx, protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var doc *workspace.Document
	if params.Text != nil {
		doc = s.ws.Update(path, *params.Text, 0)
	} else if doc, err = s.ws.ScanFile(path); err != nil {
		log.Warningf("%s", err)
		return nil
	}
	s.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	file, ok := ast.CastSourceFile(doc.Result.Root())
	if !ok {
		return nil, nil
	}
	return documentSymbols(doc.Lines, file.Items()), nil
}

func (s *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return foldingRanges(doc.Lines, doc.Result.Root()), nil
}

// textDocumentHover shows the chain of syntax nodes enclosing the token
// under the cursor, innermost first.
func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	tok := doc.Result.Root().TokenAtOffset(offset(doc.Lines, params.Position))
	if tok == nil || tok.Kind().IsTrivia() {
		return nil, nil
	}
	kinds := []string{tok.Kind().String()}
	for n := tok.Parent(); n != nil; n = n.Parent() {
		kinds = append(kinds, n.Kind().String())
	}
	rng := toRange(doc.Lines, tok.Span())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("`%s`", strings.Join(kinds, " < ")),
		},
		Range: &rng,
	}, nil
}

func (s *Server) document(uri protocol.DocumentUri) *workspace.Document {
	if s.ws == nil {
		return nil
	}
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return s.ws.Get(path)
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *workspace.Document) {
	diagnostics := []protocol.Diagnostic{}
	for _, d := range doc.Diagnostics() {
		diagnostics = append(diagnostics, toDiagnostic(doc.Lines, d))
	}
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
	if doc.Version != 0 {
		v := protocol.UInteger(doc.Version)
		params.Version = &v
	}
	notify(ctx, protocol.ServerTextDocumentPublishDiagnostics, params)
}

func notify(ctx *glsp.Context, method string, params any) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(method, params)
}

func contextOf(ctx *glsp.Context) context.Context {
	if ctx == nil || ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

func syncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
