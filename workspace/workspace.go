// Package workspace keeps the parsed state of a tree of .dn files: every
// document's syntax tree, diagnostics and lowered form.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danue1/danube/ast"
	"github.com/danue1/danube/ast/owned"
	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/logging"
	"github.com/danue1/danube/parser"
	"github.com/danue1/danube/source"
)

const Extension = ".dn"

var log = logging.GetLogger("danube.workspace")

// Document is one parsed file. Documents are replaced, never mutated.
type Document struct {
	Path    string
	Text    string
	Version int32
	Result  *parser.Result
	Lines   *source.LineIndex

	// Lowered is nil when the root could not be lowered; LowerErr says why.
	Lowered  *owned.SourceFile
	LowerErr error
}

func (d *Document) Diagnostics() []diag.Diagnostic {
	return d.Result.Diagnostics
}

type Workspace struct {
	mu       sync.RWMutex
	root     string
	interner *intern.Interner
	docs     map[string]*Document
	include  []string
	exclude  []string
	jobs     int
}

type Option func(*Workspace)

// WithPatterns restricts Scan to paths matching one of include and none of
// exclude. Patterns use filepath.Match syntax against the slash-separated
// path relative to the root; a leading "**/" matches any directory prefix.
func WithPatterns(include, exclude []string) Option {
	return func(w *Workspace) {
		w.include = include
		w.exclude = exclude
	}
}

// WithJobs bounds the number of files parsed at once. Zero means
// GOMAXPROCS.
func WithJobs(n int) Option {
	return func(w *Workspace) {
		w.jobs = n
	}
}

// WithInterner shares an interner with the caller.
func WithInterner(in *intern.Interner) Option {
	return func(w *Workspace) {
		w.interner = in
	}
}

func New(root string, opts ...Option) *Workspace {
	w := &Workspace{
		root: root,
		docs: make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.interner == nil {
		w.interner = intern.New()
	}
	if w.jobs <= 0 {
		w.jobs = runtime.GOMAXPROCS(0)
	}
	return w
}

func (w *Workspace) Root() string {
	return w.root
}

func (w *Workspace) Interner() *intern.Interner {
	return w.interner
}

// Files lists the source files under the root in lexical order. Hidden
// directories are skipped.
func (w *Workspace) Files(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Matches reports whether path is a source file selected by the
// workspace patterns.
func (w *Workspace) Matches(path string) bool {
	if filepath.Ext(path) != Extension {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if len(w.include) > 0 && !matchAny(w.include, rel) {
		return false
	}
	return !matchAny(w.exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if match(p, rel) {
			return true
		}
	}
	return false
}

func match(pattern, rel string) bool {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		for {
			if ok, _ := filepath.Match(rest, rel); ok {
				return true
			}
			i := strings.IndexByte(rel, '/')
			if i < 0 {
				return false
			}
			rel = rel[i+1:]
		}
	}
	if ok, _ := filepath.Match(pattern, rel); ok {
		return true
	}
	// A pattern naming a directory selects everything below it.
	return strings.HasPrefix(rel, strings.TrimSuffix(pattern, "/")+"/")
}

// Scan parses every file under the root and returns the documents sorted by
// path.
func (w *Workspace) Scan(ctx context.Context) ([]*Document, error) {
	files, err := w.Files(ctx)
	if err != nil {
		return nil, err
	}
	return w.ParseFiles(ctx, files)
}

// ParseFiles reads and parses paths in parallel. A read error aborts the
// whole batch; parse errors are diagnostics on the documents.
func (w *Workspace) ParseFiles(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			docs[i] = w.Update(path, string(text), 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debugf("parsed %d files", len(paths))
	return docs, nil
}

// ScanFile rereads path from disk.
func (w *Workspace) ScanFile(path string) (*Document, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return w.Update(path, string(text), 0), nil
}

// Update parses text as the new content of path and stores the result.
// An update with an older version than the stored document is ignored and
// the stored document is returned.
func (w *Workspace) Update(path, text string, version int32) *Document {
	doc := w.build(path, text, version)

	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.docs[path]; ok && version != 0 && old.Version > version {
		return old
	}
	w.docs[path] = doc
	return doc
}

func (w *Workspace) build(path, text string, version int32) *Document {
	res := parser.Parse(text, parser.WithFile(path))
	doc := &Document{
		Path:    path,
		Text:    text,
		Version: version,
		Result:  res,
		Lines:   source.NewLineIndex(text),
	}
	file, ok := ast.CastSourceFile(res.Root())
	if !ok {
		doc.LowerErr = fmt.Errorf("lower %s: root is %s", path, res.Root().Kind())
		return doc
	}
	doc.Lowered, doc.LowerErr = ast.LowerSourceFile(file, res.Diagnostics, w.interner)
	log.Debugf("%s: %d diagnostics", path, len(res.Diagnostics))
	return doc
}

func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) Get(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Documents returns the stored documents sorted by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	docs := make([]*Document, 0, len(w.docs))
	for _, d := range w.docs {
		docs = append(docs, d)
	}
	w.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// HasErrors reports whether any stored document has an error diagnostic.
func (w *Workspace) HasErrors() bool {
	for _, d := range w.Documents() {
		if d.Result.HasErrors() {
			return true
		}
	}
	return false
}
