package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports a document that was reparsed or removed after a file
// system event.
type Change struct {
	Path    string
	Doc     *Document
	Removed bool
}

// Watcher keeps a Workspace in sync with the files under its root.
type Watcher struct {
	ws       *Workspace
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher watches the root and every non-hidden directory below it.
func NewWatcher(ws *Workspace) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{ws: ws, fsw: fsw, debounce: 100 * time.Millisecond}
	if err := w.addTree(ws.Root()); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Debounce sets how long a path must stay quiet before it is reparsed.
func (w *Watcher) Debounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers changes to onChange until ctx is done or the watcher is
// closed. It returns nil when ctx ends.
func (w *Watcher) Run(ctx context.Context, onChange func(Change)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Warningf("%s", err)
					}
					continue
				}
			}
			if !w.ws.Matches(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			for _, path := range sortedKeys(pending) {
				onChange(w.apply(path))
			}
			clear(pending)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *Watcher) apply(path string) Change {
	doc, err := w.ws.ScanFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warningf("%s", err)
		}
		w.ws.Remove(path)
		return Change{Path: path, Removed: true}
	}
	return Change{Path: path, Doc: doc}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
