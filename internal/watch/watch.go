// Package watch regenerates the site when content or the tool configuration changes.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one regeneration.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors content trees and single files and invokes a callback
// once per debounced burst of changes. Once Run has started, trees may only
// be changed from the callback.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(context.Context) error
	debounce time.Duration
	log      *slog.Logger

	trees map[string]struct{} // absolute roots watched recursively
	files map[string]struct{} // absolute single-file paths
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// New creates a watcher that calls onChange after changes settle.
func New(onChange func(context.Context) error, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryRuntime, "failed to create file watcher").Build()
	}
	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      slog.Default(),
		trees:    map[string]struct{}{},
		files:    map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddTree watches dir and every non-hidden directory below it.
func (w *Watcher) AddTree(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "resolve watch path").WithContext("path", dir).Build()
	}
	if err := w.addDirs(abs); err != nil {
		return err
	}
	w.trees[abs] = struct{}{}
	return nil
}

// RemoveTree stops watching dir and every directory below it.
func (w *Watcher) RemoveTree(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "resolve watch path").WithContext("path", dir).Build()
	}
	if _, ok := w.trees[abs]; !ok {
		return nil
	}
	delete(w.trees, abs)
	for _, p := range w.fsw.WatchList() {
		if !under(p, abs) || w.inTree(p) || w.watchesFileIn(p) {
			continue
		}
		if err := w.fsw.Remove(p); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
			w.log.Warn("Failed to stop watching directory", logfields.Path(p), logfields.Error(err))
		}
	}
	return nil
}

// SwitchTree replaces the watched tree from with to. It is a no-op when both
// name the same directory.
func (w *Watcher) SwitchTree(from, to string) error {
	a, errA := filepath.Abs(from)
	b, errB := filepath.Abs(to)
	if errA == nil && errB == nil && a == b {
		return nil
	}
	if err := w.AddTree(to); err != nil {
		return err
	}
	return w.RemoveTree(from)
}

func (w *Watcher) watchesFileIn(dir string) bool {
	for f := range w.files {
		if filepath.Dir(f) == dir {
			return true
		}
	}
	return false
}

// AddFile watches a single file through its parent directory, which survives
// editors that replace the file on save.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "resolve watch path").WithContext("path", path).Build()
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "failed to watch directory").
			WithContext("path", filepath.Dir(abs)).
			Build()
	}
	w.files[abs] = struct{}{}
	return nil
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "walk watch tree").WithContext("path", p).Build()
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && ignored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "failed to watch directory").WithContext("path", p).Build()
		}
		return nil
	})
}

// Run processes events until ctx is canceled, then closes the watcher.
// Callback errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.log.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Timers created by NewTimer never deliver stale values after Stop or Reset.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && w.inTree(ev.Name) {
					if err := w.addDirs(ev.Name); err != nil {
						w.log.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
					}
				}
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.log.Error("Regeneration failed", logfields.Error(err))
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if _, ok := w.files[ev.Name]; ok {
		return true
	}
	if !w.inTree(ev.Name) || ignored(filepath.Base(ev.Name)) {
		return false
	}
	if ext := filepath.Ext(ev.Name); ext != "" {
		return strings.EqualFold(ext, ".md")
	}
	return true
}

func (w *Watcher) inTree(p string) bool {
	for root := range w.trees {
		if under(p, root) {
			return true
		}
	}
	return false
}

func under(p, root string) bool {
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

// ignored matches hidden entries, editor swap/backup files and build output directories.
func ignored(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") ||
		name == "node_modules" || name == "public"
}
