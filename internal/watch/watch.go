// ============================================================================
// frege - Script Parser Toolkit
// ============================================================================
//
// Package:     watch
// Description: File watcher that reports changed scripts after a quiet period
// Author:      msto63
// Created:     2025-10-12
// License:     MIT
// ============================================================================

// Package watch reports changes to a set of files. Directories are watched
// instead of the files themselves so editors that save by renaming a temp
// file over the original keep being tracked.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
)

// DefaultDebounce is the quiet period after the last event of a burst
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher
type Options struct {
	Debounce time.Duration
	Logger   *frlog.Logger
}

// Watcher tracks a fixed set of files
type Watcher struct {
	targets  map[string]string // absolute path -> path as given
	dirs     []string
	debounce time.Duration
	logger   *frlog.Logger
}

// New creates a watcher for paths. The files need not exist yet, but their
// directories must.
func New(paths []string, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, frerror.New("no files to watch").
			WithCode(frerror.CodeInvalidInput).
			WithOperation("watch.New")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = frlog.GetDefault()
	}

	w := &Watcher{
		targets:  make(map[string]string, len(paths)),
		debounce: opts.Debounce,
		logger:   opts.Logger.WithField("component", "watch"),
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, frerror.Wrap(err, "failed to resolve path").
				WithCode(frerror.CodeIO).
				WithOperation("watch.New").
				WithSource(p)
		}
		w.targets[abs] = p

		dir := filepath.Dir(abs)
		if seen[dir] {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			code := frerror.CodeIO
			if err == nil || errors.Is(err, fs.ErrNotExist) {
				code = frerror.CodeNotFound
			}
			return nil, frerror.Newf("directory %s does not exist", dir).
				WithCode(code).
				WithOperation("watch.New").
				WithSource(p)
		}
		seen[dir] = true
		w.dirs = append(w.dirs, dir)
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange on the Run goroutine for
// every watched file written or created. Events are coalesced until no
// further event arrives for the debounce period; paths of one batch are
// delivered in sorted order.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return frerror.Wrap(err, "failed to create file watcher").
			WithCode(frerror.CodeIO).
			WithOperation("watch.Run")
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return frerror.Wrap(err, "failed to watch directory").
				WithCode(frerror.CodeIO).
				WithOperation("watch.Run").
				WithDetail("dir", dir)
		}
	}
	w.logger.Debug("watching files", frlog.Fields{"files": len(w.targets), "dirs": len(w.dirs)})

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path, watched := w.targets[filepath.Clean(event.Name)]
			if !watched {
				continue
			}

			switch {
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending[path] = struct{}{}
				timer.Reset(w.debounce)
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				w.logger.Debug("watched file removed", frlog.String("path", path))
			}

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			for _, p := range paths {
				onChange(p)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("file watcher error", err)
		}
	}
}
