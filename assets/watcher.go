// Package assets watches mesh files on disk so derived attributes can be
// recomputed whenever an artist saves the source asset.
package assets

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/geometry-tools/core"
)

// Watcher wraps an fsnotify watcher with recursive directory registration
// and a single change callback.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Add starts watching the named file or directory (non-recursively).
func (w *Watcher) Add(name string) error {
	if w.isClosed {
		return errors.New("watcher instance already closed")
	}
	return w.fsnotify.Add(name)
}

// AddRecursive starts watching the named path; directories are walked and
// every sub-directory is registered as well.
func (w *Watcher) AddRecursive(name string) error {
	if w.isClosed {
		return errors.New("watcher instance already closed")
	}

	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsnotify.Add(name)
	}

	return filepath.Walk(name, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.fsnotify.Add(path)
		}
		return nil
	})
}

// Start consumes filesystem events until Close is called, invoking onChange
// with the path of every file that is written or created. Runs on the
// calling goroutine; callers normally invoke it with `go`.
func (w *Watcher) Start(onChange func(path string)) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				core.LogDebug("asset changed: %s", event.Name)
				onChange(event.Name)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("watch error: %v", err)
		}
	}
}

// Close stops event delivery and releases the underlying watcher.
func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}
