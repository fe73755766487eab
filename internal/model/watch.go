package model

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external writes to a single file. Events are
// delivered on a channel instead of calling into the model directly,
// so the consumer can marshal NoteExternalChange back onto the thread
// that owns the listener registry.
type Watcher struct {
	fw     *fsnotify.Watcher
	path   string
	events chan string
	done   chan struct{}
}

// WatchFile starts watching path's directory and reports writes and
// creations of path itself. Watching the directory survives editors
// that replace the file on save.
func WatchFile(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		fw:     fw,
		path:   filepath.Clean(path),
		events: make(chan string, 8),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events yields the watched path each time it changes on disk.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				select {
				case w.events <- w.path:
				default:
					// Drop when the consumer is behind; the signal is
					// level-triggered, not a change log.
				}
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}
