package archive

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tOgg1/chrono/internal/logging"
)

// Watcher signals when a dataset file changes on disk. Bursts of events collapse
// into a single pending signal.
type Watcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan struct{}
	done    chan struct{}
	log     zerolog.Logger
}

// NewWatcher watches the directory holding path, so editors that replace the file
// by rename are still seen.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher: fw,
		target:  abs,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     logging.Component("archive.watch"),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	defer close(w.done)
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("dataset watch error")
		}
	}
}

// Events delivers one value per batch of changes. It is closed by Close.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
