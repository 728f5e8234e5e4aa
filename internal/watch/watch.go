// Package watch notifies the viewer when the opened document changes on
// disk.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docsight/docsight/internal/logging"
)

// debounceInterval coalesces the burst of events word processors emit
// when saving (truncate + write + rename).
const debounceInterval = 250 * time.Millisecond

// DocumentWatcher watches a single document file for modifications.
type DocumentWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// NewDocumentWatcher starts watching the document at path. The parent
// directory is watched rather than the file itself, because editors
// typically replace the file on save.
func NewDocumentWatcher(path string) (*DocumentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	dw := &DocumentWatcher{
		path:    abs,
		watcher: watcher,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go dw.run()
	return dw, nil
}

// Changes delivers one signal per detected document change. The channel
// is closed when the watcher stops.
func (dw *DocumentWatcher) Changes() <-chan struct{} {
	return dw.changes
}

// Close stops the watcher.
func (dw *DocumentWatcher) Close() error {
	close(dw.done)
	return dw.watcher.Close()
}

func (dw *DocumentWatcher) run() {
	// Closing the channel releases receivers parked on Changes().
	defer close(dw.changes)

	logger := logging.Component("watch")

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-dw.done:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != dw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerC = timer.C
			} else {
				timer.Reset(debounceInterval)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			logger.Debug().Str("path", dw.path).Msg("document changed on disk")
			select {
			case dw.changes <- struct{}{}:
			default:
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}
