// Package watch implements drop-directory mode: a directory is monitored
// for newly dropped input files, and each complete file is handed to a
// processing callback exactly once.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must stay quiet before it is considered
// fully written. Editors and copy tools emit bursts of Create/Write events
// for a single drop.
const settleDelay = 500 * time.Millisecond

// Handler processes one dropped input file.
type Handler func(path string)

// Run watches dir for new files matching pattern (a filepath.Match glob
// applied to the base name) and calls handle once per settled file.
// It blocks until ctx is cancelled.
func Run(ctx context.Context, dir, pattern string, handle Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	slog.Info("watch: watching for input files", "dir", dir, "pattern", pattern)

	d := newDebouncer(settleDelay, handle)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Writers that save atomically surface as Create after a
			// rename; plain writers surface as Create then Write bursts.
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			matched, err := filepath.Match(pattern, filepath.Base(event.Name))
			if err != nil {
				return err
			}
			if !matched {
				continue
			}
			d.touch(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}

// debouncer coalesces event bursts per path: the handler fires once the
// path has been quiet for the full delay.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	handle  Handler
	pending map[string]*time.Timer
}

func newDebouncer(delay time.Duration, handle Handler) *debouncer {
	return &debouncer{
		delay:   delay,
		handle:  handle,
		pending: make(map[string]*time.Timer),
	}
}

// touch records activity on path, resetting its quiet timer.
func (d *debouncer) touch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.pending[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.pending[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, path)
		d.mu.Unlock()
		d.handle(path)
	})
}

// stop cancels all pending timers.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.pending {
		t.Stop()
		delete(d.pending, path)
	}
}
