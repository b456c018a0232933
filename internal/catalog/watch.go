package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zhubert/splashctl/internal/logger"
)

// DefaultSettleDelay is how long the watcher waits for a burst of filesystem
// events (an archive being unpacked, say) to finish before reporting.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher reports changes to the installed theme packages. Roots that do not
// exist are skipped. Package directories are watched one level deep so that
// edits to metadata are noticed as well as installs and removals.
type Watcher struct {
	fsw    *fsnotify.Watcher
	roots  []string
	settle time.Duration
	log    *slog.Logger
}

// NewWatcher starts watching roots and the package directories inside them.
func NewWatcher(roots []string, settle time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		roots:  roots,
		settle: settle,
		log:    logger.ComponentLogger("watch"),
	}
	for _, root := range roots {
		w.addTree(root)
	}
	return w, nil
}

// Watched returns the directories currently watched.
func (w *Watcher) Watched() []string {
	return w.fsw.WatchList()
}

// addTree watches dir and its immediate subdirectories.
func (w *Watcher) addTree(dir string) {
	if err := w.fsw.Add(dir); err != nil {
		w.log.Debug("not watching", "dir", dir, "error", err)
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			sub := filepath.Join(dir, e.Name())
			if err := w.fsw.Add(sub); err != nil {
				w.log.Debug("not watching", "dir", sub, "error", err)
			}
		}
	}
}

// Run blocks until ctx is done, calling onChange on the calling goroutine
// once per settled burst of events.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.log.Debug("theme directory event", "path", ev.Name, "op", ev.Op.String())
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
