// Package watch re-runs work when input files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors and spreadsheet
// tools emit for a single save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls a function whenever one of a fixed set of files changes.
// Parent directories are watched rather than the files themselves so that
// atomic saves (write temp file, rename over original) are seen.
type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	logger   *log.Logger
}

// New returns a Watcher for paths. A debounce of zero uses DefaultDebounce.
func New(paths []string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{files: make(map[string]bool, len(paths)), debounce: debounce, logger: logger}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolving %s: %w", p, err)
		}
		w.files[abs] = true
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange after each debounced
// batch of changes to the watched files. onChange runs on the Run
// goroutine; an error from it is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch: adding %s: %w", d, err)
		}
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watch error", "error", err)
			}

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			if w.logger != nil {
				w.logger.Debug("inputs changed", "files", changed)
			}
			if err := onChange(changed); err != nil && w.logger != nil {
				w.logger.Error("re-run failed", "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
