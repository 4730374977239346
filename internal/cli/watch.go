package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces into
// one regeneration.
const watchDebounce = 300 * time.Millisecond

// fileWatcher reports changes to a fixed set of files.
//
// Editors often replace a file rather than write it in place, so the
// containing directories are watched and events filtered by name.
type fileWatcher struct {
	w       *fsnotify.Watcher
	targets map[string]bool
}

// newFileWatcher starts watching files. Empty names are skipped. The watch
// is registered when it returns, so later writes are seen.
func newFileWatcher(files ...string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	fw := &fileWatcher{w: w, targets: make(map[string]bool)}
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.targets[abs] = true
		if err := w.Add(filepath.Dir(abs)); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
		}
	}
	return fw, nil
}

func (fw *fileWatcher) Close() error { return fw.w.Close() }

// matches reports whether ev changes the content of a watched file.
func (fw *fileWatcher) matches(ev fsnotify.Event) bool {
	abs, err := filepath.Abs(ev.Name)
	if err != nil || !fw.targets[abs] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// run calls onChange once per burst of changes, after debounce has passed
// without a further event. It returns ctx.Err() on cancellation and nil
// when the watcher is closed.
func (fw *fileWatcher) run(ctx context.Context, debounce time.Duration, logger *log.Logger, onChange func(context.Context)) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if !fw.matches(ev) {
				continue
			}
			logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange(ctx)
		}
	}
}
