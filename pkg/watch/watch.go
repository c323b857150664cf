// Package watch notifies about changes to a set of files and directories.
// Bursts of events are coalesced so an editor saving a file triggers a
// single notification.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches paths on the real filesystem
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	watched  map[string]bool
}

// New watches the given paths. Directories are watched recursively; files
// are watched through their parent directory so editors replacing the
// file are still seen.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	log := logging.GetLogger("core.watch")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{watcher: fw, debounce: debounce, watched: make(map[string]bool)}

	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			// Not there yet, watch where it would appear
			err = w.add(filepath.Dir(p))
		case info.IsDir():
			err = w.addTree(p)
		default:
			err = w.add(filepath.Dir(p))
		}
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	log.Debug().Int("directories", len(w.watched)).Msg("File watcher initialized")
	return w, nil
}

func (w *Watcher) add(dir string) error {
	if w.watched[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", dir)
	}
	w.watched[dir] = true
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.add(path)
		}
		return nil
	})
}

// Run calls onChange with the last changed path after each burst of
// events, until ctx is done or onChange returns an error.
func (w *Watcher) Run(ctx context.Context, onChange func(path string) error) error {
	log := logging.GetLogger("core.watch")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Trace().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("File event")
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Warn().Err(err).Str("path", ev.Name).Msg("Cannot watch new directory")
					}
				}
			}
			last = ev.Name
			timer.Reset(w.debounce)
		case <-timer.C:
			log.Debug().Str("path", last).Msg("Change detected")
			if err := onChange(last); err != nil {
				return err
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("File watcher error")
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
