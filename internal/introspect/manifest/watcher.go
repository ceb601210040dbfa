package manifest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reacts to manifest file changes. After a quiet period it
// reloads the source and hands the resulting diff to the callback, so
// callers can invalidate cached descriptors for exactly the symbols that
// moved.
type Watcher struct {
	source   *Source
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(Diff)

	ctx    context.Context
	cancel context.CancelFunc

	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewWatcher creates a watcher over the source's manifest tree. Start
// must be called before any callbacks fire.
func NewWatcher(source *Source, debounce time.Duration, onChange func(Diff)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watcher callback must not be nil")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		source:   source,
		watcher:  fsw,
		debounce: debounce,
		onChange: onChange,
		doneCh:   make(chan struct{}),
	}
	if err := w.addDirectoriesRecursively(source.Root()); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching for manifest changes.
func (w *Watcher) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	go w.watch()
}

// Stop shuts the watcher down and waits for the event loop to exit.
// Stopping twice is fine.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			// Never started.
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (w *Watcher) watch() {
	defer close(w.doneCh)

	reloadCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New directories join the watch set so manifests created
			// inside them are seen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}
			w.resetDebounceTimer(reloadCh)

		case <-reloadCh:
			w.handleDebounceExpired()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Manifest watcher error: %v", err)
		}
	}
}

// handleDebounceExpired reloads the source once the tree has gone quiet.
func (w *Watcher) handleDebounceExpired() {
	diff, err := w.source.Reload()
	if err != nil {
		log.Printf("Warning: manifest reload failed: %v", err)
		return
	}
	if diff.Empty() {
		return
	}
	w.onChange(diff)
}

// resetDebounceTimer resets the debounce timer, properly stopping the old
// one.
func (w *Watcher) resetDebounceTimer(reloadCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		if !w.debounceTimer.Stop() {
			select {
			case <-w.debounceTimer.C:
			default:
			}
		}
	}

	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		select {
		case reloadCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// shouldProcessEvent keeps only write/create/remove events on files that
// match a manifest pattern.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	return w.source.matches(event.Name)
}

// addDirectoriesRecursively adds all directories in the tree to the
// watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
