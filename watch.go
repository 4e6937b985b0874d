package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openpetstore/petstore-contract-tests/framework"
)

const watchDebounce = 500 * time.Millisecond

// catalogWatcher reports changes to catalog files. It watches their directories rather than the
// files, since editors commonly save by replacing the file.
type catalogWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   framework.Logger
}

func newCatalogWatcher(paths []string, logger framework.Logger) (*catalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &catalogWatcher{
		watcher:  watcher,
		files:    make(map[string]bool),
		debounce: watchDebounce,
		logger:   logger,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %q: %w", p, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run calls onChange once for each burst of changes to the watched files. Blocks until ctx is
// cancelled; onChange is never called concurrently with itself.
func (w *catalogWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	changed := make(chan struct{}, 1)
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Printf("Catalog file changed: %s", event.Name)
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(w.debounce, func() {
					select {
					case changed <- struct{}{}:
					default:
					}
				})
			}

		case <-changed:
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("File watcher error: %s", err)
		}
	}
}
