package vpn

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yllada/nordvpn-indicator/common"
)

// MarkerWatcher marks the settings store changed whenever a marker file is
// edited outside the indicator, so the next Load picks the new target up.
type MarkerWatcher struct {
	mu       sync.Mutex
	store    *SettingsStore
	watcher  *fsnotify.Watcher
	running  bool
	onChange func(name string)
}

// NewMarkerWatcher creates a watcher for the store's config directory.
func NewMarkerWatcher(store *SettingsStore) *MarkerWatcher {
	return &MarkerWatcher{store: store}
}

// SetOnChange sets a callback invoked with the base name of a changed marker.
func (w *MarkerWatcher) SetOnChange(callback func(name string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins watching. It is a no-op if already running.
func (w *MarkerWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.store.Dir()); err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.running = true
	common.LogInfo("Watching marker files in %s", w.store.Dir())

	go w.runLoop(watcher)
	return nil
}

// Stop ends watching.
func (w *MarkerWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	w.watcher.Close()
}

func (w *MarkerWatcher) runLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !isMarker(name) {
				continue
			}

			common.LogDebug("Marker file changed: %s (%s)", name, event.Op)
			w.store.MarkChanged()

			w.mu.Lock()
			cb := w.onChange
			w.mu.Unlock()
			if cb != nil {
				cb(name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			common.LogWarn("Marker watcher error: %v", err)
		}
	}
}

func isMarker(name string) bool {
	switch name {
	case common.ServerMarkerFileName, common.CountryMarkerFileName, common.AccountMarkerFileName:
		return true
	}
	return false
}
