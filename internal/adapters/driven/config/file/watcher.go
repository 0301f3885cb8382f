package file

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/madrasa-labs/bahith-cli/internal/logger"
)

// Watcher reloads a ConfigStore when its file changes on disk and
// notifies the registered callback. The desktop application rewrites
// config.toml when the user switches the selected academic year; a
// running TUI picks that up through here.
type Watcher struct {
	store    *ConfigStore
	fs       *fsnotify.Watcher
	onReload func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewWatcher starts watching the store's config file. onReload is called
// after each successful reload; it may be nil. Callbacks run on the
// watcher goroutine, so they must not block.
func NewWatcher(store *ConfigStore, onReload func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and the desktop app
	// replace config.toml atomically, which swaps the inode.
	if err := fs.Add(filepath.Dir(store.Path())); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		fs:       fs,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Load(); err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			logger.Debug("config reloaded after external change")
			if w.onReload != nil {
				w.onReload()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error: %v", err)
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
