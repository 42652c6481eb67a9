package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is invoked with the previous and newly reloaded
// configuration whenever the watched file changes.
type ChangeCallback func(oldConfig, newConfig *Config)

// Watcher watches a config file for changes and reloads it on write.
// Editors that replace-on-save emit bursts of events, so reloads are
// debounced.
type Watcher struct {
	path   string
	loader *Loader

	mu  sync.RWMutex
	cur *Config

	callbacksMu sync.Mutex
	callbacks   []ChangeCallback

	fsWatcher *fsnotify.Watcher
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewWatcher builds a Watcher over path, loading its initial configuration
// immediately so GetConfig is valid before Start is ever called.
func NewWatcher(path string, loader *Loader) (*Watcher, error) {
	if loader == nil {
		loader = NewLoader()
	}

	cfg, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:      path,
		loader:    loader,
		cur:       cfg,
		fsWatcher: fsWatcher,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start begins watching the config file for writes in a background
// goroutine. Stop must be called to release the fsnotify handle.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.path); err != nil {
		return fmt.Errorf("config: watch %s: %w", w.path, err)
	}

	w.wg.Add(1)
	go w.loop()

	return nil
}

// Stop cancels the watch loop and releases the underlying fsnotify handle.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fsWatcher.Close()
	w.wg.Wait()
	return err
}

// GetConfig returns the most recently loaded configuration.
func (w *Watcher) GetConfig() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cur
}

// OnChange registers a callback invoked after every successful reload.
func (w *Watcher) OnChange(cb ChangeCallback) {
	w.callbacksMu.Lock()
	defer w.callbacksMu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var debounce *time.Timer
	const debounceWindow = 250 * time.Millisecond

	for {
		select {
		case <-w.ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, w.reload)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.WarnS(context.Background(), "config watcher error", err)
		}
	}
}

func (w *Watcher) reload() {
	next, err := w.loader.LoadFromFile(w.path)
	if err != nil {
		log.ErrorS(context.Background(), "config reload failed", err, "path", w.path)
		return
	}

	w.mu.Lock()
	prev := w.cur
	w.cur = next
	w.mu.Unlock()

	w.callbacksMu.Lock()
	cbs := make([]ChangeCallback, len(w.callbacks))
	copy(cbs, w.callbacks)
	w.callbacksMu.Unlock()

	for _, cb := range cbs {
		cb(prev, next)
	}
}
