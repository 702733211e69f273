// Package watcher reports debounced changes of model files
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files and calls a callback once per burst of writes
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	timers    map[string]*time.Timer
	debounce  time.Duration
	onError   func(error)
	closed    bool
}

// NewFileWatcher creates a watcher that waits debounce after the last event
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   w,
		callbacks: make(map[string]func(string)),
		timers:    make(map[string]*time.Timer),
		debounce:  debounce,
		onError:   func(err error) { fmt.Printf("Watcher error: %v\n", err) },
	}, nil
}

// OnError replaces the handler for errors reported by the OS watcher
func (fw *FileWatcher) OnError(fn func(error)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.onError = fn
}

// Watch subscribes callback to changes of every file in files
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}
		fw.callbacks[absPath] = callback
	}
	return nil
}

// Unwatch stops reporting changes of files
func (fw *FileWatcher) Unwatch(files []string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			continue
		}
		if _, ok := fw.callbacks[absPath]; !ok {
			continue
		}
		_ = fw.watcher.Remove(absPath)
		delete(fw.callbacks, absPath)
		if t, ok := fw.timers[absPath]; ok {
			t.Stop()
			delete(fw.timers, absPath)
		}
	}
}

// Watched reports whether file currently has a subscriber
func (fw *FileWatcher) Watched(file string) bool {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, ok := fw.callbacks[absPath]
	return ok
}

// Start begins delivering events on a background goroutine
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				// Editors that save by rename show up as Create
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					fw.handleFileChange(event.Name)
				}
				if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					fw.rewatch(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.mu.Lock()
				onError := fw.onError
				fw.mu.Unlock()
				onError(err)
			}
		}
	}()
}

func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, ok := fw.callbacks[filePath]
	if !ok || fw.closed {
		return
	}
	if timer, ok := fw.timers[filePath]; ok {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// rewatch re-adds a path after an atomic save replaced the file
func (fw *FileWatcher) rewatch(filePath string) {
	fw.mu.Lock()
	_, ok := fw.callbacks[filePath]
	fw.mu.Unlock()
	if !ok {
		return
	}

	go func() {
		time.Sleep(fw.debounce)
		fw.mu.Lock()
		defer fw.mu.Unlock()
		if _, ok := fw.callbacks[filePath]; !ok || fw.closed {
			return
		}
		if err := fw.watcher.Add(filePath); err == nil {
			callback := fw.callbacks[filePath]
			fw.timers[filePath] = time.AfterFunc(0, func() { callback(filePath) })
		}
	}()
}

// Close stops the watcher and pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
