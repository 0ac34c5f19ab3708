// File: watch.go
// Title: Configuration File Watching Implementation
// Description: Reloads the configuration when its file changes on disk,
//              using fsnotify on the containing directory so editors that
//              replace the file by rename are handled.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file watching
// - 2025-10-12 v0.2.0: Replaced the polling loop with fsnotify

package config

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	frerror "github.com/msto63/frege/foundation/core/error"
)

type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts reloading the configuration whenever its file is written.
// Reload failures are passed to onError (may be nil) and the previous
// values stay in effect.
func (c *Config) Watch(onError func(error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filePath == "" {
		return frerror.New("file path required for watching").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("config.Watch")
	}
	if c.watcher != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return frerror.Wrap(err, "failed to create file watcher").
			WithCode(frerror.CodeConfigError).
			WithOperation("config.Watch")
	}
	if err := fsw.Add(filepath.Dir(c.filePath)); err != nil {
		fsw.Close()
		return frerror.Wrap(err, "failed to watch config directory").
			WithCode(frerror.CodeConfigError).
			WithOperation("config.Watch").
			WithDetail("filePath", c.filePath)
	}

	w := &watcher{fs: fsw, done: make(chan struct{})}
	c.watcher = w
	target := filepath.Clean(c.filePath)

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := c.reload(); err != nil && onError != nil {
					onError(err)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()

	return nil
}

// StopWatching stops file monitoring and waits for the watcher to exit
func (c *Config) StopWatching() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.fs.Close()
		<-w.done
	}
}

// IsWatching returns whether file monitoring is active
func (c *Config) IsWatching() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.watcher != nil
}

func (c *Config) reload() error {
	c.mu.RLock()
	path, format := c.filePath, c.format
	c.mu.RUnlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return frerror.Wrap(err, "failed to read config file during reload").
			WithCode(frerror.CodeConfigError).
			WithOperation("config.reload").
			WithDetail("filePath", path)
	}

	newData, err := parseContent(content, format)
	if err != nil {
		return frerror.Wrap(err, "failed to parse config file during reload").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("config.reload").
			WithDetail("filePath", path)
	}

	c.mu.Lock()
	oldConfig := &Config{data: deepCopyMap(c.data), format: c.format, envPrefix: c.envPrefix}
	c.data = newData
	newConfig := &Config{data: deepCopyMap(c.data), format: c.format, envPrefix: c.envPrefix}
	handlers := append([]ChangeHandler(nil), c.handlers...)
	c.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler(oldConfig, newConfig)
		}
	}
	return nil
}
