// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/stacklok/promptbake/logger"
)

// Watcher re-expands matching documents under a directory tree as they are
// created or modified.
type Watcher struct {
	processor *Processor
	watcher   *fsnotify.Watcher
	root      string

	mu          sync.Mutex
	lastSeen    map[string]time.Time
	debounceDur time.Duration
	running     bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWatcher creates a watcher over root using the given processor. Start
// must be called to begin watching.
func NewWatcher(processor *Processor, root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		processor:   processor,
		watcher:     fsw,
		root:        root,
		lastSeen:    make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // absorbs editor save bursts
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins watching in a goroutine.
// It is non-blocking; use Stop or cancel the context to shut down.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the whole tree: fsnotify watches are per-directory.
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Infow("watching", "root", w.root, "pattern", w.processor.pattern)

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	// A new directory joins the watch so documents created inside it later
	// are picked up.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
			return
		}
	}

	if ok, _ := filepath.Match(w.processor.pattern, filepath.Base(event.Name)); !ok {
		return
	}
	if !w.debounce(event.Name) {
		return
	}

	logger.Debugw("change detected", "path", event.Name)
	w.processor.ProcessFile(event.Name)
}

// debounce reports whether the path should be processed, suppressing events
// that arrive within the debounce window of the previous one. Entries outside
// the window are pruned so the map stays bounded by recent activity.
func (w *Watcher) debounce(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for p, seen := range w.lastSeen {
		if now.Sub(seen) >= w.debounceDur {
			delete(w.lastSeen, p)
		}
	}

	if _, ok := w.lastSeen[path]; ok {
		return false
	}
	w.lastSeen[path] = now
	return true
}
