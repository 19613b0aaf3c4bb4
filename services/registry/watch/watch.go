// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package watch detects external changes to the document source file.
//
// The registry reads its source exactly once and never writes back, so an
// edit to the file after startup silently diverges disk from memory. The
// watcher does not reload - load-once is part of the service contract - it
// only surfaces the divergence through a log warning and the health
// endpoint.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// SourceWatcher watches the document source file for external changes.
//
// # Thread Safety
//
// Safe for concurrent use. Start should only be called once.
type SourceWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	stale    atomic.Bool
	callback func()
}

// NewSourceWatcher creates a watcher for the given source file.
//
// # Inputs
//
//   - path: Path to the source CSV file.
//   - callback: Optional callback invoked on change (in addition to the
//     stale flag). May be nil.
//
// # Outputs
//
//   - *SourceWatcher: Ready-to-start watcher.
//   - error: Non-nil if watcher creation fails.
func NewSourceWatcher(path string, callback func()) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &SourceWatcher{
		path:     path,
		watcher:  watcher,
		callback: callback,
	}, nil
}

// Start begins watching the source file. Blocks until the context is
// cancelled; run in a goroutine.
//
// The parent directory is watched rather than the file itself so that
// editors which replace-on-save (write to temp, rename over) are still
// detected.
func (w *SourceWatcher) Start(ctx context.Context) {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		slog.Warn("Failed to watch document source directory",
			"dir", dir,
			"error", err)
		return
	}

	slog.Debug("Started watching document source", "path", w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Document source watcher error", "error", err)

		case <-ctx.Done():
			slog.Debug("Document source watcher stopping")
			return
		}
	}
}

// handleEvent processes a single fsnotify event.
func (w *SourceWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	if !w.stale.Swap(true) {
		slog.Warn("Document source changed on disk after load; in-memory registry no longer matches the file",
			"path", w.path,
			"op", event.Op.String())
	}

	if w.callback != nil {
		w.callback()
	}
}

// Stale reports whether the source file has changed since the watcher
// started.
func (w *SourceWatcher) Stale() bool {
	return w.stale.Load()
}

// Stop stops the watcher and releases resources. Safe to call multiple
// times.
func (w *SourceWatcher) Stop() error {
	return w.watcher.Close()
}
