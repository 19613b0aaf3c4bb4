// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the document source watcher

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource creates a CSV source file in a temp dir and returns its path.
func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documents.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,pdf_path,status\n"), 0o644))
	return path
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

// =============================================================================
// SourceWatcher Tests
// =============================================================================

func TestSourceWatcher_StartsClean(t *testing.T) {
	path := writeSource(t)

	watcher, err := NewSourceWatcher(path, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.False(t, watcher.Stale())
}

func TestSourceWatcher_DetectsWrite(t *testing.T) {
	path := writeSource(t)

	watcher, err := NewSourceWatcher(path, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Start(ctx)

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path,
		[]byte("id,pdf_path,status\n1,a.pdf,SUCCEEDED\n"), 0o644))

	assert.True(t, waitFor(t, watcher.Stale), "watcher should flag the write")
}

func TestSourceWatcher_DetectsRemove(t *testing.T) {
	path := writeSource(t)

	watcher, err := NewSourceWatcher(path, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Remove(path))

	assert.True(t, waitFor(t, watcher.Stale), "watcher should flag the removal")
}

func TestSourceWatcher_IgnoresSiblingFiles(t *testing.T) {
	path := writeSource(t)

	watcher, err := NewSourceWatcher(path, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	sibling := filepath.Join(filepath.Dir(path), "other.csv")
	require.NoError(t, os.WriteFile(sibling, []byte("x"), 0o644))

	// No event for the watched file should arrive.
	time.Sleep(300 * time.Millisecond)
	assert.False(t, watcher.Stale())
}

func TestSourceWatcher_InvokesCallback(t *testing.T) {
	path := writeSource(t)

	fired := make(chan struct{}, 1)
	watcher, err := NewSourceWatcher(path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("callback not invoked after source change")
	}
}

func TestSourceWatcher_StopIsIdempotent(t *testing.T) {
	path := writeSource(t)

	watcher, err := NewSourceWatcher(path, nil)
	require.NoError(t, err)

	assert.NoError(t, watcher.Stop())
	// Second close must not panic; fsnotify tolerates repeated Close.
	_ = watcher.Stop()
}
