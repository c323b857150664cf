// pkg/watch/watch_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test change notification and debouncing of the file watcher

package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/anek/pkg/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_NotifiesOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "template")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0644))

	w, err := watch.New([]string{file}, 100*time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) error {
			changes <- path
			cancel()
			return nil
		})
	}()

	require.NoError(t, os.WriteFile(file, []byte("two"), 0644))
	require.NoError(t, os.WriteFile(file, []byte("three"), 0644))

	select {
	case path := <-changes:
		assert.Equal(t, file, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	assert.NoError(t, <-done)
	assert.Len(t, changes, 0)
}

func TestWatcher_RecursiveDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "inputs", "site.d")
	require.NoError(t, os.MkdirAll(nested, 0755))

	w, err := watch.New([]string{dir}, 20*time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan string, 10)
	go func() {
		_ = w.Run(ctx, func(path string) error {
			changes <- path
			return nil
		})
	}()

	target := filepath.Join(nested, "extra")
	require.NoError(t, os.WriteFile(target, []byte("a=1"), 0644))

	select {
	case path := <-changes:
		assert.Equal(t, target, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcher_StopsOnCallbackError(t *testing.T) {
	dir := t.TempDir()

	w, err := watch.New([]string{dir}, 10*time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(string) error { return assert.AnError })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644))
	assert.ErrorIs(t, <-done, assert.AnError)
}
