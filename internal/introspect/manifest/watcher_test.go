package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the manifest watcher:
//
// 1. A manifest written after Start triggers a reload and the callback
//    receives the diff
// 2. Deleting a manifest reports its symbols as removed
// 3. Non-manifest files never trigger the callback
// 4. Stop is idempotent and works on a watcher that never started

// waitForDiff receives one diff or fails the test after a generous
// timeout; filesystem notification latency varies between platforms.
func waitForDiff(t *testing.T, diffs <-chan Diff) Diff {
	t.Helper()
	select {
	case diff := <-diffs:
		return diff
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a manifest diff")
		return Diff{}
	}
}

func startWatcher(t *testing.T, s *Source) <-chan Diff {
	t.Helper()
	diffs := make(chan Diff, 8)
	w, err := NewWatcher(s, 50*time.Millisecond, func(d Diff) {
		diffs <- d
	})
	require.NoError(t, err)
	w.Start(context.Background())
	t.Cleanup(func() { w.Stop() })

	// Give the watch goroutine a moment to come up before mutating the
	// tree.
	time.Sleep(100 * time.Millisecond)
	return diffs
}

func TestWatcherReportsNewManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)
	diffs := startWatcher(t, s)

	writeManifest(t, dir, "gadget.symbols.json", `{
  "symbols": [{"name": "Acme\\Gadget", "kind": "class"}]
}`)

	diff := waitForDiff(t, diffs)
	assert.Contains(t, diff.Changed, `Acme\Gadget`)

	// The source index itself was reloaded.
	assert.Equal(t, 3, s.Len())
}

func TestWatcherReportsRemovedManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	gadgetPath := writeManifest(t, dir, "gadget.symbols.json", `{
  "symbols": [{"name": "Acme\\Gadget", "kind": "class"}]
}`)
	s := newSource(t, dir)
	diffs := startWatcher(t, s)

	require.NoError(t, os.Remove(gadgetPath))

	diff := waitForDiff(t, diffs)
	assert.Contains(t, diff.Removed, `Acme\Gadget`)
	assert.Equal(t, 2, s.Len())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)
	diffs := startWatcher(t, s)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	select {
	case diff := <-diffs:
		t.Fatalf("unexpected diff for a non-manifest file: %+v", diff)
	case <-time.After(500 * time.Millisecond):
		// Quiet, as it should be.
	}
}

func TestWatcherStop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)

	// Stop without Start.
	w, err := NewWatcher(s, 50*time.Millisecond, func(Diff) {})
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "double stop is fine")

	// Stop after Start.
	w2, err := NewWatcher(s, 50*time.Millisecond, func(Diff) {})
	require.NoError(t, err)
	w2.Start(context.Background())
	require.NoError(t, w2.Stop())
}

func TestWatcherRequiresCallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)

	_, err := NewWatcher(s, 50*time.Millisecond, nil)
	require.Error(t, err)
}
