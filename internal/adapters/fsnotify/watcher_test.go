package fsnotify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "keywords.txt")
	require.NoError(t, os.WriteFile(file, []byte("one\n"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changes := make(chan string, 8)
	require.NoError(t, w.Watch([]string{file}, func(p string) { changes <- p }))

	require.NoError(t, os.WriteFile(file, []byte("one\ntwo\n"), 0644))

	select {
	case p := <-changes:
		assert.Equal(t, file, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event within timeout")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "keywords.txt")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(file, []byte("one\n"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	var fired int
	done := make(chan struct{}, 1)
	require.NoError(t, w.Watch([]string{file}, func(p string) {
		fired++
		done <- struct{}{}
	}))

	// A sibling file in the same directory must not trigger the callback.
	require.NoError(t, os.WriteFile(other, []byte("noise\n"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, fired)

	require.NoError(t, os.WriteFile(file, []byte("two\n"), 0644))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watched file change not seen")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	err = w.Watch([]string{"/nonexistent/dir/keywords.txt"}, func(string) {})
	assert.Error(t, err)
}
