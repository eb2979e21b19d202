package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	done  chan string
}

func newRecorder() *recorder {
	return &recorder{done: make(chan string, 16)}
}

func (r *recorder) handle(_ context.Context, dir, prefix string) error {
	r.mu.Lock()
	r.calls = append(r.calls, prefix)
	r.mu.Unlock()
	r.done <- prefix
	return nil
}

func startWatcher(t *testing.T, dir string, handler EventHandler, quiet time.Duration) (context.CancelFunc, chan error) {
	t.Helper()

	w, err := New(dir, handler, logger.Nop(), Options{QuietPeriod: quiet, MaxConcurrent: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()
	return cancel, errCh
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
		return ""
	}
}

func TestWatcherDebouncesFamily(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	cancel, errCh := startWatcher(t, dir, rec.handle, 200*time.Millisecond)

	writeFile(t, filepath.Join(dir, "meet_1.m4a"))
	writeFile(t, filepath.Join(dir, "meet_2.m4a"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	assert.Equal(t, "meet", waitFor(t, rec.done))

	// no second run without new events
	select {
	case p := <-rec.done:
		t.Fatalf("unexpected second run for %s", p)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestWatcherSeparatesFamilies(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	cancel, errCh := startWatcher(t, dir, rec.handle, 100*time.Millisecond)

	writeFile(t, filepath.Join(dir, "meet_1.m4a"))
	writeFile(t, filepath.Join(dir, "lecture_1.mp3"))

	got := []string{waitFor(t, rec.done), waitFor(t, rec.done)}
	assert.ElementsMatch(t, []string{"meet", "lecture"}, got)

	cancel()
	<-errCh
}

func TestWatcherHandlerErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	done := make(chan string, 4)
	handler := func(_ context.Context, _, prefix string) error {
		done <- prefix
		return errors.New("no content")
	}
	cancel, errCh := startWatcher(t, dir, handler, 100*time.Millisecond)

	writeFile(t, filepath.Join(dir, "a_1.wav"))
	assert.Equal(t, "a", waitFor(t, done))

	writeFile(t, filepath.Join(dir, "b_1.wav"))
	assert.Equal(t, "b", waitFor(t, done))

	cancel()
	<-errCh
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Nop(), Options{})
	require.Error(t, err)
}

func TestTouchWhileRunningMarksDirty(t *testing.T) {
	w := &implWatcher{
		logger:   logger.Nop(),
		opts:     Options{QuietPeriod: time.Hour},
		families: map[string]*family{"meet": {running: true}},
	}

	w.touch(context.Background(), "meet")

	assert.Nil(t, w.families["meet"].timer)
	assert.True(t, w.markIdle("meet"))
	assert.False(t, w.markIdle("meet"))
}
