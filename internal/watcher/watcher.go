package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
)

// family is the debounce state of one prefix.
type family struct {
	timer   *time.Timer
	running bool
	// dirty records events that arrived while a run was in progress.
	dirty bool
}

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	opts      Options
	semaphore chan struct{}
	wg        sync.WaitGroup

	ready    chan string
	mu       sync.Mutex
	families map[string]*family
}

// Start monitors the input directory until ctx is cancelled, then waits for
// in-flight runs to finish.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d, quiet period: %s). Monitoring: %s",
		w.opts.MaxConcurrent, w.opts.QuietPeriod, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %v", w.opts.Extensions)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case prefix := <-w.ready:
			// Acquire semaphore slot (blocks if max concurrent reached)
			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go w.run(ctx, prefix)
			case <-ctx.Done():
				w.markIdle(prefix)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	prefix, seq, ok := sequence.Parse(filepath.Base(event.Name), w.opts.Extensions)
	if !ok {
		w.logger.Debug(ctx, "Ignoring file outside any sequence: %s", event.Name)
		return
	}

	if event.Has(fsnotify.Create) {
		w.logger.Info(ctx, "New recording detected: %s (family %s, part %d)", filepath.Base(event.Name), prefix, seq)
	}
	w.touch(ctx, prefix)
}

// touch (re)arms the quiet-period timer of prefix.
func (w *implWatcher) touch(ctx context.Context, prefix string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok := w.families[prefix]
	if !ok {
		f = &family{}
		w.families[prefix] = f
	}

	if f.running {
		f.dirty = true
		return
	}

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(w.opts.QuietPeriod, func() {
		w.settle(ctx, prefix)
	})
}

// settle hands a quiet family to the dispatch loop.
func (w *implWatcher) settle(ctx context.Context, prefix string) {
	w.mu.Lock()
	f := w.families[prefix]
	if f == nil || f.running {
		w.mu.Unlock()
		return
	}
	f.running = true
	f.timer = nil
	w.mu.Unlock()

	select {
	case w.ready <- prefix:
	case <-ctx.Done():
		w.markIdle(prefix)
	}
}

func (w *implWatcher) run(ctx context.Context, prefix string) {
	defer w.wg.Done()
	defer func() { <-w.semaphore }() // Release semaphore

	w.logger.Info(ctx, "Family %s is settled, starting digest", prefix)
	if err := w.handler(ctx, w.inputDir, prefix); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", prefix, err)
	}

	if w.markIdle(prefix) && ctx.Err() == nil {
		w.logger.Info(ctx, "Family %s changed during processing, scheduling another run", prefix)
		w.touch(ctx, prefix)
	}
}

// markIdle clears the running flag and reports whether events arrived meanwhile.
func (w *implWatcher) markIdle(prefix string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	f := w.families[prefix]
	if f == nil {
		return false
	}
	f.running = false
	dirty := f.dirty
	f.dirty = false
	return dirty
}

func (w *implWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, f := range w.families {
		if f.timer != nil {
			f.timer.Stop()
			f.timer = nil
		}
	}
}
