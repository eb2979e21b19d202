// Package progress tracks how many segments of a run have been attempted.
package progress

import "sync"

// Stage tells an observer which side of a transcription call an event is on.
type Stage string

const (
	StageStarted  Stage = "started"
	StageFinished Stage = "finished"
)

// Event is one progress signal. Completed counts attempted segments,
// Total is fixed for the run.
type Event struct {
	Completed int
	Total     int
	Label     string
	Stage     Stage
}

// Observer receives progress signals. Implementations must not block for long.
type Observer interface {
	OnProgress(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnProgress(e Event) {
	f(e)
}

// Counter is a run-scoped progress counter. The total is fixed at
// construction; completed only grows and never passes the total.
// Safe for concurrent use; events are delivered in counter order.
type Counter struct {
	mu        sync.Mutex
	completed int
	total     int
	observer  Observer
}

// NewCounter creates a counter for total segments. observer may be nil.
func NewCounter(total int, observer Observer) *Counter {
	if total < 0 {
		total = 0
	}
	return &Counter{total: total, observer: observer}
}

// Start signals that work on label is about to begin.
// Start and Advance on a nil *Counter do nothing.
func (c *Counter) Start(label string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emit(label, StageStarted)
}

// Advance records one attempted segment and signals it.
func (c *Counter) Advance(label string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.completed < c.total {
		c.completed++
	}
	c.emit(label, StageFinished)
}

// Snapshot returns the current completed and total values.
func (c *Counter) Snapshot() (completed, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed, c.total
}

func (c *Counter) emit(label string, stage Stage) {
	if c.observer == nil {
		return
	}
	c.observer.OnProgress(Event{
		Completed: c.completed,
		Total:     c.total,
		Label:     label,
		Stage:     stage,
	})
}
