// Package watcher turns a drop directory into digest runs: files are grouped
// by family prefix and a family is handed off once it has been quiet for a while.
package watcher

import (
	"context"
	"time"
)

// Watcher monitors one directory until its context is cancelled.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one settled file family.
type EventHandler func(ctx context.Context, dir, prefix string) error

// Options tunes debouncing and concurrency.
type Options struct {
	// Extensions accepted as family members, without the dot.
	Extensions []string
	// QuietPeriod is how long a family must see no events before it is handled.
	QuietPeriod time.Duration
	// MaxConcurrent caps simultaneous handler runs.
	MaxConcurrent int
}
