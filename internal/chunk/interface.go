// Package chunk decides how each recording is cut to fit the transcription
// service's upload ceiling and writes the resulting segment artifacts.
package chunk

import (
	"context"

	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
)

// Planner computes a Plan without writing anything.
type Planner interface {
	Plan(ctx context.Context, file sequence.File, policy Policy) (Plan, error)
}

// Materializer turns a Plan into segment artifacts inside workspace.
type Materializer interface {
	Materialize(ctx context.Context, plan Plan, workspace string) ([]Segment, error)
}
