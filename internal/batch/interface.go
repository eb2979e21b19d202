// Package batch runs planning, materialization and transcription across an
// ordered file family and joins the results into one transcript.
package batch

import (
	"context"

	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
)

// Aggregator runs one batch. Each Run owns its workspace and progress
// counter, so concurrent runs do not share state.
type Aggregator interface {
	Run(ctx context.Context, files []sequence.File, opts Options) (Transcript, error)
}
