// Package transcriber drives the speech-to-text capability one segment at
// a time and turns failures into tagged outcomes instead of errors.
package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/progress"
)

// Backend is the remote (or local) speech-to-text capability.
type Backend interface {
	// Transcribe returns the plain-text transcript of the audio at path.
	// language is an ISO-639-1 hint and may be empty.
	Transcribe(ctx context.Context, path, language string) (string, error)
}

// Driver attempts each segment exactly once.
type Driver interface {
	// Transcribe never returns an error; failures are carried in the Outcome.
	// counter may be nil.
	Transcribe(ctx context.Context, seg chunk.Segment, language string, counter *progress.Counter) Outcome
}
