// Package audio is the audio-processing capability the pipeline relies on:
// reading a stream's duration and exporting time-bounded cuts of it.
package audio

import (
	"context"
	"time"
)

// Cut is one time window of a source stream exported to Path.
// A window reaching past the end of the stream is clamped to it.
type Cut struct {
	Start  time.Duration
	Length time.Duration
	Path   string
}

// Codec decodes a source once per call and re-encodes cuts of it.
type Codec interface {
	// Duration returns the total play time of the stream at path.
	Duration(ctx context.Context, path string) (time.Duration, error)
	// Export writes every cut of src in a single decode pass.
	Export(ctx context.Context, src string, cuts []Cut) error
	// Extension is the file extension, dot included, of artifacts
	// exported from src.
	Extension(src string) string
}
