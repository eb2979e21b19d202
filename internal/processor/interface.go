// Package processor runs one digest: locate the file family, transcribe it,
// summarize the combined transcript and write the artifacts.
package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/audio-digest/internal/batch"
	"github.com/nguyentantai21042004/audio-digest/internal/progress"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
)

// ErrEmptyTranscript means every segment of every file failed; nothing is written.
var ErrEmptyTranscript = errors.New("no transcript content was produced")

// SummaryErrorMarker replaces the summary when the summarization call fails.
const SummaryErrorMarker = "[ERROR: Could not generate summary]"

// Request names the file family to digest.
type Request struct {
	Dir      string
	Prefix   string
	TestMode bool
	// Language and SummaryLanguage override the configured values when set.
	Language        string
	SummaryLanguage string

	// OnLocated is called once with the located files before any work starts.
	OnLocated func([]sequence.File)
	Observer  progress.Observer
	OnStage   func(batch.Stage)
}

// Result describes a finished run.
type Result struct {
	RunID      string
	Files      []sequence.File
	Transcript batch.Transcript
	Summary    string
	// SummaryErr is the summarization failure hidden behind SummaryErrorMarker.
	SummaryErr error
	Paths      []string
}

// Processor runs digests. Process is safe to call concurrently.
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}
