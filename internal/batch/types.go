package batch

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/progress"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
)

// Stage is a step of one aggregator run.
type Stage string

const (
	StagePlanning    Stage = "planning"
	StageExecuting   Stage = "executing"
	StageAggregating Stage = "aggregating"
	StageCleanup     Stage = "cleanup"
	StageDone        Stage = "done"
)

// Options configures one run.
type Options struct {
	Policy   chunk.Policy
	Language string
	// Observer receives segment progress; may be nil.
	Observer progress.Observer
	// OnStage is called on every stage transition; may be nil.
	OnStage func(Stage)
	// MaxConcurrentFiles above 1 processes that many files at once.
	// Segments of one file are always sequential.
	MaxConcurrentFiles int
}

// WorkspaceError reports that the run's temporary workspace could not be created.
type WorkspaceError struct {
	Dir string
	Err error
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("create workspace in %q: %v", e.Dir, e.Err)
}

func (e *WorkspaceError) Unwrap() error {
	return e.Err
}

// FileTranscript is the result for one located file.
type FileTranscript struct {
	// Index is the 1-based position in the located list.
	Index    int
	File     sequence.File
	Plan     chunk.Plan
	Text     string
	Outcomes []transcriber.Outcome
	// Err is set when the file could not be planned or materialized.
	Err error
}

// HadError reports whether any part of the file failed.
func (f FileTranscript) HadError() bool {
	if f.Err != nil {
		return true
	}
	for _, o := range f.Outcomes {
		if !o.OK() {
			return true
		}
	}
	return false
}

// Transcript is the combined result of a run.
type Transcript struct {
	Files    []FileTranscript
	TestMode bool
}

// Empty reports that no file produced any text.
func (t Transcript) Empty() bool {
	for _, f := range t.Files {
		if f.Text != "" {
			return false
		}
	}
	return true
}

// String renders one labeled block per file with text, separated by a blank line.
func (t Transcript) String() string {
	marker := ""
	if t.TestMode {
		marker = "TEST "
	}

	blocks := make([]string, 0, len(t.Files))
	for _, f := range t.Files {
		if f.Text == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("=== %sFile %d: %s ===\n%s", marker, f.Index, f.File.Name(), f.Text))
	}
	return strings.Join(blocks, "\n\n")
}

// Failures returns every failed segment outcome in file then ordinal order.
func (t Transcript) Failures() []transcriber.Outcome {
	var failed []transcriber.Outcome
	for _, f := range t.Files {
		for _, o := range f.Outcomes {
			if !o.OK() {
				failed = append(failed, o)
			}
		}
	}
	return failed
}
