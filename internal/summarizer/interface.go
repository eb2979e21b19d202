// Package summarizer turns a combined transcript into a short abstractive summary.
package summarizer

import "context"

// Options controls one summary request.
type Options struct {
	// Language is the natural-language name the summary is written in, e.g. "thai".
	Language string
	TestMode bool
}

// Summarizer produces a summary with a single language-model call.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, opts Options) (string, error)
}

// completer is one chat-style call to a language model.
type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
