package transcriber

import (
	"context"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/progress"
)

type implDriver struct {
	backend Backend
	logger  logger.Logger
	timeout time.Duration
}

// NewDriver wraps backend. A positive timeout bounds each call.
func NewDriver(backend Backend, log logger.Logger, timeout time.Duration) Driver {
	return &implDriver{
		backend: backend,
		logger:  log,
		timeout: timeout,
	}
}

func (d *implDriver) Transcribe(ctx context.Context, seg chunk.Segment, language string, counter *progress.Counter) Outcome {
	label := seg.Label()
	counter.Start(label)
	defer counter.Advance(label)

	d.logger.Debug(ctx, "Transcribing %s...", label)
	started := time.Now()

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	text, err := d.backend.Transcribe(callCtx, seg.Path, language)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = ErrEmptyTranscript
		}
	}

	if err != nil {
		segErr := &SegmentError{
			Kind: classify(err),
			File: seg.Source.Name(),
			Err:  err,
		}
		d.logger.Error(ctx, "Error transcribing %s: %v", label, segErr)
		return Outcome{Segment: seg, Err: segErr}
	}

	d.logger.Debug(ctx, "Completed %s in %.1fs", label, time.Since(started).Seconds())
	return Outcome{Segment: seg, Text: text}
}
