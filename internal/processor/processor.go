package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/audio-digest/internal/batch"
	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/output"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
)

func newRunID() string {
	return uuid.NewString()
}

// Process orchestrates the whole digest pipeline for one file family.
func (p *implProcessor) Process(ctx context.Context, req Request) (Result, error) {
	startTime := time.Now()
	res := Result{RunID: p.newRunID()}
	ctx = logger.WithRunID(ctx, res.RunID)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting digest: %s/%s_*", req.Dir, req.Prefix)
	if req.TestMode {
		p.logger.Info(ctx, "Test mode: only the first %s of each file is processed", p.cfg.Chunking.Sample)
	}
	p.logger.Info(ctx, "========================================")

	// Step 1: Locate the file family
	files, err := sequence.Locate(req.Dir, req.Prefix, p.cfg.Transcription.Extensions)
	if err != nil {
		return res, fmt.Errorf("locate %s in %s: %w", req.Prefix, req.Dir, err)
	}
	res.Files = files
	p.logger.Info(ctx, "Found %d file(s)", len(files))
	if req.OnLocated != nil {
		req.OnLocated(files)
	}

	// Step 2: Plan, split and transcribe
	transcript, err := p.aggregator.Run(ctx, files, batch.Options{
		Policy:             p.policy(req.TestMode),
		Language:           orDefault(req.Language, p.cfg.Transcription.Language),
		Observer:           req.Observer,
		OnStage:            req.OnStage,
		MaxConcurrentFiles: p.cfg.Performance.MaxConcurrentFiles,
	})
	if err != nil {
		return res, fmt.Errorf("transcribe: %w", err)
	}
	res.Transcript = transcript

	if transcript.Empty() {
		p.logger.Error(ctx, "No transcript content produced from %d file(s)", len(files))
		return res, ErrEmptyTranscript
	}
	if failed := transcript.Failures(); len(failed) > 0 {
		p.logger.Warn(ctx, "%d segment(s) could not be transcribed", len(failed))
	}

	// Step 3: Summarize; a failed summary does not fail the run
	combined := transcript.String()
	summary, err := p.summarizer.Summarize(ctx, combined, summarizer.Options{
		Language: orDefault(req.SummaryLanguage, p.cfg.Summary.Language),
		TestMode: req.TestMode,
	})
	if err != nil {
		p.logger.Error(ctx, "Error generating summary: %v", err)
		res.SummaryErr = err
		summary = SummaryErrorMarker
	}
	res.Summary = summary

	// Step 4: Write artifacts
	paths, err := p.writer.Write(ctx, output.Artifacts{
		Prefix:     req.Prefix,
		TestMode:   req.TestMode,
		Transcript: combined,
		Summary:    summary,
	})
	res.Paths = paths
	if err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Digest completed in %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return res, nil
}

func (p *implProcessor) policy(testMode bool) chunk.Policy {
	return chunk.Policy{
		Ceiling:      p.cfg.Chunking.CeilingBytes(),
		Window:       p.cfg.Chunking.Window,
		SampleLength: p.cfg.Chunking.Sample,
		TestMode:     testMode,
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
