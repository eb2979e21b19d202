package batch

import (
	"context"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/progress"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
)

func (a *implAggregator) Run(ctx context.Context, files []sequence.File, opts Options) (result Transcript, err error) {
	workspace, err := a.mkdirTemp(a.tempDir, workspacePattern)
	if err != nil {
		return Transcript{}, &WorkspaceError{Dir: a.tempDir, Err: err}
	}
	defer func() {
		a.stage(ctx, opts, StageCleanup)
		if rmErr := a.removeAll(workspace); rmErr != nil {
			a.logger.Warn(ctx, "Failed to remove workspace %s: %v", workspace, rmErr)
		}
		if err == nil {
			a.stage(ctx, opts, StageDone)
		}
	}()

	a.stage(ctx, opts, StagePlanning)
	results, total := a.planAll(ctx, files, opts.Policy)
	a.logger.Info(ctx, "Total segments to process: %d", total)

	a.stage(ctx, opts, StageExecuting)
	counter := progress.NewCounter(total, opts.Observer)
	if err := a.executeAll(ctx, results, workspace, opts, counter); err != nil {
		return Transcript{}, err
	}

	a.stage(ctx, opts, StageAggregating)
	for i := range results {
		a.aggregate(ctx, &results[i], len(results))
	}

	return Transcript{Files: results, TestMode: opts.Policy.TestMode}, nil
}

// planAll plans every file before any transcription so the progress total is known.
func (a *implAggregator) planAll(ctx context.Context, files []sequence.File, policy chunk.Policy) ([]FileTranscript, int) {
	results := make([]FileTranscript, len(files))
	total := 0

	for i, f := range files {
		results[i] = FileTranscript{Index: i + 1, File: f}

		plan, err := a.planner.Plan(ctx, f, policy)
		if err != nil {
			a.logger.Error(ctx, "Failed to plan %s: %v", f.Name(), err)
			results[i].Err = err
			continue
		}

		results[i].Plan = plan
		total += plan.SegmentCount
		a.logger.Debug(ctx, "Planned %s: %s, %d segment(s)", f.Name(), plan.Mode, plan.SegmentCount)
	}

	return results, total
}

func (a *implAggregator) executeAll(ctx context.Context, results []FileTranscript, workspace string, opts Options, counter *progress.Counter) error {
	if opts.MaxConcurrentFiles <= 1 {
		for i := range results {
			if err := a.executeFile(ctx, &results[i], len(results), workspace, opts, counter); err != nil {
				return err
			}
		}
		return nil
	}

	sem := newSemaphore(opts.MaxConcurrentFiles)
	var wg sync.WaitGroup

	for i := range results {
		if err := sem.acquire(ctx); err != nil {
			break
		}

		wg.Add(1)
		go func(ft *FileTranscript) {
			defer wg.Done()
			defer sem.release()
			// cancellation is picked up through ctx.Err below
			_ = a.executeFile(ctx, ft, len(results), workspace, opts, counter)
		}(&results[i])
	}

	wg.Wait()
	return ctx.Err()
}

// executeFile materializes and transcribes one file. It only returns an
// error when ctx is done; per-file failures are recorded on ft.
func (a *implAggregator) executeFile(ctx context.Context, ft *FileTranscript, count int, workspace string, opts Options, counter *progress.Counter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ft.Err != nil {
		return nil
	}

	a.logger.Info(ctx, "[%d/%d] Processing: %s", ft.Index, count, ft.File.Name())

	segments, err := a.materializer.Materialize(ctx, ft.Plan, workspace)
	if err != nil {
		a.logger.Error(ctx, "Skipping %s: %v", ft.File.Name(), err)
		ft.Err = err
		return nil
	}

	ft.Outcomes = make([]transcriber.Outcome, 0, len(segments))
	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return err
		}
		ft.Outcomes = append(ft.Outcomes, a.driver.Transcribe(ctx, seg, opts.Language, counter))
	}

	return nil
}

// aggregate joins the successful segment texts of one file in ordinal order.
func (a *implAggregator) aggregate(ctx context.Context, ft *FileTranscript, count int) {
	if ft.Err != nil {
		return
	}

	texts := make([]string, 0, len(ft.Outcomes))
	for _, o := range ft.Outcomes {
		if o.OK() {
			texts = append(texts, o.Text)
		}
	}

	if len(texts) == 0 {
		a.logger.Warn(ctx, "No valid transcript generated for file %d/%d: %s", ft.Index, count, ft.File.Name())
		return
	}

	ft.Text = strings.Join(texts, " ")
	a.logger.Info(ctx, "File %d completed: %d/%d segment(s) transcribed", ft.Index, len(texts), len(ft.Outcomes))
}

func (a *implAggregator) stage(ctx context.Context, opts Options, s Stage) {
	a.logger.Debug(ctx, "Batch stage: %s", s)
	if opts.OnStage != nil {
		opts.OnStage(s)
	}
}
