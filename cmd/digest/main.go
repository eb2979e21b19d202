package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/batch"
	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/output"
	"github.com/nguyentantai21042004/audio-digest/internal/processor"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
	"github.com/nguyentantai21042004/audio-digest/internal/watcher"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := loadConfig(opts, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// logs stay off stdout, which carries the progress line and results
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	proc, err := buildProcessor(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		return 1
	}

	if opts.watch {
		return runWatch(ctx, cfg, opts, proc, log)
	}
	return runOnce(ctx, cfg, opts, proc, stdout)
}

// buildProcessor wires the pipeline described by cfg.
func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	exec := executor.New()

	codec := audio.NewRouter(map[string]audio.Codec{
		".wav": audio.NewWAV(),
	}, audio.NewFFmpeg(exec, audio.FFmpegOptions{
		FFmpegPath:  cfg.FFmpeg.BinaryPath,
		FFprobePath: cfg.FFmpeg.ProbePath,
		AudioCodec:  cfg.FFmpeg.AudioCodec,
		Bitrate:     cfg.FFmpeg.Bitrate,
	}))

	backend, err := transcriber.NewBackend(cfg, exec, log)
	if err != nil {
		return nil, err
	}

	sum, err := summarizer.New(cfg, log)
	if err != nil {
		return nil, err
	}

	agg := batch.New(
		chunk.NewPlanner(codec),
		chunk.NewMaterializer(codec, log),
		transcriber.NewDriver(backend, log, cfg.Transcription.Timeout),
		log,
		cfg.Paths.Temp,
	)

	return processor.New(cfg, agg, sum, output.New(cfg.Paths.Output, cfg.Output.Formats, log), log), nil
}

func runOnce(ctx context.Context, cfg *config.Config, opts *options, proc processor.Processor, stdout io.Writer) int {
	if opts.testMode {
		fmt.Fprintln(stdout, titleStyle.Render("RUNNING IN TEST MODE - Processing only the first minute of each file"))
	}

	line := newProgressLine(stdout, isTerminal(stdout))
	res, err := proc.Process(ctx, processor.Request{
		Dir:      opts.dir,
		Prefix:   opts.prefix,
		TestMode: opts.testMode,
		OnLocated: func(files []sequence.File) {
			printLocated(stdout, files, opts.testMode)
		},
		Observer: line,
	})
	line.Done()

	switch {
	case errors.Is(err, sequence.ErrNoMatchingFiles):
		fmt.Fprintln(stdout, errorStyle.Render(fmt.Sprintf("No files found matching pattern '%s_*' in %s", opts.prefix, opts.dir)))
		return 1
	case errors.Is(err, processor.ErrEmptyTranscript):
		fmt.Fprintln(stdout, errorStyle.Render("No transcript content was produced; no files written"))
		return 1
	case err != nil:
		fmt.Fprintln(stdout, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		return 1
	}

	if failed := res.Transcript.Failures(); len(failed) > 0 {
		fmt.Fprintln(stdout, errorStyle.Render(fmt.Sprintf("%d segment(s) failed:", len(failed))))
		for _, o := range failed {
			fmt.Fprintf(stdout, "  %s (%s)\n", o.Marker(), o.Err.Kind)
		}
	}
	if res.SummaryErr != nil {
		fmt.Fprintln(stdout, errorStyle.Render(fmt.Sprintf("Summary failed: %v", res.SummaryErr)))
	}

	for _, p := range res.Paths {
		fmt.Fprintf(stdout, "Saved: %s\n", mutedStyle.Render(p))
	}
	suffix := ""
	if opts.testMode {
		suffix = " (TEST MODE)"
	}
	fmt.Fprintln(stdout, okStyle.Render(fmt.Sprintf("Processing complete%s! Files saved in '%s'", suffix, cfg.Paths.Output)))
	return 0
}

func printLocated(w io.Writer, files []sequence.File, testMode bool) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Found %d file(s):", len(files))))
	for i, f := range files {
		note := ""
		if testMode {
			note = " (will process 1min only)"
		}
		size := "?"
		if info, err := os.Stat(f.Path); err == nil {
			size = fmt.Sprintf("%.1fMB", float64(info.Size())/(1024*1024))
		}
		fmt.Fprintf(w, "  %d. %s (%s)%s\n", i+1, f.Name(), size, note)
	}
}

func runWatch(ctx context.Context, cfg *config.Config, opts *options, proc processor.Processor, log logger.Logger) int {
	if err := os.MkdirAll(opts.dir, 0755); err != nil {
		log.Error(ctx, "Failed to create watch directory: %v", err)
		return 1
	}

	handler := func(ctx context.Context, dir, prefix string) error {
		res, err := proc.Process(ctx, processor.Request{Dir: dir, Prefix: prefix, TestMode: opts.testMode})
		if err != nil {
			return err
		}
		log.Info(ctx, "Digest %s for %s wrote %d file(s)", res.RunID, prefix, len(res.Paths))
		return nil
	}

	w, err := watcher.New(opts.dir, handler, log, watcher.Options{
		Extensions:    cfg.Transcription.Extensions,
		QuietPeriod:   cfg.Watch.QuietPeriod,
		MaxConcurrent: cfg.Watch.MaxConcurrent,
	})
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		return 1
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio digest is watching %s", opts.dir)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Watcher error: %v", err)
		return 1
	}

	log.Info(ctx, "Audio digest stopped")
	return 0
}
