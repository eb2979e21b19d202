package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-digest/internal/batch"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/output"
	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
)

type fakeAggregator struct {
	text  string
	err   error
	calls int
	opts  batch.Options
	files []sequence.File
	runID string
}

func (f *fakeAggregator) Run(ctx context.Context, files []sequence.File, opts batch.Options) (batch.Transcript, error) {
	f.calls++
	f.opts = opts
	f.files = files
	f.runID = logger.RunID(ctx)
	if f.err != nil {
		return batch.Transcript{}, f.err
	}

	tr := batch.Transcript{TestMode: opts.Policy.TestMode}
	for i, file := range files {
		ft := batch.FileTranscript{Index: i + 1, File: file}
		if i == 0 {
			ft.Text = f.text
		}
		tr.Files = append(tr.Files, ft)
	}
	return tr, nil
}

type fakeSummarizer struct {
	reply      string
	err        error
	transcript string
	opts       summarizer.Options
}

func (f *fakeSummarizer) Summarize(_ context.Context, transcript string, opts summarizer.Options) (string, error) {
	f.transcript = transcript
	f.opts = opts
	return f.reply, f.err
}

type fixture struct {
	inDir  string
	outDir string
	cfg    *config.Config
	agg    *fakeAggregator
	sum    *fakeSummarizer
	proc   *implProcessor
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()

	f := &fixture{
		inDir:  t.TempDir(),
		outDir: filepath.Join(t.TempDir(), "output"),
		cfg:    config.Default(),
		agg:    &fakeAggregator{text: "hello world"},
		sum:    &fakeSummarizer{reply: "short summary"},
	}
	f.cfg.OpenAI.APIKey = "test"
	require.NoError(t, f.cfg.Validate())

	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(f.inDir, n), []byte("audio"), 0o644))
	}

	f.proc = New(f.cfg, f.agg, f.sum, output.New(f.outDir, nil, logger.Nop()), logger.Nop()).(*implProcessor)
	f.proc.newRunID = func() string { return "run-1" }
	return f
}

func TestProcessSuccess(t *testing.T) {
	f := newFixture(t, "meet_2.m4a", "meet_1.m4a", "notes.txt")

	var located []sequence.File
	res, err := f.proc.Process(context.Background(), Request{
		Dir:       f.inDir,
		Prefix:    "meet",
		OnLocated: func(files []sequence.File) { located = files },
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, "run-1", f.agg.runID)
	require.Len(t, located, 2)
	assert.Equal(t, "meet_1.m4a", located[0].Name())
	assert.Equal(t, located, f.agg.files)

	assert.Equal(t, "th", f.agg.opts.Language)
	assert.Equal(t, int64(10*1024*1024), f.agg.opts.Policy.Ceiling)
	assert.False(t, f.agg.opts.Policy.TestMode)
	assert.Equal(t, 1, f.agg.opts.MaxConcurrentFiles)

	assert.Equal(t, "=== File 1: meet_1.m4a ===\nhello world", f.sum.transcript)
	assert.Equal(t, "thai", f.sum.opts.Language)

	require.Len(t, res.Paths, 2)
	data, err := os.ReadFile(filepath.Join(f.outDir, "meet_summary.txt"))
	require.NoError(t, err)
	assert.Equal(t, "short summary", string(data))
}

func TestProcessOverridesAndTestMode(t *testing.T) {
	f := newFixture(t, "meet_1.m4a")

	res, err := f.proc.Process(context.Background(), Request{
		Dir:             f.inDir,
		Prefix:          "meet",
		TestMode:        true,
		Language:        "en",
		SummaryLanguage: "english",
	})
	require.NoError(t, err)

	assert.Equal(t, "en", f.agg.opts.Language)
	assert.True(t, f.agg.opts.Policy.TestMode)
	assert.Equal(t, "english", f.sum.opts.Language)
	assert.True(t, f.sum.opts.TestMode)
	assert.Equal(t, "=== TEST File 1: meet_1.m4a ===\nhello world", f.sum.transcript)
	assert.Equal(t, filepath.Join(f.outDir, "meet_test_transcript.txt"), res.Paths[0])
}

func TestProcessNoMatchingFiles(t *testing.T) {
	f := newFixture(t, "other_1.m4a")

	_, err := f.proc.Process(context.Background(), Request{Dir: f.inDir, Prefix: "meet"})

	require.ErrorIs(t, err, sequence.ErrNoMatchingFiles)
	assert.Equal(t, 0, f.agg.calls)
	_, statErr := os.Stat(f.outDir)
	assert.True(t, os.IsNotExist(statErr), "no output written")
}

func TestProcessEmptyTranscript(t *testing.T) {
	f := newFixture(t, "meet_1.m4a")
	f.agg.text = ""

	_, err := f.proc.Process(context.Background(), Request{Dir: f.inDir, Prefix: "meet"})

	require.ErrorIs(t, err, ErrEmptyTranscript)
	assert.Empty(t, f.sum.transcript, "summarizer not called")
	_, statErr := os.Stat(f.outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessSummaryFailure(t *testing.T) {
	f := newFixture(t, "meet_1.m4a")
	f.sum.err = errors.New("rate limited")

	res, err := f.proc.Process(context.Background(), Request{Dir: f.inDir, Prefix: "meet"})
	require.NoError(t, err)

	assert.Equal(t, SummaryErrorMarker, res.Summary)
	assert.Error(t, res.SummaryErr)

	data, err := os.ReadFile(filepath.Join(f.outDir, "meet_summary.txt"))
	require.NoError(t, err)
	assert.Equal(t, SummaryErrorMarker, string(data))
}

func TestProcessAggregatorError(t *testing.T) {
	f := newFixture(t, "meet_1.m4a")
	wsErr := &batch.WorkspaceError{Dir: "/tmp", Err: os.ErrPermission}
	f.agg.err = wsErr

	_, err := f.proc.Process(context.Background(), Request{Dir: f.inDir, Prefix: "meet"})

	var got *batch.WorkspaceError
	require.True(t, errors.As(err, &got))
}
