package batch

import (
	"os"

	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/transcriber"
)

const workspacePattern = "audio_chunks_*"

type implAggregator struct {
	planner      chunk.Planner
	materializer chunk.Materializer
	driver       transcriber.Driver
	logger       logger.Logger
	tempDir      string

	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
}

// New creates an Aggregator whose workspaces live under tempDir
// (os.TempDir() when empty).
func New(planner chunk.Planner, materializer chunk.Materializer, driver transcriber.Driver, log logger.Logger, tempDir string) Aggregator {
	return &implAggregator{
		planner:      planner,
		materializer: materializer,
		driver:       driver,
		logger:       log,
		tempDir:      tempDir,
		mkdirTemp:    os.MkdirTemp,
		removeAll:    os.RemoveAll,
	}
}
