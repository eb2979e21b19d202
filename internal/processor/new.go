package processor

import (
	"github.com/nguyentantai21042004/audio-digest/internal/batch"
	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/internal/output"
	"github.com/nguyentantai21042004/audio-digest/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	aggregator batch.Aggregator
	summarizer summarizer.Summarizer
	writer     output.Writer
	logger     logger.Logger
	newRunID   func() string
}

// New creates a Processor from its collaborators.
func New(cfg *config.Config, agg batch.Aggregator, sum summarizer.Summarizer, w output.Writer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		aggregator: agg,
		summarizer: sum,
		writer:     w,
		logger:     log,
		newRunID:   newRunID,
	}
}
