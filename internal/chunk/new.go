package chunk

import (
	"os"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type implPlanner struct {
	codec audio.Codec
	stat  func(name string) (os.FileInfo, error)
}

type implMaterializer struct {
	codec  audio.Codec
	logger logger.Logger
}

// NewPlanner creates a Planner that probes durations through codec.
func NewPlanner(codec audio.Codec) Planner {
	return &implPlanner{codec: codec, stat: os.Stat}
}

// NewMaterializer creates a Materializer that exports through codec.
func NewMaterializer(codec audio.Codec, log logger.Logger) Materializer {
	return &implMaterializer{codec: codec, logger: log}
}
