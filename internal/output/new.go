package output

import (
	"strings"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type implWriter struct {
	dir     string
	formats []string
	logger  logger.Logger
}

// New creates a Writer into dir for the given formats ("txt", "docx").
// An empty format list means txt only.
func New(dir string, formats []string, log logger.Logger) Writer {
	normalized := make([]string, 0, len(formats))
	for _, f := range formats {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(f)))
	}
	if len(normalized) == 0 {
		normalized = []string{"txt"}
	}
	return &implWriter{dir: dir, formats: normalized, logger: log}
}
