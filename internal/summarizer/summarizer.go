package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (s *implSummarizer) Summarize(ctx context.Context, transcript string, opts Options) (string, error) {
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = "thai"
	}

	s.logger.Info(ctx, "Generating summary in %s via %s...", language, s.provider)
	started := time.Now()

	summary, err := s.llm.Complete(ctx, systemPrompt(language, opts.TestMode), userPrompt(transcript))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("summarize: empty response")
	}

	s.logger.Info(ctx, "Summary generated in %.1fs", time.Since(started).Seconds())
	return decorate(summary, opts.TestMode), nil
}
