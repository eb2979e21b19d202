package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-2.5-flash"
	defaultMaxTokens   = 1000
	defaultTemperature = 0.3
)

type implSummarizer struct {
	llm      completer
	logger   logger.Logger
	provider string
}

// New creates the Summarizer selected by summary.provider.
func New(cfg *config.Config, log logger.Logger) (Summarizer, error) {
	maxTokens := cfg.Summary.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Summary.Temperature
	if temperature < 0 {
		temperature = defaultTemperature
	}

	var llm completer
	switch cfg.Summary.Provider {
	case config.ProviderOpenAI:
		llm = newOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, modelOr(cfg.Summary.Model, defaultOpenAIModel), maxTokens, temperature)
	case config.ProviderGemini:
		llm = newGemini(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, modelOr(cfg.Summary.Model, defaultGeminiModel), maxTokens, temperature)
	default:
		return nil, fmt.Errorf("unknown summary provider %q", cfg.Summary.Provider)
	}

	return &implSummarizer{llm: llm, logger: log, provider: cfg.Summary.Provider}, nil
}

func modelOr(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
