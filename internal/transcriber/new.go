package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

// NewBackend builds the Backend selected by transcription.provider.
func NewBackend(cfg *config.Config, exec executor.Executor, log logger.Logger) (Backend, error) {
	switch cfg.Transcription.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Transcription.Model), nil
	case config.ProviderGemini:
		return NewGemini(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Transcription.Model), nil
	case config.ProviderWhisperCPP:
		return NewWhisperCPP(exec, log, WhisperCPPOptions{
			BinaryPath: cfg.Whisper.BinaryPath,
			ModelPath:  cfg.Whisper.ModelPath,
			FFmpegPath: cfg.FFmpeg.BinaryPath,
			Prompt:     cfg.Whisper.Prompt,
			Threads:    cfg.Whisper.Threads,
			TempDir:    cfg.Paths.Temp,
		}), nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", cfg.Transcription.Provider)
	}
}
