package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderWhisperCPP = "whispercpp"

	FormatTXT  = "txt"
	FormatDOCX = "docx"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	Chunking      ChunkingConfig      `yaml:"chunking"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Paths         PathsConfig         `yaml:"paths"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Watch         WatchConfig         `yaml:"watch"`
}

type TranscriptionConfig struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	Language   string        `yaml:"language"`
	Timeout    time.Duration `yaml:"timeout"`
	Extensions []string      `yaml:"extensions"`
}

type SummaryConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Language    string  `yaml:"language"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type ChunkingConfig struct {
	CeilingMB float64       `yaml:"ceiling_mb"`
	Window    time.Duration `yaml:"window"`
	Sample    time.Duration `yaml:"sample"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	AudioCodec string `yaml:"audio_codec"`
	Bitrate    string `yaml:"bitrate"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type OutputConfig struct {
	Formats []string `yaml:"formats"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrentFiles int `yaml:"max_concurrent_files"`
}

type WatchConfig struct {
	QuietPeriod   time.Duration `yaml:"quiet_period"`
	MaxConcurrent int           `yaml:"max_concurrent"`
}

// CeilingBytes converts the configured ceiling to bytes.
func (c ChunkingConfig) CeilingBytes() int64 {
	return int64(c.CeilingMB * 1024 * 1024)
}

// HasFormat reports whether the output format is enabled.
func (c OutputConfig) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	c.Transcription.Provider = strings.ToLower(strings.TrimSpace(c.Transcription.Provider))
	c.Summary.Provider = strings.ToLower(strings.TrimSpace(c.Summary.Provider))

	switch c.Transcription.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required (or set OPENAI_API_KEY)")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key is required (or set GEMINI_API_KEY)")
		}
	case ProviderWhisperCPP:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	default:
		return fmt.Errorf("transcription.provider must be openai, gemini or whispercpp, got %q", c.Transcription.Provider)
	}

	switch c.Summary.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required (or set OPENAI_API_KEY)")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key is required (or set GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("summary.provider must be openai or gemini, got %q", c.Summary.Provider)
	}

	if c.Chunking.CeilingMB < 0 {
		return fmt.Errorf("chunking.ceiling_mb must be >= 0")
	}
	if c.Chunking.Window < 0 || c.Chunking.Sample < 0 {
		return fmt.Errorf("chunking.window and chunking.sample must be >= 0")
	}

	for _, f := range c.Output.Formats {
		switch strings.ToLower(f) {
		case FormatTXT, FormatDOCX:
		default:
			return fmt.Errorf("output.formats entries must be txt or docx, got %q", f)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}

	if c.Chunking.CeilingMB == 0 {
		c.Chunking.CeilingMB = 10
	}
	if c.Chunking.Window == 0 {
		c.Chunking.Window = 10 * time.Minute
	}
	if c.Chunking.Sample == 0 {
		c.Chunking.Sample = time.Minute
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "th"
	}
	if c.Summary.Language == "" {
		c.Summary.Language = "thai"
	}
	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 1000
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{FormatTXT}
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrentFiles <= 0 {
		c.Performance.MaxConcurrentFiles = 1
	}
	if c.Watch.MaxConcurrent <= 0 {
		c.Watch.MaxConcurrent = 2
	}
	if c.Watch.QuietPeriod <= 0 {
		c.Watch.QuietPeriod = 30 * time.Second
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}

	return nil
}
