package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			Provider:   ProviderOpenAI,
			Language:   "th",
			Extensions: []string{"m4a", "mp3", "wav", "mp4"},
		},
		Summary: SummaryConfig{
			Provider:    ProviderOpenAI,
			Language:    "thai",
			MaxTokens:   1000,
			Temperature: 0.3,
		},
		Chunking: ChunkingConfig{
			CeilingMB: 10,
			Window:    10 * time.Minute,
			Sample:    time.Minute,
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			ProbePath:  "ffprobe",
			AudioCodec: "aac",
			Bitrate:    "64k",
		},
		Paths: PathsConfig{
			Output: "output",
		},
		Output: OutputConfig{
			Formats: []string{FormatTXT},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Performance: PerformanceConfig{
			MaxConcurrentFiles: 1,
		},
		Watch: WatchConfig{
			QuietPeriod:   30 * time.Second,
			MaxConcurrent: 2,
		},
	}
}

// Load reads a YAML file on top of Default. It does not validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv fills secrets left empty in the file from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = getenv("OPENAI_BASE_URL")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = getenv("GEMINI_API_KEY")
	}
}
