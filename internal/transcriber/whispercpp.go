package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

// WhisperCPPOptions configures the local whisper.cpp backend.
type WhisperCPPOptions struct {
	BinaryPath string
	ModelPath  string
	FFmpegPath string
	Prompt     string
	Threads    int
	// TempDir is where the 16kHz intermediate is written; empty means os.TempDir().
	TempDir string
}

type implWhisperCPP struct {
	exec   executor.Executor
	logger logger.Logger
	opts   WhisperCPPOptions
}

// NewWhisperCPP creates a Backend that shells out to a local whisper.cpp build.
func NewWhisperCPP(exec executor.Executor, log logger.Logger, opts WhisperCPPOptions) Backend {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	return &implWhisperCPP{exec: exec, logger: log, opts: opts}
}

func (w *implWhisperCPP) Transcribe(ctx context.Context, path, language string) (string, error) {
	dir, err := os.MkdirTemp(w.opts.TempDir, "whisper_*")
	if err != nil {
		return "", fmt.Errorf("create whisper dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pcmPath := filepath.Join(dir, "input.wav")
	if err := w.toPCM(ctx, path, pcmPath); err != nil {
		return "", err
	}

	outputPrefix := filepath.Join(dir, "transcript")
	if _, err := w.exec.Execute(ctx, w.opts.BinaryPath, w.whisperArgs(pcmPath, outputPrefix, language)...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	return joinLines(string(data)), nil
}

// toPCM converts src to 16kHz mono PCM, the only input whisper.cpp reads.
func (w *implWhisperCPP) toPCM(ctx context.Context, src, dst string) error {
	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dst,
	}

	w.logger.Debug(ctx, "Converting %s to 16kHz mono PCM", filepath.Base(src))
	if _, err := w.exec.Execute(ctx, w.opts.FFmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg convert for whisper: %w", err)
	}
	return nil
}

func (w *implWhisperCPP) whisperArgs(input, outputPrefix, language string) []string {
	args := []string{
		"-m", w.opts.ModelPath,
		"-f", input,
		"-otxt",
		"-of", outputPrefix,
		"-t", strconv.Itoa(w.opts.Threads),
		"-np", // no progress prints on stderr
	}
	if lang := strings.TrimSpace(language); lang != "" {
		args = append(args, "-l", lang)
	}
	if w.opts.Prompt != "" {
		args = append(args, "--prompt", w.opts.Prompt)
	}
	return args
}

// joinLines flattens whisper's one-segment-per-line output into running text.
func joinLines(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
