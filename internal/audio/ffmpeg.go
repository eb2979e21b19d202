package audio

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-digest/pkg/executor"
)

// FFmpegOptions configures the ffmpeg-backed codec.
type FFmpegOptions struct {
	FFmpegPath  string
	FFprobePath string
	AudioCodec  string
	Bitrate     string
}

type implFFmpeg struct {
	executor executor.Executor
	opts     FFmpegOptions
}

// NewFFmpeg creates a Codec that shells out to ffprobe and ffmpeg.
// Exports are AAC in an MP4 container, which the transcription services accept.
func NewFFmpeg(exec executor.Executor, opts FFmpegOptions) Codec {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	if opts.AudioCodec == "" {
		opts.AudioCodec = "aac"
	}
	if opts.Bitrate == "" {
		opts.Bitrate = "64k"
	}
	return &implFFmpeg{executor: exec, opts: opts}
}

func (f *implFFmpeg) Duration(ctx context.Context, path string) (time.Duration, error) {
	// -show_entries format=duration: container duration only
	// -of default=noprint_wrappers=1:nokey=1: bare number on stdout
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := f.executor.Execute(ctx, f.opts.FFprobePath, args...)
	if err != nil {
		return 0, decodeErr("probe", path, err)
	}

	return parseSeconds(path, out)
}

func (f *implFFmpeg) Export(ctx context.Context, src string, cuts []Cut) error {
	if len(cuts) == 0 {
		return nil
	}

	args := buildExportArgs(src, cuts, f.opts)
	if _, err := f.executor.Execute(ctx, f.opts.FFmpegPath, args...); err != nil {
		return decodeErr("export", src, err)
	}
	return nil
}

func (f *implFFmpeg) Extension(string) string {
	return ".mp4"
}

// buildExportArgs decodes src once and writes one output per cut.
// -ss/-t placed after -i apply per output, so every cut is taken from the
// same decoded stream.
func buildExportArgs(src string, cuts []Cut, opts FFmpegOptions) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", src,
	}

	for _, c := range cuts {
		args = append(args,
			"-map", "0:a:0",
			"-vn",
			"-ss", formatSeconds(c.Start),
			"-t", formatSeconds(c.Length),
			"-c:a", opts.AudioCodec,
			"-b:a", opts.Bitrate,
			"-f", "mp4",
			c.Path,
		)
	}

	return args
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func parseSeconds(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "N/A" {
		return 0, decodeErr("probe", path, fmt.Errorf("no duration reported"))
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, decodeErr("probe", path, fmt.Errorf("parse duration %q: %w", s, err))
	}
	if secs < 0 {
		return 0, decodeErr("probe", path, fmt.Errorf("negative duration %q", s))
	}

	return time.Duration(math.Round(secs*1000)) * time.Millisecond, nil
}
