package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type implWAV struct{}

// NewWAV creates a pure Go Codec for PCM WAV sources. Cuts are written as
// WAV with the source's sample rate, depth and channel layout.
func NewWAV() Codec {
	return &implWAV{}
}

func (w *implWAV) Duration(_ context.Context, path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, decodeErr("open", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, decodeErr("probe", path, errors.New("not a valid wav file"))
	}

	if err := dec.FwdToPCM(); err != nil {
		return 0, decodeErr("probe", path, err)
	}

	frameSize := int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if frameSize <= 0 || dec.SampleRate == 0 {
		return 0, decodeErr("probe", path, fmt.Errorf("bad format: %d channels, %d bits", dec.NumChans, dec.BitDepth))
	}
	frames := dec.PCMLen() / frameSize

	return time.Duration(frames) * time.Second / time.Duration(dec.SampleRate), nil
}

// streamFrames is how many frames are decoded per read.
const streamFrames = 4096

func (w *implWAV) Export(ctx context.Context, src string, cuts []Cut) error {
	if len(cuts) == 0 {
		return nil
	}

	f, err := os.Open(src)
	if err != nil {
		return decodeErr("open", src, err)
	}
	defer f.Close()

	_, err = exportStream(ctx, f, src, cuts)
	return err
}

func (w *implWAV) Extension(string) string {
	return ".wav"
}

// exportStream decodes r once, front to back, writing each cut's frames as
// they pass. Reading stops at the last frame any cut needs. It returns the
// number of frames decoded.
func exportStream(ctx context.Context, r io.ReadSeeker, src string, cuts []Cut) (int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return 0, decodeErr("decode", src, errors.New("not a valid wav file"))
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, decodeErr("decode", src, err)
	}

	format := sinkFormat{
		channels: int(dec.NumChans),
		rate:     int(dec.SampleRate),
		depth:    int(dec.BitDepth),
		audio:    int(dec.WavAudioFormat),
	}
	if format.channels <= 0 || format.rate <= 0 {
		return 0, decodeErr("decode", src, fmt.Errorf("bad format: %d channels at %d Hz", format.channels, format.rate))
	}

	sinks := make([]*cutSink, len(cuts))
	last := 0
	for i, c := range cuts {
		from := frameAt(c.Start, format.rate)
		to := frameAt(c.Start+c.Length, format.rate)
		if from < 0 {
			from = 0
		}
		if to < from {
			to = from
		}
		sinks[i] = &cutSink{path: c.Path, from: from, to: to, format: format}
		if to > last {
			last = to
		}
	}

	done := false
	defer func() {
		if !done {
			for _, s := range sinks {
				s.abort()
			}
		}
	}()

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: format.channels, SampleRate: format.rate},
		Data:           make([]int, streamFrames*format.channels),
		SourceBitDepth: format.depth,
	}

	pos := 0
	for pos < last {
		if err := ctx.Err(); err != nil {
			return pos, err
		}

		n, err := dec.PCMBuffer(buf)
		eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !eof {
			return pos, decodeErr("decode", src, err)
		}

		frames := n / format.channels
		if frames == 0 {
			break
		}

		for _, s := range sinks {
			if err := s.write(buf.Data[:frames*format.channels], pos, frames); err != nil {
				return pos, decodeErr("export", src, err)
			}
		}
		pos += frames

		if eof {
			break
		}
	}

	for _, s := range sinks {
		if err := s.finish(); err != nil {
			return pos, decodeErr("export", src, err)
		}
	}
	done = true
	return pos, nil
}

type sinkFormat struct {
	channels int
	rate     int
	depth    int
	audio    int
}

// cutSink is one output file fed frames [from, to) of the source.
type cutSink struct {
	path     string
	from, to int
	format   sinkFormat

	out *os.File
	enc *wav.Encoder
}

func (s *cutSink) open() error {
	out, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	s.out = out
	s.enc = wav.NewEncoder(out, s.format.rate, s.format.depth, s.format.channels, s.format.audio)

	// writes the header so an empty cut is still a valid file
	return s.encode(nil)
}

func (s *cutSink) encode(data []int) error {
	err := s.enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: s.format.channels, SampleRate: s.format.rate},
		Data:           data,
		SourceBitDepth: s.format.depth,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return nil
}

// write takes the part of data (frames starting at pos) that falls in the cut.
func (s *cutSink) write(data []int, pos, frames int) error {
	lo := max(s.from, pos)
	hi := min(s.to, pos+frames)
	if lo >= hi {
		return nil
	}
	if s.enc == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	ch := s.format.channels
	return s.encode(data[(lo-pos)*ch : (hi-pos)*ch])
}

func (s *cutSink) finish() error {
	if s.enc == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if err := s.enc.Close(); err != nil {
		s.out.Close()
		return fmt.Errorf("finalize %s: %w", s.path, err)
	}
	return s.out.Close()
}

func (s *cutSink) abort() {
	if s.out != nil {
		s.out.Close()
	}
}

func frameAt(d time.Duration, rate int) int {
	return int(int64(d) * int64(rate) / int64(time.Second))
}
