package chunk

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
)

// Mode says how a source file reaches the transcription service.
type Mode int

const (
	// ModeWhole sends the original file unchanged.
	ModeWhole Mode = iota
	// ModeSplit cuts the file into fixed-length windows.
	ModeSplit
	// ModeTruncatedSample keeps only a short leading sample.
	ModeTruncatedSample
)

func (m Mode) String() string {
	switch m {
	case ModeWhole:
		return "whole"
	case ModeSplit:
		return "split"
	case ModeTruncatedSample:
		return "truncated_sample"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const (
	DefaultCeiling      int64 = 10 * 1024 * 1024
	DefaultWindow             = 10 * time.Minute
	DefaultSampleLength       = 60 * time.Second
)

// Policy holds the limits a plan is computed against.
type Policy struct {
	// Ceiling is the largest file size, in bytes, sent without splitting.
	Ceiling int64
	// Window is the length of each split segment.
	Window time.Duration
	// SampleLength is the length kept in test mode.
	SampleLength time.Duration
	TestMode     bool
}

// DefaultPolicy returns the 10 MiB / 10 minute / 1 minute limits.
func DefaultPolicy() Policy {
	return Policy{
		Ceiling:      DefaultCeiling,
		Window:       DefaultWindow,
		SampleLength: DefaultSampleLength,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Ceiling <= 0 {
		p.Ceiling = DefaultCeiling
	}
	if p.Window <= 0 {
		p.Window = DefaultWindow
	}
	if p.SampleLength <= 0 {
		p.SampleLength = DefaultSampleLength
	}
	return p
}

// Plan is the immutable decision for one file.
type Plan struct {
	File         sequence.File
	Mode         Mode
	SegmentCount int
	// Size is zero in test mode; Duration is only known for split plans.
	Size         int64
	Duration     time.Duration
	Window       time.Duration
	SampleLength time.Duration
}

// Segment is one artifact handed to the transcription service.
type Segment struct {
	Ordinal int
	Path    string
	Source  sequence.File
	Start   time.Duration
	Length  time.Duration
}

// Label names the segment for progress and error reporting.
func (s Segment) Label() string {
	return fmt.Sprintf("%s#%d", s.Source.Name(), s.Ordinal)
}
