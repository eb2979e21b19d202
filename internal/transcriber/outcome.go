package transcriber

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audio-digest/internal/chunk"
)

// ErrEmptyTranscript marks a call that succeeded but returned no text.
var ErrEmptyTranscript = errors.New("transcription response is empty")

// ErrorKind classifies a failed transcription call.
type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindTimeout  ErrorKind = "timeout"
	KindQuota    ErrorKind = "quota"
	KindAuth     ErrorKind = "auth"
	KindRejected ErrorKind = "rejected"
	KindUnknown  ErrorKind = "unknown"
)

// SegmentError is the failure side of an Outcome.
type SegmentError struct {
	Kind ErrorKind
	// File is the base name of the segment's source recording.
	File string
	Err  error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("could not transcribe %s (%s): %v", e.File, e.Kind, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// Outcome is the result of one attempted segment: text or an error, never both.
type Outcome struct {
	Segment chunk.Segment
	Text    string
	Err     *SegmentError
}

// OK reports whether the segment produced text.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Marker renders a failed outcome the way it appears in reports.
func (o Outcome) Marker() string {
	if o.OK() {
		return ""
	}
	return fmt.Sprintf("[ERROR: Could not transcribe %s]", o.Err.File)
}

func classify(err error) ErrorKind {
	if errors.Is(err, ErrEmptyTranscript) {
		return KindRejected
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return kindForStatus(oaErr.StatusCode)
	}

	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return kindForStatus(gErr.Code)
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return kindForStatus(gErrPtr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return KindQuota
	}
	return KindUnknown
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == 429:
		return KindQuota
	case code == 401 || code == 403:
		return KindAuth
	case code == 408 || code == 504:
		return KindTimeout
	case code >= 400 && code < 500:
		return KindRejected
	case code >= 500:
		return KindNetwork
	default:
		return KindUnknown
	}
}
