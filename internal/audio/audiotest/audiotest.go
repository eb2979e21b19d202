// Package audiotest writes small PCM WAV fixtures for tests.
package audiotest

import (
	"os"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SampleRate is the rate of every fixture. Low enough to keep
// multi-minute fixtures small.
const SampleRate = 1000

// WriteWAV writes a mono 16-bit WAV of the given length in seconds.
func WriteWAV(t testing.TB, path string, seconds int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	data := make([]int, seconds*SampleRate)
	for i := range data {
		data[i] = (i % 200) - 100
	}

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
}
