package transcriber

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

// fakeExecutor writes whisper's .txt output when the whisper binary is invoked.
type fakeExecutor struct {
	output string
	err    error
	calls  [][]string
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	if name != "whisper-cli" {
		return "", nil
	}
	for i, a := range args {
		if a == "-of" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1]+".txt", []byte(f.output), 0o644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func TestWhisperCPPTranscribe(t *testing.T) {
	exec := &fakeExecutor{output: " first line\n second line \n"}
	backend := NewWhisperCPP(exec, logger.Nop(), WhisperCPPOptions{
		BinaryPath: "whisper-cli",
		ModelPath:  "/models/ggml-large-v3.bin",
		Prompt:     "meeting",
		Threads:    8,
		TempDir:    t.TempDir(),
	})

	text, err := backend.Transcribe(context.Background(), "/in/meet_1.m4a", "th")
	require.NoError(t, err)
	assert.Equal(t, "first line second line", text)

	require.Len(t, exec.calls, 2)
	assert.Equal(t, "ffmpeg", exec.calls[0][0])
	assert.Contains(t, exec.calls[0], "/in/meet_1.m4a")
	assert.Contains(t, exec.calls[0], "16000")

	whisper := exec.calls[1]
	assert.Equal(t, "whisper-cli", whisper[0])
	assert.Contains(t, whisper, "/models/ggml-large-v3.bin")
	assert.Contains(t, whisper, "-otxt")
	assert.Contains(t, whisper, "8")
	assert.Contains(t, whisper, "th")
	assert.Contains(t, whisper, "meeting")
}

func TestWhisperCPPFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}
	backend := NewWhisperCPP(exec, logger.Nop(), WhisperCPPOptions{BinaryPath: "whisper-cli", TempDir: t.TempDir()})

	_, err := backend.Transcribe(context.Background(), "/in/meet_1.m4a", "")
	require.Error(t, err)
	assert.Len(t, exec.calls, 1)
}
