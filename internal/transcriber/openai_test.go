package transcriber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

func writeSegment(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meet_1_chunk_001.mp4")
	require.NoError(t, os.WriteFile(path, []byte("fake audio"), 0o644))
	return path
}

func TestOpenAITranscribe(t *testing.T) {
	var gotPath, gotModel, gotLanguage, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotFormat = r.FormValue("response_format")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"สวัสดีครับ"}`))
	}))
	defer srv.Close()

	backend := NewOpenAI("test-key", srv.URL, "")
	text, err := backend.Transcribe(context.Background(), writeSegment(t), "th")

	require.NoError(t, err)
	assert.Equal(t, "สวัสดีครับ", text)
	assert.True(t, strings.HasSuffix(gotPath, "/audio/transcriptions"))
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, "th", gotLanguage)
	assert.Equal(t, "json", gotFormat)
}

func TestOpenAIStatusClassified(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, KindQuota},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusRequestEntityTooLarge, KindRejected},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
			}))
			defer srv.Close()

			d := NewDriver(NewOpenAI("test-key", srv.URL, "whisper-1"), logger.Nop(), 0)
			out := d.Transcribe(context.Background(), segment(writeSegment(t), 1), "th", nil)

			require.False(t, out.OK())
			assert.Equal(t, tt.want, out.Err.Kind)
			assert.Equal(t, 1, calls, "single attempt")
		})
	}
}

func TestOpenAIMissingFile(t *testing.T) {
	backend := NewOpenAI("test-key", "http://127.0.0.1:1", "")
	_, err := backend.Transcribe(context.Background(), filepath.Join(t.TempDir(), "gone.mp4"), "th")
	require.Error(t, err)
}
