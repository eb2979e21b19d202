package transcriber

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

type geminiRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text       string `json:"text"`
			InlineData *struct {
				MimeType string `json:"mimeType"`
				Data     string `json:"data"`
			} `json:"inlineData"`
		} `json:"parts"`
	} `json:"contents"`
}

func TestGeminiTranscribe(t *testing.T) {
	var gotPath, gotKey string
	var req geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &req))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "สวัสดีครับ"}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer srv.Close()

	backend := NewGemini("test-key", srv.URL, "")
	text, err := backend.Transcribe(context.Background(), writeSegment(t), "th")

	require.NoError(t, err)
	assert.Equal(t, "สวัสดีครับ", text)
	assert.True(t, strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent"), gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, req.Contents, 1)
	assert.Equal(t, "user", req.Contents[0].Role)
	parts := req.Contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, geminiPrompt("th"), parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "audio/mp4", parts[1].InlineData.MimeType)
	data, err := base64.StdEncoding.DecodeString(parts[1].InlineData.Data)
	require.NoError(t, err)
	assert.Equal(t, "fake audio", string(data))
}

func TestGeminiStatusClassified(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, KindQuota},
		{http.StatusUnauthorized, `{"error":{"code":401,"message":"bad key","status":"UNAUTHENTICATED"}}`, KindAuth},
		{http.StatusBadRequest, `{"error":{"code":400,"message":"unsupported audio","status":"INVALID_ARGUMENT"}}`, KindRejected},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			d := NewDriver(NewGemini("test-key", srv.URL, ""), logger.Nop(), 0)
			out := d.Transcribe(context.Background(), segment(writeSegment(t), 1), "th", nil)

			require.False(t, out.OK())
			assert.Equal(t, tt.want, out.Err.Kind)
		})
	}
}

func TestGeminiMissingFile(t *testing.T) {
	backend := NewGemini("test-key", "http://127.0.0.1:1", "")
	_, err := backend.Transcribe(context.Background(), filepath.Join(t.TempDir(), "gone.mp4"), "th")
	require.Error(t, err)
}

func TestGeminiPrompt(t *testing.T) {
	assert.Contains(t, geminiPrompt("th"), "verbatim")
	assert.Contains(t, geminiPrompt("th"), `"th"`)
	assert.NotContains(t, geminiPrompt(" "), "language")
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"a.WAV":  "audio/wav",
		"a.mp3":  "audio/mpeg",
		"a.m4a":  "audio/mp4",
		"a.mp4":  "audio/mp4",
		"a.flac": "application/octet-stream",
	}
	for in, want := range tests {
		assert.Equal(t, want, mimeType(in), in)
	}
}
