package output

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-digest/internal/logger"
)

func TestWriteText(t *testing.T) {
	tests := []struct {
		name     string
		testMode bool
		want     []string
	}{
		{"normal", false, []string{"meet_transcript.txt", "meet_summary.txt"}},
		{"test mode", true, []string{"meet_test_transcript.txt", "meet_test_summary.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested", "output")
			w := New(dir, nil, logger.Nop())

			paths, err := w.Write(context.Background(), Artifacts{
				Prefix:     "meet",
				TestMode:   tt.testMode,
				Transcript: "=== File 1: meet_1.m4a ===\nhello",
				Summary:    "summary",
			})
			require.NoError(t, err)
			require.Len(t, paths, 2)

			for i, name := range tt.want {
				assert.Equal(t, filepath.Join(dir, name), paths[i])
			}

			data, err := os.ReadFile(paths[0])
			require.NoError(t, err)
			assert.Equal(t, "=== File 1: meet_1.m4a ===\nhello", string(data))

			data, err = os.ReadFile(paths[1])
			require.NoError(t, err)
			assert.Equal(t, "summary", string(data))
		})
	}
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, []string{"TXT", "docx"}, logger.Nop())

	paths, err := w.Write(context.Background(), Artifacts{
		Prefix:     "meet",
		Transcript: "=== File 1: meet_1.m4a ===\nhello there\n\n=== File 2: meet_2.m4a ===\nagain",
		Summary:    "# Summary\n\n- **Budget** approved\n1. follow up",
	})
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "meet_transcript.docx"), paths[2])
	assert.Equal(t, filepath.Join(dir, "meet_summary.docx"), paths[3])

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	body := docxBody(t, paths[3])
	assert.Contains(t, body, "1. follow up")
	assert.Contains(t, body, "Budget")
	assert.NotContains(t, body, "**")
}

// docxBody returns the main document part of a .docx file.
func docxBody(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatalf("%s has no word/document.xml", path)
	return ""
}

func TestWriteUnknownFormat(t *testing.T) {
	w := New(t.TempDir(), []string{"pdf"}, logger.Nop())
	_, err := w.Write(context.Background(), Artifacts{Prefix: "meet"})
	require.Error(t, err)
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold code", cleanMarkdownInline("**bold** `code`"))
}
