package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BaseName returns the file stem used for a run's artifacts.
func BaseName(prefix string, testMode bool) string {
	if testMode {
		return prefix + "_test"
	}
	return prefix
}

func (w *implWriter) Write(ctx context.Context, a Artifacts) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := filepath.Join(w.dir, BaseName(a.Prefix, a.TestMode))
	var written []string

	for _, format := range w.formats {
		switch format {
		case "txt":
			transcriptPath := base + "_transcript.txt"
			if err := os.WriteFile(transcriptPath, []byte(a.Transcript), 0644); err != nil {
				return written, fmt.Errorf("write transcript: %w", err)
			}
			written = append(written, transcriptPath)

			summaryPath := base + "_summary.txt"
			if err := os.WriteFile(summaryPath, []byte(a.Summary), 0644); err != nil {
				return written, fmt.Errorf("write summary: %w", err)
			}
			written = append(written, summaryPath)

		case "docx":
			transcriptPath := base + "_transcript.docx"
			if err := transcriptToDocx(a.Prefix+" transcript", a.Transcript, transcriptPath); err != nil {
				return written, fmt.Errorf("write transcript docx: %w", err)
			}
			written = append(written, transcriptPath)

			summaryPath := base + "_summary.docx"
			if err := summaryToDocx(a.Prefix+" summary", a.Summary, summaryPath); err != nil {
				return written, fmt.Errorf("write summary docx: %w", err)
			}
			written = append(written, summaryPath)

		default:
			return written, fmt.Errorf("unsupported output format %q", format)
		}
	}

	for _, p := range written {
		w.logger.Info(ctx, "Saved %s", p)
	}
	return written, nil
}
