package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type implGemini struct {
	apiKey  string
	baseURL string
	model   string
}

// NewGemini creates a Backend that asks a Gemini model for a verbatim transcript.
// An empty baseURL uses the public endpoint.
func NewGemini(apiKey, baseURL, model string) Backend {
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	return &implGemini{apiKey: apiKey, baseURL: baseURL, model: model}
}

func (g *implGemini) Transcribe(ctx context.Context, path, language string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read segment: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromText(geminiPrompt(language)),
				genai.NewPartFromBytes(data, mimeType(path)),
			},
			genai.RoleUser,
		),
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini transcription: %w", err)
	}

	return result.Text(), nil
}

func geminiPrompt(language string) string {
	prompt := "Transcribe this audio verbatim. Return only the transcript as plain text, without timestamps, speaker labels or commentary."
	if lang := strings.TrimSpace(language); lang != "" {
		prompt += fmt.Sprintf(" The speech is in language %q.", lang)
	}
	return prompt
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
