package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

const defaultOpenAIModel = "whisper-1"

type implOpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a Backend on the OpenAI audio transcription endpoint.
func NewOpenAI(apiKey, baseURL, model string) Backend {
	opts := make([]option.RequestOption, 0, 3)
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	// single attempt per segment
	opts = append(opts, option.WithMaxRetries(0))

	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}

	return &implOpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *implOpenAI) Transcribe(ctx context.Context, path, language string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open segment: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(o.model),
		ResponseFormat: openai.AudioResponseFormatJSON,
	}
	if lang := strings.TrimSpace(language); lang != "" {
		params.Language = param.NewOpt(lang)
	}

	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("openai transcription: nil response")
	}

	return resp.Text, nil
}
