package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiCompleter struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int32
	temperature float32
}

func newGemini(apiKey, baseURL, model string, maxTokens int, temperature float64) *geminiCompleter {
	return &geminiCompleter{
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: float32(temperature),
	}
}

func (g *geminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   g.maxTokens,
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
