package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(apiKey string) (GeminiService, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Option: "GEMINI_API_KEY", Reason: "required for the LLM ranking stage"}
	}

	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: "gemini-2.5-flash",
	}, nil
}

// GenerateText implements GeminiService. A call is made at most once per
// pipeline stage; failures fall through to the next stage instead of being
// retried.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 2048,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", &ExternalServiceError{Service: "gemini", Err: err}
	}

	if resp == nil {
		return "", &ExternalServiceError{Service: "gemini", Err: fmt.Errorf("nil response")}
	}

	text := resp.Text()
	if text == "" {
		return "", &ExternalServiceError{Service: "gemini", Err: fmt.Errorf("no text content in response")}
	}

	return text, nil
}
