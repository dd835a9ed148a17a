package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const openaiEmbeddingDim = 1536

type openaiEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates the remote embedding backend. It uses
// text-embedding-3-small, which produces 1536-dimension vectors.
func NewOpenAIEmbedder(apiKey string) (Embedder, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Option: "OPENAI_API_KEY", Reason: "required for the openai embedding backend"}
	}

	return &openaiEmbedder{
		client: openai.NewClient(apiKey),
		model:  openai.SmallEmbedding3,
	}, nil
}

// Embed implements Embedder.
func (e *openaiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, &ExternalServiceError{Service: "openai", Err: err}
	}

	if len(resp.Data) == 0 {
		return nil, &ExternalServiceError{Service: "openai", Err: fmt.Errorf("no embedding returned")}
	}

	embedding := resp.Data[0].Embedding
	if len(embedding) != openaiEmbeddingDim {
		return nil, fmt.Errorf("%w: got %d values, expected %d", ErrDimensionMismatch, len(embedding), openaiEmbeddingDim)
	}

	return embedding, nil
}

// Dim implements Embedder.
func (e *openaiEmbedder) Dim() int {
	return openaiEmbeddingDim
}

// Model implements Embedder.
func (e *openaiEmbedder) Model() string {
	return string(e.model)
}
