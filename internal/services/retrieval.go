package services

import (
	"context"
	"fmt"
	"math"

	"talentsift/assessment-recommender/internal/models"
)

type RetrievalService interface {
	// QuerySimilar returns the assessments semantically closest to the query
	// text, within the duration budget, scored 0-100. An empty index or a
	// fully filtered-out candidate set yields an empty list, not an error.
	QuerySimilar(ctx context.Context, query string, timeLimit, topK int) ([]models.Recommendation, error)
}

type retrievalService struct {
	embedder Embedder
	index    VectorIndex
}

func NewRetrievalService(embedder Embedder, index VectorIndex) RetrievalService {
	return &retrievalService{
		embedder: embedder,
		index:    index,
	}
}

// QuerySimilar implements RetrievalService.
func (r *retrievalService) QuerySimilar(ctx context.Context, query string, timeLimit, topK int) ([]models.Recommendation, error) {
	if topK <= 0 {
		topK = 20
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := r.index.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	recommendations := []models.Recommendation{}
	for _, match := range matches {
		if !match.Metadata.WithinTimeLimit(timeLimit) {
			continue
		}

		recommendations = append(recommendations, models.Recommendation{
			Assessment:     match.Metadata,
			RelevanceScore: int(math.Round(float64(match.Score) * 100)),
		})
	}

	return recommendations, nil
}
