package services

import (
	"context"

	"talentsift/assessment-recommender/internal/models"
)

// EmbeddingUpsert is one vector plus the assessment copy stored alongside it.
type EmbeddingUpsert struct {
	ID       string
	Vector   []float32
	Metadata models.Assessment
}

// VectorMatch is one nearest-neighbor result. Score is cosine similarity,
// higher is more similar.
type VectorMatch struct {
	Metadata models.Assessment
	Score    float32
}

// VectorIndex persists one embedding per assessment and answers
// nearest-neighbor queries. Upsert is idempotent per id; EnsureReady is
// idempotent provisioning of the backing store with cosine distance fixed at
// creation.
type VectorIndex interface {
	EnsureReady(ctx context.Context) error
	Upsert(ctx context.Context, records []EmbeddingUpsert) error
	Query(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error)
}
