package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/assessment-recommender/internal/models"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) Dim() int { return len(s.vector) }

func (s *stubEmbedder) Model() string { return "stub" }

type stubIndex struct {
	matches  []VectorMatch
	err      error
	lastTopK int
}

func (s *stubIndex) EnsureReady(_ context.Context) error { return nil }

func (s *stubIndex) Upsert(_ context.Context, _ []EmbeddingUpsert) error { return nil }

func (s *stubIndex) Query(_ context.Context, _ []float32, topK int) ([]VectorMatch, error) {
	s.lastTopK = topK
	return s.matches, s.err
}

func TestQuerySimilarScoresAndFilters(t *testing.T) {
	index := &stubIndex{matches: []VectorMatch{
		{Metadata: models.Assessment{Name: "A", Duration: "20 minutes"}, Score: 0.876},
		{Metadata: models.Assessment{Name: "B", Duration: "90 minutes"}, Score: 0.8},
		{Metadata: models.Assessment{Name: "C", Duration: "Untimed"}, Score: 0.5},
	}}
	service := NewRetrievalService(&stubEmbedder{vector: []float32{1, 0}}, index)

	recommendations, err := service.QuerySimilar(context.Background(), "backend developer", 60, 20)
	require.NoError(t, err)

	// B is over the 60-minute budget; C has no parsable duration and stays.
	require.Len(t, recommendations, 2)
	assert.Equal(t, "A", recommendations[0].Name)
	assert.Equal(t, 88, recommendations[0].RelevanceScore)
	assert.Equal(t, "C", recommendations[1].Name)
	assert.Equal(t, 50, recommendations[1].RelevanceScore)
	assert.Equal(t, 20, index.lastTopK)
}

func TestQuerySimilarDefaultTopK(t *testing.T) {
	index := &stubIndex{}
	service := NewRetrievalService(&stubEmbedder{vector: []float32{1}}, index)

	_, err := service.QuerySimilar(context.Background(), "query", 60, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, index.lastTopK)
}

func TestQuerySimilarEmptyIndex(t *testing.T) {
	service := NewRetrievalService(&stubEmbedder{vector: []float32{1}}, &stubIndex{})

	recommendations, err := service.QuerySimilar(context.Background(), "query", 60, 20)
	require.NoError(t, err)
	assert.Empty(t, recommendations)
}

func TestQuerySimilarEmbedderFailure(t *testing.T) {
	service := NewRetrievalService(&stubEmbedder{err: errors.New("boom")}, &stubIndex{})

	_, err := service.QuerySimilar(context.Background(), "query", 60, 20)
	assert.Error(t, err)
}

func TestQuerySimilarIndexFailure(t *testing.T) {
	index := &stubIndex{err: &ExternalServiceError{Service: "qdrant", Err: errors.New("unreachable")}}
	service := NewRetrievalService(&stubEmbedder{vector: []float32{1}}, index)

	_, err := service.QuerySimilar(context.Background(), "query", 60, 20)
	assert.Error(t, err)
}
