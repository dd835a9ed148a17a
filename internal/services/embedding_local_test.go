package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEmbedderDimension(t *testing.T) {
	embedder := NewLocalEmbedder()

	vector, err := embedder.Embed(context.Background(), "senior java developer")
	require.NoError(t, err)
	assert.Len(t, vector, embedder.Dim())
	assert.Equal(t, 512, embedder.Dim())
}

func TestLocalEmbedderDeterministic(t *testing.T) {
	embedder := NewLocalEmbedder()
	ctx := context.Background()

	first, err := embedder.Embed(ctx, "collaborative python engineer with sql experience")
	require.NoError(t, err)
	second, err := embedder.Embed(ctx, "collaborative python engineer with sql experience")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 1.0, cosineSimilarity(first, second), 1e-6)
}

func TestLocalEmbedderDistinguishesTexts(t *testing.T) {
	embedder := NewLocalEmbedder()
	ctx := context.Background()

	java, err := embedder.Embed(ctx, "java backend programming with spring and concurrency")
	require.NoError(t, err)
	sales, err := embedder.Embed(ctx, "outbound sales negotiation and customer relationships")
	require.NoError(t, err)

	assert.Less(t, cosineSimilarity(java, sales), 0.9)
}

func TestLocalEmbedderEmptyText(t *testing.T) {
	embedder := NewLocalEmbedder()

	vector, err := embedder.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vector, embedder.Dim())
}

func TestNormalizeL2(t *testing.T) {
	v := normalizeL2([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)
}
