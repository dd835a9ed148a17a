package services

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"talentsift/assessment-recommender/internal/models"
	"talentsift/assessment-recommender/internal/repositories"
)

type localIndex struct {
	repo repositories.EmbeddingRepository
	dim  int
}

// NewLocalIndex creates the embedded vector backend: a single SQLite table of
// (id, vector bytes, metadata json) queried by full-scan cosine similarity.
// At catalog scale that is a few hundred rows, so no approximate index is
// needed.
func NewLocalIndex(repo repositories.EmbeddingRepository, dim int) VectorIndex {
	return &localIndex{repo: repo, dim: dim}
}

// EnsureReady implements VectorIndex.
func (l *localIndex) EnsureReady(_ context.Context) error {
	if err := l.repo.Migrate(); err != nil {
		return &ExternalServiceError{Service: "sqlite", Err: err}
	}

	return nil
}

// Upsert implements VectorIndex.
func (l *localIndex) Upsert(_ context.Context, records []EmbeddingUpsert) error {
	rows := make([]models.EmbeddingRecord, 0, len(records))
	for _, rec := range records {
		if len(rec.Vector) != l.dim {
			return fmt.Errorf("%w: got %d values, index expects %d", ErrDimensionMismatch, len(rec.Vector), l.dim)
		}

		metadata, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata for %s: %w", rec.ID, err)
		}

		rows = append(rows, models.EmbeddingRecord{
			ID:       rec.ID,
			Vector:   encodeVector(rec.Vector),
			Metadata: string(metadata),
		})
	}

	if err := l.repo.UpsertBatch(rows); err != nil {
		return &ExternalServiceError{Service: "sqlite", Err: err}
	}

	return nil
}

// Query implements VectorIndex.
func (l *localIndex) Query(_ context.Context, vector []float32, topK int) ([]VectorMatch, error) {
	if len(vector) != l.dim {
		return nil, fmt.Errorf("%w: got %d values, index expects %d", ErrDimensionMismatch, len(vector), l.dim)
	}

	rows, err := l.repo.FindAll()
	if err != nil {
		return nil, &ExternalServiceError{Service: "sqlite", Err: err}
	}

	var matches []VectorMatch
	for _, row := range rows {
		stored, err := decodeVector(row.Vector)
		if err != nil {
			return nil, fmt.Errorf("failed to decode vector %s: %w", row.ID, err)
		}
		if len(stored) != l.dim {
			return nil, fmt.Errorf("%w: stored vector %s has %d values, index expects %d", ErrDimensionMismatch, row.ID, len(stored), l.dim)
		}

		var assessment models.Assessment
		if err := json.Unmarshal([]byte(row.Metadata), &assessment); err != nil {
			return nil, fmt.Errorf("failed to decode metadata %s: %w", row.ID, err)
		}

		matches = append(matches, VectorMatch{
			Metadata: assessment,
			Score:    float32(cosineSimilarity(vector, stored)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}

	return matches, nil
}

// cosineSimilarity computes cosine similarity between two vectors of equal
// length, accumulating in float64 for stability.
func cosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}

	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0
	}

	return dot / den
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}

	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(buf))
	}

	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}

	return v, nil
}
