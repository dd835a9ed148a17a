package services

import (
	"context"
	"fmt"
	"log"

	"talentsift/assessment-recommender/internal/catalog"
)

// IndexerService builds the vector index from the catalog. It is an offline
// batch job, expected to run to completion before the API serves traffic.
type IndexerService interface {
	IndexCatalog(ctx context.Context) error
}

type indexerService struct {
	catalog   *catalog.Catalog
	embedder  Embedder
	index     VectorIndex
	batchSize int
}

func NewIndexerService(c *catalog.Catalog, embedder Embedder, index VectorIndex, batchSize int) IndexerService {
	if batchSize <= 0 {
		batchSize = 10
	}

	return &indexerService{
		catalog:   c,
		embedder:  embedder,
		index:     index,
		batchSize: batchSize,
	}
}

// IndexCatalog implements IndexerService. Assessments are embedded and
// upserted in fixed-size batches to bound memory and respect backend rate
// limits. Record ids are name slugs, so re-running the job replaces records
// instead of duplicating them.
func (s *indexerService) IndexCatalog(ctx context.Context) error {
	if err := s.index.EnsureReady(ctx); err != nil {
		return fmt.Errorf("failed to prepare index: %w", err)
	}

	assessments := s.catalog.All()
	totalBatches := (len(assessments) + s.batchSize - 1) / s.batchSize
	log.Printf("🔄 Indexing %d assessments with %s...\n", len(assessments), s.embedder.Model())

	for start := 0; start < len(assessments); start += s.batchSize {
		end := start + s.batchSize
		if end > len(assessments) {
			end = len(assessments)
		}

		batch := make([]EmbeddingUpsert, 0, end-start)
		for _, assessment := range assessments[start:end] {
			embedding, err := s.embedder.Embed(ctx, assessment.IndexText())
			if err != nil {
				return fmt.Errorf("failed to embed %s: %w", assessment.Name, err)
			}

			batch = append(batch, EmbeddingUpsert{
				ID:       assessment.Slug(),
				Vector:   embedding,
				Metadata: assessment,
			})
		}

		if err := s.index.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("failed to store batch %d: %w", start/s.batchSize+1, err)
		}

		log.Printf("📊 Indexed batch %d/%d\n", start/s.batchSize+1, totalBatches)
	}

	log.Println("✅ Indexing complete")
	return nil
}
