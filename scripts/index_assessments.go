package main

import (
	"context"
	"fmt"
	"log"

	"talentsift/assessment-recommender/internal/catalog"
	"talentsift/assessment-recommender/internal/config"
	"talentsift/assessment-recommender/internal/repositories"
	"talentsift/assessment-recommender/internal/services"
)

// Offline indexing job: embeds every catalog assessment and upserts it into
// the configured vector backend. Run it to completion before serving traffic;
// re-running is safe because record ids are name slugs.
func main() {
	log.Println("🚀 Starting assessment indexing...")

	cfg := config.Load()

	assessmentCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("❌ Failed to load assessment catalog: %v", err)
	}
	log.Printf("✅ Loaded %d assessments from %s\n", assessmentCatalog.Len(), cfg.Catalog.Path)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding backend: %v", err)
	}
	log.Printf("✅ Embedding backend: %s (%d dimensions)\n", embedder.Model(), embedder.Dim())

	index, err := buildIndex(cfg, embedder.Dim())
	if err != nil {
		log.Fatalf("❌ Failed to initialize vector backend: %v", err)
	}
	log.Printf("✅ Vector backend: %s\n", cfg.Vector.Backend)

	indexer := services.NewIndexerService(assessmentCatalog, embedder, index, cfg.Pipeline.IndexBatchSize)

	if err := indexer.IndexCatalog(context.Background()); err != nil {
		log.Fatalf("❌ Indexing failed: %v", err)
	}

	log.Println("✅ All assessments indexed successfully!")
}

func buildEmbedder(cfg *config.Config) (services.Embedder, error) {
	switch cfg.Embedding.Backend {
	case config.EmbeddingBackendOpenAI:
		return services.NewOpenAIEmbedder(cfg.OpenAI.APIKey)
	case config.EmbeddingBackendLocal:
		return services.NewLocalEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend: %s", cfg.Embedding.Backend)
	}
}

func buildIndex(cfg *config.Config, dim int) (services.VectorIndex, error) {
	switch cfg.Vector.Backend {
	case config.VectorBackendQdrant:
		return services.NewQdrantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, dim)
	case config.VectorBackendSQLite:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewLocalIndex(repositories.NewEmbeddingRepository(db), dim), nil
	default:
		return nil, fmt.Errorf("unknown vector backend: %s", cfg.Vector.Backend)
	}
}
