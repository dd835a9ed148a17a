package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"talentsift/assessment-recommender/internal/catalog"
	"talentsift/assessment-recommender/internal/config"
	"talentsift/assessment-recommender/internal/handlers"
	"talentsift/assessment-recommender/internal/repositories"
	"talentsift/assessment-recommender/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Load the assessment catalog
	assessmentCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("❌ Failed to load assessment catalog: %v", err)
	}
	log.Printf("✅ Loaded %d assessments from %s\n", assessmentCatalog.Len(), cfg.Catalog.Path)

	// Retrieval stage: embedding backend plus vector index. A missing
	// credential disables the stage instead of failing startup.
	var retrieval services.RetrievalService
	if cfg.RetrievalEnabled() {
		embedder, index, err := buildRetrievalBackends(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize retrieval backends: %v", err)
		}
		retrieval = services.NewRetrievalService(embedder, index)
		log.Printf("✅ Retrieval initialized (%s embeddings, %s index)\n", cfg.Embedding.Backend, cfg.Vector.Backend)
	} else {
		log.Println("⚠️  Retrieval stage disabled: missing backend credentials")
	}

	// LLM stage
	var extractor services.ExtractorService
	if cfg.RankingEnabled() {
		geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		extractor = services.NewExtractorService(geminiService)
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  LLM ranking stage disabled: GEMINI_API_KEY not set")
	}

	// Keyword stage is always available.
	keywordRanker := services.NewKeywordRanker(assessmentCatalog)

	recommender := services.NewRecommenderService(
		assessmentCatalog,
		retrieval,
		extractor,
		keywordRanker,
		cfg.Pipeline.MaxResults,
		cfg.Pipeline.RetrievalTopK,
	)
	log.Println("✅ Recommender service initialized")

	recommendHandler := handlers.NewRecommendHandler(recommender, services.NewWebPageService())
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Assessment Recommendation API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/recommend", recommendHandler.HandleRecommend)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Assessment Recommendation API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/recommend",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// buildRetrievalBackends wires the configured embedding backend and vector
// index. The embedder is selected once and its dimension fixes the index, so
// mixing backends across indexing and querying fails fast here.
func buildRetrievalBackends(cfg *config.Config) (services.Embedder, services.VectorIndex, error) {
	var embedder services.Embedder
	switch cfg.Embedding.Backend {
	case config.EmbeddingBackendOpenAI:
		var err error
		embedder, err = services.NewOpenAIEmbedder(cfg.OpenAI.APIKey)
		if err != nil {
			return nil, nil, err
		}
	case config.EmbeddingBackendLocal:
		embedder = services.NewLocalEmbedder()
	default:
		return nil, nil, fmt.Errorf("unknown embedding backend: %s", cfg.Embedding.Backend)
	}

	var index services.VectorIndex
	switch cfg.Vector.Backend {
	case config.VectorBackendQdrant:
		var err error
		index, err = services.NewQdrantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, embedder.Dim())
		if err != nil {
			return nil, nil, err
		}
	case config.VectorBackendSQLite:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		index = services.NewLocalIndex(repositories.NewEmbeddingRepository(db), embedder.Dim())
	default:
		return nil, nil, fmt.Errorf("unknown vector backend: %s", cfg.Vector.Backend)
	}

	return embedder, index, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
