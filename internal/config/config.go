package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EmbeddingBackendOpenAI = "openai"
	EmbeddingBackendLocal  = "local"

	VectorBackendQdrant = "qdrant"
	VectorBackendSQLite = "sqlite"
)

type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Qdrant    QdrantConfig
	Vector    VectorConfig
	Embedding EmbeddingConfig
	Pipeline  PipelineConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type CatalogConfig struct {
	Path string
}

type GeminiConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	APIKey string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type VectorConfig struct {
	Backend string
	DBPath  string
}

type EmbeddingConfig struct {
	Backend string
}

type PipelineConfig struct {
	MaxResults     int
	RetrievalTopK  int
	IndexBatchSize int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("ASSESSMENTS_PATH", "./data/assessments.json"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "shl_assessments"),
		},
		Vector: VectorConfig{
			Backend: getEnv("VECTOR_BACKEND", VectorBackendSQLite),
			DBPath:  getEnv("VECTOR_DB_PATH", "./data/vectors.db"),
		},
		Embedding: EmbeddingConfig{
			Backend: getEnv("EMBEDDING_BACKEND", EmbeddingBackendLocal),
		},
		Pipeline: PipelineConfig{
			MaxResults:     getEnvAsInt("MAX_RESULTS", 10),
			RetrievalTopK:  getEnvAsInt("RETRIEVAL_TOP_K", 20),
			IndexBatchSize: getEnvAsInt("INDEX_BATCH_SIZE", 10),
		},
	}
}

// RankingEnabled reports whether the LLM extraction/ranking stage can run.
// A missing key disables the stage instead of erroring.
func (c *Config) RankingEnabled() bool {
	return c.Gemini.APIKey != ""
}

// RetrievalEnabled reports whether the vector retrieval stage can run with
// the selected backends.
func (c *Config) RetrievalEnabled() bool {
	if c.Embedding.Backend == EmbeddingBackendOpenAI && c.OpenAI.APIKey == "" {
		return false
	}
	if c.Vector.Backend == VectorBackendQdrant && c.Qdrant.URL == "" {
		return false
	}

	return true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
