package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talentsift/assessment-recommender/internal/models"
)

// InitDatabase opens the local vector store and creates the embeddings table
// if it does not exist yet.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Vector.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create vector store directory: %w", err)
		}
	}

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Vector.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	log.Println("✅ Vector store opened successfully")

	if err := db.AutoMigrate(&models.EmbeddingRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate vector store: %w", err)
	}

	log.Println("✅ Vector store migration completed")

	return db, nil
}
