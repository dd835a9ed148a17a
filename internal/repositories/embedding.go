package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentsift/assessment-recommender/internal/models"
)

type EmbeddingRepository interface {
	Migrate() error
	UpsertBatch(records []models.EmbeddingRecord) error
	FindAll() ([]models.EmbeddingRecord, error)
	Count() (int64, error)
}

type embeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) EmbeddingRepository {
	return &embeddingRepository{db: db}
}

// Migrate implements EmbeddingRepository.
func (r *embeddingRepository) Migrate() error {
	if err := r.db.AutoMigrate(&models.EmbeddingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate embeddings table: %w", err)
	}

	return nil
}

// UpsertBatch implements EmbeddingRepository. The batch is written in one
// transaction: if any row fails, the whole batch is reverted.
func (r *embeddingRepository) UpsertBatch(records []models.EmbeddingRecord) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&records[i]).Error; err != nil {
				return fmt.Errorf("failed to upsert embedding %s: %w", records[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write embedding batch: %w", err)
	}

	return nil
}

// FindAll implements EmbeddingRepository.
func (r *embeddingRepository) FindAll() ([]models.EmbeddingRecord, error) {
	var records []models.EmbeddingRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load embeddings: %w", err)
	}

	return records, nil
}

// Count implements EmbeddingRepository.
func (r *embeddingRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.EmbeddingRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}

	return count, nil
}
