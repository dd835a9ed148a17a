package models

// EmbeddingRecord is one row of the local vector store: a raw float32 vector
// plus a JSON copy of the assessment fields needed for display. The id is the
// assessment slug, so re-indexing replaces rather than duplicates.
type EmbeddingRecord struct {
	ID       string `gorm:"type:text;primary_key" json:"id"`
	Vector   []byte `gorm:"type:blob;not null" json:"-"`
	Metadata string `gorm:"type:text;not null" json:"metadata"`
}

func (EmbeddingRecord) TableName() string {
	return "embeddings"
}
