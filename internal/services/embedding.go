package services

import "context"

// Embedder converts text into a fixed-dimension vector. Implementations must
// be deterministic for identical input text, and one backend is selected per
// process and used for both indexing and querying.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
	Model() string
}
