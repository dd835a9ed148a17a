package services

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const localEmbeddingDim = 512

type localEmbedder struct{}

// NewLocalEmbedder creates the in-process embedding backend. It projects
// lowercased word unigrams and bigrams into a 512-dimension space with signed
// feature hashing and L2-normalizes the result, so identical text always maps
// to the same unit vector.
func NewLocalEmbedder() Embedder {
	return &localEmbedder{}
}

// Embed implements Embedder.
func (e *localEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, localEmbeddingDim)

	tokens := tokenizeText(text)
	for i, token := range tokens {
		addFeature(vector, token)
		if i+1 < len(tokens) {
			addFeature(vector, token+" "+tokens[i+1])
		}
	}

	return normalizeL2(vector), nil
}

// Dim implements Embedder.
func (e *localEmbedder) Dim() int {
	return localEmbeddingDim
}

// Model implements Embedder.
func (e *localEmbedder) Model() string {
	return "local-hash-512"
}

func addFeature(vector []float32, feature string) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := sum % localEmbeddingDim
	// One hash bit decides the sign so colliding features partially cancel
	// instead of always piling up.
	if sum&(1<<63) != 0 {
		vector[bucket]--
	} else {
		vector[bucket]++
	}
}

func tokenizeText(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}

func normalizeL2(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	n := math.Sqrt(sum)
	if n == 0 {
		return v
	}

	inv := float32(1.0 / n)
	for i := range v {
		v[i] *= inv
	}

	return v
}
