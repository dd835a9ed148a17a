package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"talentsift/assessment-recommender/internal/models"
)

// pointNamespace makes qdrant point ids a pure function of the assessment
// slug, so re-indexing replaces points instead of duplicating them.
var pointNamespace = uuid.MustParse("8a6e1f40-94d1-4c09-9de1-3b7a25c9a1f2")

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

// NewQdrantIndex creates the remote vector backend.
func NewQdrantIndex(urlStr, apiKey, collectionName string, dim int) (VectorIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(dim),
	}, nil
}

// EnsureReady implements VectorIndex.
func (q *qdrantIndex) EnsureReady(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return &ExternalServiceError{Service: "qdrant", Err: fmt.Errorf("failed to check collection: %w", err)}
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return &ExternalServiceError{Service: "qdrant", Err: fmt.Errorf("failed to create collection: %w", err)}
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Upsert implements VectorIndex. The whole batch goes up in one call; qdrant
// gives no transactional guarantee, so a failed batch may be partially
// committed and callers re-run indexing idempotently.
func (q *qdrantIndex) Upsert(ctx context.Context, records []EmbeddingUpsert) error {
	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, rec := range records {
		if uint64(len(rec.Vector)) != q.vectorSize {
			return fmt.Errorf("%w: got %d values, index expects %d", ErrDimensionMismatch, len(rec.Vector), q.vectorSize)
		}

		pointID := uuid.NewSHA1(pointNamespace, []byte(rec.ID))

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID.String()),
			Vectors: qdrant.NewVectors(rec.Vector...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"id":               rec.ID,
				"name":             rec.Metadata.Name,
				"url":              rec.Metadata.URL,
				"test_type":        rec.Metadata.TestType,
				"duration":         rec.Metadata.Duration,
				"description":      rec.Metadata.Description,
				"remote_testing":   rec.Metadata.RemoteTesting,
				"adaptive_support": rec.Metadata.AdaptiveSupport,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return &ExternalServiceError{Service: "qdrant", Err: fmt.Errorf("failed to upsert points: %w", err)}
	}

	return nil
}

// Query implements VectorIndex.
func (q *qdrantIndex) Query(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error) {
	if uint64(len(vector)) != q.vectorSize {
		return nil, fmt.Errorf("%w: got %d values, index expects %d", ErrDimensionMismatch, len(vector), q.vectorSize)
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, &ExternalServiceError{Service: "qdrant", Err: fmt.Errorf("failed to search: %w", err)}
	}

	var results []VectorMatch
	for _, point := range searchResult {
		payload := point.Payload

		results = append(results, VectorMatch{
			Score: point.Score,
			Metadata: models.Assessment{
				Name:            payloadString(payload, "name"),
				URL:             payloadString(payload, "url"),
				TestType:        payloadString(payload, "test_type"),
				Duration:        payloadString(payload, "duration"),
				Description:     payloadString(payload, "description"),
				RemoteTesting:   payloadBool(payload, "remote_testing"),
				AdaptiveSupport: payloadBool(payload, "adaptive_support"),
			},
		})
	}

	return results, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return val.StringValue
		}
	}
	return ""
}

func payloadBool(payload map[string]*qdrant.Value, key string) bool {
	if value, ok := payload[key]; ok {
		if val, ok := value.GetKind().(*qdrant.Value_BoolValue); ok {
			return val.BoolValue
		}
	}
	return false
}
