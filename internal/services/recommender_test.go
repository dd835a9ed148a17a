package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/assessment-recommender/internal/models"
)

type stubRetrieval struct {
	candidates []models.Recommendation
	err        error
	calls      int
}

func (s *stubRetrieval) QuerySimilar(_ context.Context, _ string, _, _ int) ([]models.Recommendation, error) {
	s.calls++
	return s.candidates, s.err
}

type stubExtractor struct {
	requirements *models.ExtractedRequirements
	extractErr   error
	ranked       []models.Recommendation
	rankErr      error
	rankCalls    int
}

func (s *stubExtractor) ExtractRequirements(_ context.Context, _ string) (*models.ExtractedRequirements, error) {
	if s.extractErr != nil {
		return nil, s.extractErr
	}
	return s.requirements, nil
}

func (s *stubExtractor) RankAssessments(_ context.Context, _ *models.ExtractedRequirements, _ []models.Assessment, _, _ int) ([]models.Recommendation, error) {
	s.rankCalls++
	if s.rankErr != nil {
		return nil, s.rankErr
	}
	return s.ranked, nil
}

const longQuery = "We need experienced Java developers who can collaborate with business teams"

func rec(name string, score int) models.Recommendation {
	return models.Recommendation{
		Assessment:     models.Assessment{Name: name, Duration: "20 minutes"},
		RelevanceScore: score,
	}
}

func TestRecommendFallsBackToKeyword(t *testing.T) {
	// Retrieval returns nothing and the extractor blows up: the pipeline must
	// land on the keyword stage without surfacing an error.
	retrieval := &stubRetrieval{candidates: []models.Recommendation{}}
	extractor := &stubExtractor{extractErr: &ExternalServiceError{Service: "gemini", Err: errors.New("down")}}
	recommender := NewRecommenderService(fixtureCatalog(), retrieval, extractor, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), longQuery, 60)

	require.NotNil(t, response)
	assert.Equal(t, MethodKeyword, response.Method)
	assert.NotEmpty(t, response.Recommendations)
	assert.Equal(t, 1, retrieval.calls)
}

func TestRecommendUsesRAGWithRerank(t *testing.T) {
	retrieval := &stubRetrieval{candidates: []models.Recommendation{rec("Verify - Java", 88)}}
	extractor := &stubExtractor{
		requirements: &models.ExtractedRequirements{Role: "Developer"},
		ranked:       []models.Recommendation{{Assessment: models.Assessment{Name: "Verify - Java"}, RelevanceScore: 95, Explanation: "Skill match."}},
	}
	recommender := NewRecommenderService(fixtureCatalog(), retrieval, extractor, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), longQuery, 60)

	assert.Equal(t, MethodRAG, response.Method)
	require.Len(t, response.Recommendations, 1)
	assert.Equal(t, 95, response.Recommendations[0].RelevanceScore)
	assert.Equal(t, "Skill match.", response.Recommendations[0].Explanation)
}

func TestRecommendRAGKeepsRawCandidatesWhenRerankFails(t *testing.T) {
	retrieval := &stubRetrieval{candidates: []models.Recommendation{rec("Verify - Java", 88), rec("OPQ32", 70)}}
	extractor := &stubExtractor{
		requirements: &models.ExtractedRequirements{},
		rankErr:      ErrRankingParse,
	}
	recommender := NewRecommenderService(fixtureCatalog(), retrieval, extractor, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), longQuery, 60)

	// Retrieval succeeded, so the method stays "rag" with similarity scores.
	assert.Equal(t, MethodRAG, response.Method)
	require.Len(t, response.Recommendations, 2)
	assert.Equal(t, 88, response.Recommendations[0].RelevanceScore)
	assert.Empty(t, response.Recommendations[0].Explanation)
}

func TestRecommendRAGTruncatesRawCandidates(t *testing.T) {
	var candidates []models.Recommendation
	for i := 0; i < 15; i++ {
		candidates = append(candidates, rec(string(rune('A'+i)), 90-i))
	}
	retrieval := &stubRetrieval{candidates: candidates}
	recommender := NewRecommenderService(fixtureCatalog(), retrieval, nil, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), longQuery, 60)

	assert.Equal(t, MethodRAG, response.Method)
	assert.Len(t, response.Recommendations, 10)
}

func TestRecommendUsesAIWhenRetrievalDisabled(t *testing.T) {
	extractor := &stubExtractor{
		requirements: &models.ExtractedRequirements{Role: "Developer"},
		ranked:       []models.Recommendation{{Assessment: models.Assessment{Name: "Verify - Java"}, RelevanceScore: 90, Explanation: "Fit."}},
	}
	recommender := NewRecommenderService(fixtureCatalog(), nil, extractor, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), longQuery, 60)

	assert.Equal(t, MethodAI, response.Method)
	require.Len(t, response.Recommendations, 1)
}

func TestRecommendShortQuerySkipsLLM(t *testing.T) {
	extractor := &stubExtractor{
		requirements: &models.ExtractedRequirements{},
		ranked:       []models.Recommendation{{Assessment: models.Assessment{Name: "Verify - Java"}, RelevanceScore: 90}},
	}
	recommender := NewRecommenderService(fixtureCatalog(), nil, extractor, NewKeywordRanker(fixtureCatalog()), 10, 20)

	// 20 characters or fewer is too short for meaningful extraction.
	response := recommender.Recommend(context.Background(), "java", 60)

	assert.Equal(t, MethodKeyword, response.Method)
	assert.Equal(t, 0, extractor.rankCalls)
}

func TestRecommendRetrievalErrorDemoted(t *testing.T) {
	retrieval := &stubRetrieval{err: &ExternalServiceError{Service: "qdrant", Err: errors.New("unreachable")}}
	extractor := &stubExtractor{
		requirements: &models.ExtractedRequirements{},
		ranked:       []models.Recommendation{{Assessment: models.Assessment{Name: "OPQ32"}, RelevanceScore: 80, Explanation: "Fit."}},
	}
	recommender := NewRecommenderService(fixtureCatalog(), retrieval, extractor, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), longQuery, 60)

	assert.Equal(t, MethodAI, response.Method)
}

func TestRecommendResponseEchoesInput(t *testing.T) {
	recommender := NewRecommenderService(fixtureCatalog(), nil, nil, NewKeywordRanker(fixtureCatalog()), 10, 20)

	response := recommender.Recommend(context.Background(), "java", 45)

	assert.Equal(t, "java", response.Query)
	assert.Equal(t, 45, response.TimeLimit)
	assert.Equal(t, MethodKeyword, response.Method)
}
