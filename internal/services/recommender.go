package services

import (
	"context"
	"log"

	"talentsift/assessment-recommender/internal/catalog"
	"talentsift/assessment-recommender/internal/models"
)

const (
	MethodRAG     = "rag"
	MethodAI      = "ai"
	MethodKeyword = "keyword"
)

// minRankableQueryLength keeps trivially short queries away from the LLM: a
// few characters carry too little signal for meaningful extraction.
const minRankableQueryLength = 20

// RecommenderService is the cascading pipeline controller. Stages run in
// order RETRIEVE, RANK, KEYWORD; each is tried at most once, any stage error
// is demoted to an empty result, and the first non-empty result wins. Scores
// are method-local (similarity percentages, LLM scores, and keyword decay use
// different scales) and are never compared across methods.
type RecommenderService interface {
	Recommend(ctx context.Context, query string, timeLimit int) *models.RecommendResponse
}

type recommenderService struct {
	catalog    *catalog.Catalog
	retrieval  RetrievalService // nil when the retrieval stage is disabled
	extractor  ExtractorService // nil when the LLM stage is disabled
	keyword    KeywordRanker
	maxResults int
	topK       int
}

func NewRecommenderService(
	c *catalog.Catalog,
	retrieval RetrievalService,
	extractor ExtractorService,
	keyword KeywordRanker,
	maxResults int,
	topK int,
) RecommenderService {
	if maxResults <= 0 {
		maxResults = 10
	}
	if topK <= 0 {
		topK = 20
	}

	return &recommenderService{
		catalog:    c,
		retrieval:  retrieval,
		extractor:  extractor,
		keyword:    keyword,
		maxResults: maxResults,
		topK:       topK,
	}
}

type pipelineStage int

const (
	stageRetrieve pipelineStage = iota
	stageRank
	stageKeyword
)

// Recommend implements RecommenderService. The keyword stage is the
// guaranteed terminal stage, so a response is always produced for valid
// input.
func (r *recommenderService) Recommend(ctx context.Context, query string, timeLimit int) *models.RecommendResponse {
	recommendations, method := r.run(ctx, query, timeLimit)

	return &models.RecommendResponse{
		Query:           query,
		TimeLimit:       timeLimit,
		Recommendations: recommendations,
		Method:          method,
	}
}

func (r *recommenderService) run(ctx context.Context, query string, timeLimit int) ([]models.Recommendation, string) {
	for stage := stageRetrieve; ; stage++ {
		switch stage {
		case stageRetrieve:
			if recommendations, ok := r.tryRetrieve(ctx, query, timeLimit); ok {
				return recommendations, MethodRAG
			}
		case stageRank:
			if recommendations, ok := r.tryRank(ctx, query, timeLimit); ok {
				return recommendations, MethodAI
			}
		default:
			return r.keyword.Rank(query, timeLimit, r.maxResults), MethodKeyword
		}
	}
}

// tryRetrieve runs the vector retrieval stage and, when candidates come back,
// attempts an LLM re-rank of them. A failed re-rank still returns the raw
// similarity-scored candidates: retrieval succeeded, so the method stays
// "rag".
func (r *recommenderService) tryRetrieve(ctx context.Context, query string, timeLimit int) ([]models.Recommendation, bool) {
	if r.retrieval == nil {
		return nil, false
	}

	candidates, err := r.retrieval.QuerySimilar(ctx, query, timeLimit, r.topK)
	if err != nil {
		log.Printf("⚠️  Retrieval stage failed: %v\n", err)
		return nil, false
	}
	if len(candidates) == 0 {
		return nil, false
	}

	if reranked, ok := r.tryRerank(ctx, query, candidates, timeLimit); ok {
		return reranked, true
	}

	if len(candidates) > r.maxResults {
		candidates = candidates[:r.maxResults]
	}

	return candidates, true
}

func (r *recommenderService) tryRerank(ctx context.Context, query string, candidates []models.Recommendation, timeLimit int) ([]models.Recommendation, bool) {
	if r.extractor == nil {
		return nil, false
	}

	requirements, err := r.extractor.ExtractRequirements(ctx, query)
	if err != nil {
		log.Printf("⚠️  Requirement extraction failed, keeping similarity order: %v\n", err)
		return nil, false
	}

	pool := make([]models.Assessment, 0, len(candidates))
	for _, c := range candidates {
		pool = append(pool, c.Assessment)
	}

	reranked, err := r.extractor.RankAssessments(ctx, requirements, pool, timeLimit, r.maxResults)
	if err != nil {
		log.Printf("⚠️  Re-ranking failed, keeping similarity order: %v\n", err)
		return nil, false
	}
	if len(reranked) == 0 {
		return nil, false
	}

	return reranked, true
}

// tryRank runs the LLM extraction+ranking stage over the full catalog.
func (r *recommenderService) tryRank(ctx context.Context, query string, timeLimit int) ([]models.Recommendation, bool) {
	if r.extractor == nil {
		return nil, false
	}
	if len(query) <= minRankableQueryLength {
		return nil, false
	}

	requirements, err := r.extractor.ExtractRequirements(ctx, query)
	if err != nil {
		log.Printf("⚠️  Requirement extraction failed: %v\n", err)
		return nil, false
	}

	recommendations, err := r.extractor.RankAssessments(ctx, requirements, r.catalog.All(), timeLimit, r.maxResults)
	if err != nil {
		log.Printf("⚠️  Ranking failed: %v\n", err)
		return nil, false
	}
	if len(recommendations) == 0 {
		return nil, false
	}

	return recommendations, true
}
