package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"talentsift/assessment-recommender/internal/models"
)

type ExtractorService interface {
	// ExtractRequirements asks the LLM for structured role/skill facts.
	ExtractRequirements(ctx context.Context, text string) (*models.ExtractedRequirements, error)

	// RankAssessments asks the LLM to rank candidates against the extracted
	// requirements. Candidates outside the time budget are filtered first.
	RankAssessments(ctx context.Context, requirements *models.ExtractedRequirements, candidates []models.Assessment, timeLimit, maxResults int) ([]models.Recommendation, error)
}

type extractorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewExtractorService(gemini GeminiService) ExtractorService {
	return &extractorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// ExtractRequirements implements ExtractorService.
func (e *extractorService) ExtractRequirements(ctx context.Context, text string) (*models.ExtractedRequirements, error) {
	prompt := e.promptBuilder.BuildExtractionPrompt(text)

	response, err := e.gemini.GenerateText(ctx, prompt, 0.4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}

	var requirements models.ExtractedRequirements
	if err := json.Unmarshal([]byte(extractJSON(response)), &requirements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionParse, err)
	}

	return &requirements, nil
}

type rankedItem struct {
	AssessmentName string `json:"assessment_name"`
	RelevanceScore int    `json:"relevance_score"`
	Explanation    string `json:"explanation"`
}

type rankingResponse struct {
	Recommendations []rankedItem `json:"recommendations"`
}

// RankAssessments implements ExtractorService.
func (e *extractorService) RankAssessments(ctx context.Context, requirements *models.ExtractedRequirements, candidates []models.Assessment, timeLimit, maxResults int) ([]models.Recommendation, error) {
	var filtered []models.Assessment
	for _, a := range candidates {
		if a.WithinTimeLimit(timeLimit) {
			filtered = append(filtered, a)
		}
	}

	if len(filtered) == 0 {
		return []models.Recommendation{}, nil
	}

	prompt, err := e.promptBuilder.BuildRankingPrompt(requirements, filtered, maxResults)
	if err != nil {
		return nil, err
	}

	response, err := e.gemini.GenerateText(ctx, prompt, 0.4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ranking: %w", err)
	}

	var rankings rankingResponse
	if err := json.Unmarshal([]byte(extractJSON(response)), &rankings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingParse, err)
	}

	recommendations := []models.Recommendation{}
	seen := make(map[string]bool)
	for _, ranking := range rankings.Recommendations {
		assessment, ok := matchAssessment(ranking.AssessmentName, filtered)
		if !ok {
			log.Printf("⚠️  Assessment not found: %s\n", ranking.AssessmentName)
			continue
		}

		if seen[assessment.Name] {
			continue
		}
		seen[assessment.Name] = true

		recommendations = append(recommendations, models.Recommendation{
			Assessment:     assessment,
			RelevanceScore: ranking.RelevanceScore,
			Explanation:    ranking.Explanation,
		})

		if len(recommendations) == maxResults {
			break
		}
	}

	return recommendations, nil
}

// matchAssessment maps an LLM-returned name back to a candidate record. The
// model may paraphrase names, so an exact case-insensitive match is tried
// first, then a substring match in either direction. No edit-distance
// matching: a wrong attribution is worse than a dropped one.
func matchAssessment(name string, candidates []models.Assessment) (models.Assessment, bool) {
	lowered := strings.ToLower(name)

	for _, a := range candidates {
		if strings.ToLower(a.Name) == lowered {
			return a, true
		}
	}

	for _, a := range candidates {
		candidateName := strings.ToLower(a.Name)
		if strings.Contains(candidateName, lowered) || strings.Contains(lowered, candidateName) {
			return a, true
		}
	}

	return models.Assessment{}, false
}

// extractJSON pulls a JSON payload out of text that may wrap it in markdown
// fences or prose: fenced block first, then the outermost {...} or [...],
// else the raw text.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
