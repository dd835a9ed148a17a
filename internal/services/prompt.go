package services

import (
	"encoding/json"
	"fmt"

	"talentsift/assessment-recommender/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt creates the prompt for pulling structured role and
// skill facts out of a query or job description.
func (pb *PromptBuilder) BuildExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract the key skills, requirements, and job role information from the following job description or query.
Format the output as JSON with the following structure:
{
  "role": "The main job role or position",
  "skills": ["skill1", "skill2", ...],
  "experience_level": "Entry/Mid/Senior level if mentioned",
  "domain": "Industry or domain if mentioned",
  "soft_skills": ["soft skill1", "soft skill2", ...],
  "technical_skills": ["technical skill1", "technical skill2", ...],
  "time_constraint": "Any time constraints mentioned in minutes"
}

Text: %s`, text)
}

// BuildRankingPrompt creates the prompt that asks the model to rank a
// candidate set against extracted requirements. Candidates are serialized
// with name, test type, and description only.
func (pb *PromptBuilder) BuildRankingPrompt(requirements *models.ExtractedRequirements, candidates []models.Assessment, maxResults int) (string, error) {
	requirementsJSON, err := json.MarshalIndent(requirements, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize requirements: %w", err)
	}

	type candidateView struct {
		Name        string `json:"name"`
		TestType    string `json:"test_type"`
		Description string `json:"description"`
	}

	views := make([]candidateView, 0, len(candidates))
	for _, a := range candidates {
		views = append(views, candidateView{
			Name:        a.Name,
			TestType:    a.TestType,
			Description: a.Description,
		})
	}

	candidatesJSON, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize candidates: %w", err)
	}

	return fmt.Sprintf(`Given the following job requirements:
%s

And the following available assessments:
%s

Rank the top assessments (maximum %d) that would be most relevant for evaluating candidates for this position.
For each assessment, provide a relevance score from 0-100 and a brief explanation of why it's relevant.
Format the output as JSON with the following structure:
{
  "recommendations": [
    {
      "assessment_name": "Name of the assessment",
      "relevance_score": 95,
      "explanation": "Brief explanation of relevance"
    },
    ...
  ]
}

Consider the following evaluation metrics in your ranking:
1. Recall - How many of the relevant assessments are included in the top recommendations
2. Precision - How accurate the ranking is (most relevant assessments should be ranked higher)

Optimize for both Mean Recall@3 and MAP@3 (Mean Average Precision at 3).`,
		requirementsJSON, candidatesJSON, maxResults), nil
}
