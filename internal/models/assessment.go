package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	durationPattern   = regexp.MustCompile(`\d+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Assessment is a single catalog entry. The catalog is loaded once at startup
// and never mutated.
type Assessment struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	TestType        string `json:"test_type"`
	Duration        string `json:"duration"`
	Description     string `json:"description"`
	RemoteTesting   bool   `json:"remote_testing"`
	AdaptiveSupport bool   `json:"adaptive_support"`
}

// DurationMinutes extracts the first integer from the duration string.
// The second return value is false when the string contains no integer.
func (a Assessment) DurationMinutes() (int, bool) {
	match := durationPattern.FindString(a.Duration)
	if match == "" {
		return 0, false
	}

	minutes, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return minutes, true
}

// WithinTimeLimit reports whether the assessment fits the time budget.
// An assessment with an unparsable duration is always within budget.
func (a Assessment) WithinTimeLimit(timeLimit int) bool {
	minutes, ok := a.DurationMinutes()
	if !ok {
		return true
	}

	return minutes <= timeLimit
}

// Slug returns the deterministic embedding record id for the assessment.
func (a Assessment) Slug() string {
	return strings.ToLower(whitespacePattern.ReplaceAllString(a.Name, "-"))
}

// IndexText builds the textual representation that gets embedded for the
// vector index.
func (a Assessment) IndexText() string {
	return fmt.Sprintf(`Assessment Name: %s
Test Type: %s
Duration: %s
Description: %s
Remote Testing: %s
Adaptive Support: %s`,
		a.Name,
		a.TestType,
		a.Duration,
		a.Description,
		yesNo(a.RemoteTesting),
		yesNo(a.AdaptiveSupport),
	)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Recommendation is an assessment enriched with a relevance score and, when
// produced by the LLM ranker, an explanation.
type Recommendation struct {
	Assessment
	RelevanceScore int    `json:"relevance_score"`
	Explanation    string `json:"explanation,omitempty"`
}

// ExtractedRequirements holds the structured facts the LLM pulls out of a
// query or job description. It lives only for the duration of one request.
type ExtractedRequirements struct {
	Role            string   `json:"role"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
	Domain          string   `json:"domain"`
	SoftSkills      []string `json:"soft_skills"`
	TechnicalSkills []string `json:"technical_skills"`
	TimeConstraint  string   `json:"time_constraint"`
}
